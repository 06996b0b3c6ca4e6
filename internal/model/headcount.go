package model

import "time"

// HeadcountEntry 实验室人数采样 — 对应 headcount_entries
// 值班导师在岗期间记录的瞬时人数，用于人流量统计
type HeadcountEntry struct {
	EntryID     string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	SemesterID  string      `gorm:"type:uuid;not null"                             json:"semester_id"`
	PeopleInLab int         `gorm:"not null"                                       json:"people_in_lab"`
	MentorIDs   StringArray `gorm:"type:text[]"                                    json:"mentor_ids"`
	Feeling     string      `gorm:"type:varchar(32);not null;default:''"           json:"feeling"`
	CreatedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (HeadcountEntry) TableName() string { return "headcount_entries" }
