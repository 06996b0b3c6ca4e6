package model

// Schedule 排班表 — 对应 schedules
// 可同时存在多张，至多一张处于激活状态
type Schedule struct {
	ScheduleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	Name       string `gorm:"type:varchar(64);not null"                      json:"name"`
	IsActive   bool   `gorm:"not null;default:false"                         json:"is_active"`
	VersionedModel

	// 关联
	Blocks []ScheduleBlock `gorm:"foreignKey:ScheduleID" json:"blocks,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// ScheduleBlock 排班块 — 对应 schedule_blocks
// 一位导师在一张排班表的一个时段；同表同导师同时段唯一
type ScheduleBlock struct {
	BlockID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                                 json:"block_id"`
	ScheduleID string `gorm:"type:uuid;not null;uniqueIndex:idx_block_schedule_mentor_slot"                  json:"schedule_id"`
	MentorID   string `gorm:"type:uuid;not null;uniqueIndex:idx_block_schedule_mentor_slot"                  json:"mentor_id"`
	Weekday    int    `gorm:"type:smallint;not null;uniqueIndex:idx_block_schedule_mentor_slot"              json:"weekday"`
	Hour       int    `gorm:"type:smallint;not null;uniqueIndex:idx_block_schedule_mentor_slot"              json:"hour"`
	BaseModel

	// 关联
	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"mentor,omitempty"`
}

func (ScheduleBlock) TableName() string { return "schedule_blocks" }
