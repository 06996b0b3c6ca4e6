package model

import "time"

// AvailabilitySubmission 空闲时间提交 — 对应 availability_submissions
// 一位导师在一个学期内至多一份，重新提交整份替换
type AvailabilitySubmission struct {
	SubmissionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"submission_id"`
	MentorID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_submission_mentor_semester" json:"mentor_id"`
	SemesterID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_submission_mentor_semester" json:"semester_id"`
	SubmittedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                      json:"submitted_at"`
	BaseModel

	// 关联
	Mentor *Mentor            `gorm:"foreignKey:MentorID;references:MentorID" json:"mentor,omitempty"`
	Slots  []AvailabilitySlot `gorm:"foreignKey:SubmissionID"                 json:"slots,omitempty"`
}

func (AvailabilitySubmission) TableName() string { return "availability_submissions" }

// AvailabilitySlot 空闲时段 — 对应 availability_slots
// weekday 1-5（周一至周五），hour 10-17（该小时起始）
type AvailabilitySlot struct {
	SlotID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	SubmissionID string `gorm:"type:uuid;not null"                             json:"submission_id"`
	Weekday      int    `gorm:"type:smallint;not null"                         json:"weekday"`
	Hour         int    `gorm:"type:smallint;not null"                         json:"hour"`
}

func (AvailabilitySlot) TableName() string { return "availability_slots" }
