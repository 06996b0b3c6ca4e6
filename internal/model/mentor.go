package model

import "time"

// Mentor 导师名册 — 对应 mentors
type Mentor struct {
	MentorID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mentor_id"`
	UserID         string     `gorm:"type:varchar(64);not null;uniqueIndex"          json:"user_id"` // 网关侧账号标识
	Name           string     `gorm:"type:varchar(64);not null"                      json:"name"`
	Email          string     `gorm:"type:varchar(128);not null;default:''"          json:"email"`
	IsActive       bool       `gorm:"not null;default:true"                          json:"is_active"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	VersionedModel
}

func (Mentor) TableName() string { return "mentors" }

// IsEligible 判断导师在 now 时刻是否可参与排班：
// 激活且（无到期日或到期日在未来）
func (m *Mentor) IsEligible(now time.Time) bool {
	if !m.IsActive {
		return false
	}
	if m.ExpirationDate != nil && !m.ExpirationDate.After(now) {
		return false
	}
	return true
}
