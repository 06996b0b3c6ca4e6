package dto

// ── 导师名册 DTO ──

// CreateMentorRequest 新增导师请求
type CreateMentorRequest struct {
	UserID         string  `json:"user_id"         binding:"required,min=1,max=64"`
	Name           string  `json:"name"            binding:"required,min=1,max=64"`
	Email          string  `json:"email"           binding:"omitempty,email"`
	ExpirationDate *string `json:"expiration_date" binding:"omitempty"` // RFC3339
}

// UpdateMentorRequest 更新导师请求（零值字段不修改）
type UpdateMentorRequest struct {
	Name           *string `json:"name"            binding:"omitempty,min=1,max=64"`
	Email          *string `json:"email"           binding:"omitempty,email"`
	IsActive       *bool   `json:"is_active"`
	ExpirationDate *string `json:"expiration_date" binding:"omitempty"`
}

// MentorListRequest 导师列表查询参数
type MentorListRequest struct {
	EligibleOnly bool `form:"eligible_only"`
	PaginationRequest
}

// ── 响应 ──

// MentorBrief 导师简要信息
type MentorBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MentorResponse 导师完整信息
type MentorResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	IsActive       bool    `json:"is_active"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
