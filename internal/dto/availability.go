package dto

// ── 空闲时间模块 DTO ──

// SlotRef 网格时段坐标
type SlotRef struct {
	Weekday int `json:"weekday" binding:"required"`
	Hour    int `json:"hour"    binding:"required"`
}

// SubmitAvailabilityRequest 提交空闲时间请求（整份替换）
type SubmitAvailabilityRequest struct {
	MentorID   string    `json:"mentor_id"   binding:"required,uuid"`
	SemesterID string    `json:"semester_id" binding:"required,uuid"`
	Slots      []SlotRef `json:"slots"       binding:"required,dive"`
}

// AvailabilityListRequest 空闲时间列表查询参数
type AvailabilityListRequest struct {
	SemesterID string `form:"semester_id" binding:"required,uuid"`
}

// ── 响应 ──

// AvailabilityResponse 单个导师的空闲时间
type AvailabilityResponse struct {
	MentorID    string    `json:"mentor_id"`
	MentorName  string    `json:"mentor_name"`
	Slots       []SlotRef `json:"slots"`
	SubmittedAt string    `json:"submitted_at"`
}

// AvailabilityGridResponse 聚合后的空闲网格
// Cells 键为 "{weekday}-{hour}"，值为该时段空闲的导师姓名
type AvailabilityGridResponse struct {
	SemesterID  string              `json:"semester_id"`
	Submissions []AvailabilityResponse `json:"submissions"`
	Cells       map[string][]string `json:"cells"`
}
