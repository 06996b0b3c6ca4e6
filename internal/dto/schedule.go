package dto

// ── 排班模块 DTO ──

// CreateScheduleRequest 新建排班表请求
type CreateScheduleRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=64"`
	Activate bool   `json:"activate"`
}

// CreateBlockRequest 手动放置排班块请求
type CreateBlockRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required,uuid"`
	MentorID   string `json:"mentor_id"   binding:"required,uuid"`
	Weekday    int    `json:"weekday"     binding:"required"`
	Hour       int    `json:"hour"        binding:"required"`
}

// MoveBlockRequest 移动排班块请求
type MoveBlockRequest struct {
	Weekday int `json:"weekday" binding:"required"`
	Hour    int `json:"hour"    binding:"required"`
}

// DragRequest 拖拽手势请求
// BlockID 为空表示从侧栏拖入新导师；位移不足阈值按点击处理
type DragRequest struct {
	ScheduleID string  `json:"schedule_id" binding:"required,uuid"`
	MentorID   string  `json:"mentor_id"   binding:"required,uuid"`
	BlockID    *string `json:"block_id"    binding:"omitempty,uuid"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	ReleaseX   float64 `json:"release_x"`
	ReleaseY   float64 `json:"release_y"`
	Weekday    int     `json:"weekday" binding:"required"`
	Hour       int     `json:"hour"    binding:"required"`
}

// AutoFillRequest 自动填班请求
type AutoFillRequest struct {
	ScheduleID        string `json:"schedule_id"          binding:"required,uuid"`
	SemesterID        string `json:"semester_id"          binding:"required,uuid"`
	MaxPerSlot        *int   `json:"max_per_slot"         binding:"omitempty,min=1"`
	MaxSlotsPerMentor *int   `json:"max_slots_per_mentor" binding:"omitempty,min=1"`
	FillEmptyOnly     bool   `json:"fill_empty_only"`
}

// ── 响应 ──

// ScheduleResponse 排班表响应
type ScheduleResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsActive  bool            `json:"is_active"`
	Blocks    []BlockResponse `json:"blocks,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// BlockResponse 排班块响应
type BlockResponse struct {
	ID         string       `json:"id"`
	ScheduleID string       `json:"schedule_id"`
	Weekday    int          `json:"weekday"`
	Hour       int          `json:"hour"`
	Mentor     *MentorBrief `json:"mentor,omitempty"`
	MentorID   string       `json:"mentor_id"`
}

// DragResponse 拖拽手势处理结果
type DragResponse struct {
	Action string         `json:"action"` // click | assign | move
	Block  *BlockResponse `json:"block,omitempty"`
}

// AutoFillFailure 自动填班单项写入失败
type AutoFillFailure struct {
	MentorID string `json:"mentor_id"`
	Weekday  int    `json:"weekday"`
	Hour     int    `json:"hour"`
	Reason   string `json:"reason"`
}

// AutoFillResponse 自动填班结果报告
type AutoFillResponse struct {
	AssignedCount     int               `json:"assigned_count"`
	UnfilledSlots     []string          `json:"unfilled_slots,omitempty"`     // 人手不足的时段标签
	UnassignedMentors []string          `json:"unassigned_mentors,omitempty"` // 一个班都没排上的导师
	Failures          []AutoFillFailure `json:"failures,omitempty"`           // 部分写入失败明细
}
