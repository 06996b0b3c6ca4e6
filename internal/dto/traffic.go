package dto

// ── 人流量模块 DTO ──

// RecordHeadcountRequest 记录人数采样请求
type RecordHeadcountRequest struct {
	SemesterID  string   `json:"semester_id"   binding:"required,uuid"`
	PeopleInLab int      `json:"people_in_lab" binding:"min=0"`
	MentorIDs   []string `json:"mentor_ids"    binding:"omitempty,dive,uuid"`
	Feeling     string   `json:"feeling"       binding:"omitempty,max=32"`
}

// TrafficListRequest 人流量查询参数
type TrafficListRequest struct {
	SemesterID string `form:"semester_id" binding:"required,uuid"`
}

// ── 响应 ──

// TrafficCell 单个时段的人流量统计
type TrafficCell struct {
	Weekday            int     `json:"weekday"`
	Hour               int     `json:"hour"`
	AveragePeopleInLab float64 `json:"average_people_in_lab"`
	SampleCount        int     `json:"sample_count"`
}

// TrafficResponse 全网格人流量响应
// 缺数据的时段不出现在 Cells 中；统计失败时 Cells 为空但不报错
type TrafficResponse struct {
	SemesterID string        `json:"semester_id"`
	Cells      []TrafficCell `json:"cells"`
}
