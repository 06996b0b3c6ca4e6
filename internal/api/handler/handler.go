package handler

import "mentor-lab/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Mentor       *MentorHandler
	Semester     *SemesterHandler
	Availability *AvailabilityHandler
	Schedule     *ScheduleHandler
	Traffic      *TrafficHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Mentor:       NewMentorHandler(svc.Mentor),
		Semester:     NewSemesterHandler(svc.Semester),
		Availability: NewAvailabilityHandler(svc.Availability),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Traffic:      NewTrafficHandler(svc.Traffic),
		Export:       NewExportHandler(svc.Export),
	}
}
