package service

import (
	"go.uber.org/zap"

	"mentor-lab/backend/config"
	"mentor-lab/backend/internal/repository"
	"mentor-lab/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Mentor       MentorService
	Semester     SemesterService
	Availability AvailabilityService
	Schedule     ScheduleService
	Traffic      TrafficService
	Export       ExportService
}

// NewService 创建 Service 聚合
// cache 可为 nil，此时人流量统计直接读库
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Mentor:       NewMentorService(repo, logger),
		Semester:     NewSemesterService(repo, logger),
		Availability: NewAvailabilityService(repo, logger),
		Schedule:     NewScheduleService(repo, logger),
		Traffic:      NewTrafficService(repo, cache, cfg.Traffic.CacheTTL, logger),
		Export:       NewExportService(repo, logger),
	}
}
