package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/model"
	"mentor-lab/backend/internal/repository"
	"mentor-lab/backend/pkg/redis"
)

// TrafficService 人流量统计业务接口
// 统计结果仅作排班参考，读取失败时返回空网格而非报错
type TrafficService interface {
	ListBySemester(ctx context.Context, semesterID string) (*dto.TrafficResponse, error)
	RecordHeadcount(ctx context.Context, req *dto.RecordHeadcountRequest) error
}

type trafficService struct {
	repo     *repository.Repository
	cache    *redis.Client // 可为 nil，Redis 不可用时直接读库
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTrafficService 创建 TrafficService 实例
func NewTrafficService(repo *repository.Repository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) TrafficService {
	return &trafficService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func trafficCacheKey(semesterID string) string {
	return fmt.Sprintf("traffic:grid:%s", semesterID)
}

func (s *trafficService) ListBySemester(ctx context.Context, semesterID string) (*dto.TrafficResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		var cached dto.TrafficResponse
		err := s.cache.GetJSON(ctx, trafficCacheKey(semesterID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("读取人流量缓存失败", zap.Error(err))
		}
	}

	resp := &dto.TrafficResponse{SemesterID: semesterID, Cells: []dto.TrafficCell{}}

	entries, err := s.repo.Headcount.ListBySemester(ctx, semesterID)
	if err != nil {
		// 统计是参考信息，失败降级为空网格
		s.logger.Warn("查询人数采样失败，人流量降级为空", zap.Error(err))
		return resp, nil
	}

	resp.Cells = aggregateTraffic(entries)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, trafficCacheKey(semesterID), resp, s.cacheTTL); err != nil {
			s.logger.Warn("写入人流量缓存失败", zap.Error(err))
		}
	}
	return resp, nil
}

// aggregateTraffic 按采样时刻落到的网格时段求平均人数。
// 周末或开放时间以外的采样不参与统计。
func aggregateTraffic(entries []model.HeadcountEntry) []dto.TrafficCell {
	type bucket struct {
		total int
		count int
	}
	buckets := make(map[string]*bucket)

	for _, e := range entries {
		weekday := int(e.CreatedAt.Weekday()) // Sunday=0
		hour := e.CreatedAt.Hour()
		if !IsValidSlot(weekday, hour) {
			continue
		}
		key := SlotKey(weekday, hour)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.total += e.PeopleInLab
		b.count++
	}

	cells := make([]dto.TrafficCell, 0, len(buckets))
	for hour := MinHour; hour <= MaxHour; hour++ {
		for weekday := MinWeekday; weekday <= MaxWeekday; weekday++ {
			b := buckets[SlotKey(weekday, hour)]
			if b == nil || b.count == 0 {
				continue
			}
			cells = append(cells, dto.TrafficCell{
				Weekday:            weekday,
				Hour:               hour,
				AveragePeopleInLab: float64(b.total) / float64(b.count),
				SampleCount:        b.count,
			})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Weekday != cells[j].Weekday {
			return cells[i].Weekday < cells[j].Weekday
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells
}

func (s *trafficService) RecordHeadcount(ctx context.Context, req *dto.RecordHeadcountRequest) error {
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return err
	}

	entry := &model.HeadcountEntry{
		SemesterID:  req.SemesterID,
		PeopleInLab: req.PeopleInLab,
		MentorIDs:   model.StringArray(req.MentorIDs),
		Feeling:     req.Feeling,
	}
	if err := s.repo.Headcount.Create(ctx, entry); err != nil {
		s.logger.Error("保存人数采样失败", zap.Error(err))
		return err
	}

	// 新采样写入后使缓存失效
	if s.cache != nil {
		if err := s.cache.Delete(ctx, trafficCacheKey(req.SemesterID)); err != nil {
			s.logger.Warn("失效人流量缓存失败", zap.Error(err))
		}
	}
	return nil
}
