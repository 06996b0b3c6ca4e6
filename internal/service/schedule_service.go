package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/model"
	"mentor-lab/backend/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrScheduleNotFound  = errors.New("排班表不存在")
	ErrBlockNotFound     = errors.New("排班块不存在")
	ErrSlotOutOfRange    = errors.New("时段超出开放时间范围")
	ErrBlockConflict     = errors.New("该导师在此时段已有排班块")
	ErrNoAvailabilityYet = errors.New("本学期尚无空闲时间提交，无法自动填班")
)

// ScheduleService 排班业务接口
type ScheduleService interface {
	// 排班表管理
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error)
	GetActiveSchedule(ctx context.Context) (*dto.ScheduleResponse, error)
	ActivateSchedule(ctx context.Context, scheduleID string) error
	// 排班块编辑
	ListBlocks(ctx context.Context, scheduleID string) ([]dto.BlockResponse, error)
	AssignBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error)
	MoveBlock(ctx context.Context, blockID string, req *dto.MoveBlockRequest) (*dto.BlockResponse, error)
	RemoveBlock(ctx context.Context, blockID string) error
	ClearSchedule(ctx context.Context, scheduleID string) error
	// 拖拽手势
	ResolveDrag(ctx context.Context, req *dto.DragRequest) (*dto.DragResponse, error)
	// 自动填班
	AutoFill(ctx context.Context, req *dto.AutoFillRequest) (*dto.AutoFillResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger, now: time.Now}
}

// ── 排班表管理 ──

func (s *scheduleService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule := &model.Schedule{Name: req.Name}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建排班表失败", zap.Error(err))
		return nil, err
	}
	// 首张排班表直接激活；其余按请求决定
	if req.Activate || s.shouldAutoActivate(ctx) {
		if err := s.repo.Schedule.Activate(ctx, schedule.ScheduleID); err != nil {
			s.logger.Error("激活排班表失败", zap.Error(err))
			return nil, err
		}
		schedule.IsActive = true
	}
	return toScheduleResponse(schedule, nil), nil
}

// shouldAutoActivate 当前没有任何激活排班表时返回 true
func (s *scheduleService) shouldAutoActivate(ctx context.Context) bool {
	_, err := s.repo.Schedule.GetActive(ctx)
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("查询排班表列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		resp = append(resp, *toScheduleResponse(&schedules[i], nil))
	}
	return resp, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询排班表失败", zap.Error(err))
		return nil, err
	}
	blocks, err := s.repo.ScheduleBlock.ListBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(schedule, blocks), nil
}

func (s *scheduleService) GetActiveSchedule(ctx context.Context) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询激活排班表失败", zap.Error(err))
		return nil, err
	}
	blocks, err := s.repo.ScheduleBlock.ListBySchedule(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(schedule, blocks), nil
}

func (s *scheduleService) ActivateSchedule(ctx context.Context, scheduleID string) error {
	if err := s.repo.Schedule.Activate(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("激活排班表失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 排班块编辑 ──

func (s *scheduleService) ListBlocks(ctx context.Context, scheduleID string) ([]dto.BlockResponse, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	blocks, err := s.repo.ScheduleBlock.ListBySchedule(ctx, scheduleID)
	if err != nil {
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		resp = append(resp, *toBlockResponse(&blocks[i]))
	}
	return resp, nil
}

// AssignBlock 手动放置排班块。
// 编辑器不限制每格人数，只拒绝同导师同时段重复放置。
func (s *scheduleService) AssignBlock(ctx context.Context, req *dto.CreateBlockRequest) (*dto.BlockResponse, error) {
	if !IsValidSlot(req.Weekday, req.Hour) {
		return nil, ErrSlotOutOfRange
	}
	if _, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	mentor, err := s.repo.Mentor.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}

	exists, err := s.repo.ScheduleBlock.ExistsAt(ctx, req.ScheduleID, req.MentorID, req.Weekday, req.Hour)
	if err != nil {
		s.logger.Error("查询排班块冲突失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrBlockConflict
	}

	block := &model.ScheduleBlock{
		ScheduleID: req.ScheduleID,
		MentorID:   req.MentorID,
		Weekday:    req.Weekday,
		Hour:       req.Hour,
	}
	if err := s.repo.ScheduleBlock.Create(ctx, block); err != nil {
		s.logger.Error("创建排班块失败", zap.Error(err))
		return nil, err
	}
	block.Mentor = mentor
	return toBlockResponse(block), nil
}

// MoveBlock 移动排班块到新时段。
// 目标与当前位置相同视为无操作，直接返回原块；
// 目标时段已有同一导师的其他块则拒绝。
func (s *scheduleService) MoveBlock(ctx context.Context, blockID string, req *dto.MoveBlockRequest) (*dto.BlockResponse, error) {
	if !IsValidSlot(req.Weekday, req.Hour) {
		return nil, ErrSlotOutOfRange
	}
	block, err := s.repo.ScheduleBlock.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		s.logger.Error("查询排班块失败", zap.Error(err))
		return nil, err
	}

	if block.Weekday == req.Weekday && block.Hour == req.Hour {
		return toBlockResponse(block), nil
	}

	exists, err := s.repo.ScheduleBlock.ExistsAt(ctx, block.ScheduleID, block.MentorID, req.Weekday, req.Hour)
	if err != nil {
		s.logger.Error("查询排班块冲突失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrBlockConflict
	}

	if err := s.repo.ScheduleBlock.UpdatePosition(ctx, block, req.Weekday, req.Hour); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		s.logger.Error("移动排班块失败", zap.Error(err))
		return nil, err
	}
	return toBlockResponse(block), nil
}

func (s *scheduleService) RemoveBlock(ctx context.Context, blockID string) error {
	if err := s.repo.ScheduleBlock.Delete(ctx, blockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("删除排班块失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) ClearSchedule(ctx context.Context, scheduleID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if err := s.repo.ScheduleBlock.DeleteBySchedule(ctx, scheduleID); err != nil {
		s.logger.Error("清空排班表失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 响应组装 ──

func toScheduleResponse(schedule *model.Schedule, blocks []model.ScheduleBlock) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:        schedule.ScheduleID,
		Name:      schedule.Name,
		IsActive:  schedule.IsActive,
		CreatedAt: schedule.CreatedAt.Format(time.RFC3339),
		UpdatedAt: schedule.UpdatedAt.Format(time.RFC3339),
	}
	for i := range blocks {
		resp.Blocks = append(resp.Blocks, *toBlockResponse(&blocks[i]))
	}
	return resp
}

func toBlockResponse(block *model.ScheduleBlock) *dto.BlockResponse {
	resp := &dto.BlockResponse{
		ID:         block.BlockID,
		ScheduleID: block.ScheduleID,
		MentorID:   block.MentorID,
		Weekday:    block.Weekday,
		Hour:       block.Hour,
	}
	if block.Mentor != nil {
		resp.Mentor = &dto.MentorBrief{ID: block.Mentor.MentorID, Name: block.Mentor.Name}
	}
	return resp
}
