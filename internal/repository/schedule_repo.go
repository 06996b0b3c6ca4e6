package repository

import (
	"context"

	"gorm.io/gorm"

	"mentor-lab/backend/internal/model"
	pkgerrors "mentor-lab/backend/pkg/errors"
)

// ScheduleRepository 排班表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetActive(ctx context.Context) (*model.Schedule, error)
	List(ctx context.Context) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	// Activate 在单个事务内取消其他排班表的激活状态并激活指定排班表
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ScheduleBlockRepository 排班块数据访问接口
type ScheduleBlockRepository interface {
	Create(ctx context.Context, block *model.ScheduleBlock) error
	GetByID(ctx context.Context, id string) (*model.ScheduleBlock, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleBlock, error)
	// ExistsAt 判断某导师在某排班表的某时段是否已有排班块
	ExistsAt(ctx context.Context, scheduleID, mentorID string, weekday, hour int) (bool, error)
	UpdatePosition(ctx context.Context, block *model.ScheduleBlock, weekday, hour int) error
	Delete(ctx context.Context, id string) error
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

// ── Schedule Repository 实现 ──

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) GetActive(ctx context.Context) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("schedule_id = ? AND version = ?", schedule.ScheduleID, oldVersion).
		Updates(map[string]interface{}{
			"name":      schedule.Name,
			"is_active": schedule.IsActive,
			"version":   oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	return nil
}

func (r *scheduleRepo) Activate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Schedule{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&model.Schedule{}).
			Where("schedule_id = ?", id).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// ── ScheduleBlock Repository 实现 ──

type scheduleBlockRepo struct {
	db *gorm.DB
}

func NewScheduleBlockRepo(db *gorm.DB) ScheduleBlockRepository {
	return &scheduleBlockRepo{db: db}
}

func (r *scheduleBlockRepo) Create(ctx context.Context, block *model.ScheduleBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *scheduleBlockRepo) GetByID(ctx context.Context, id string) (*model.ScheduleBlock, error) {
	var block model.ScheduleBlock
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("block_id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *scheduleBlockRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleBlock, error) {
	var blocks []model.ScheduleBlock
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("schedule_id = ?", scheduleID).
		Order("hour ASC, weekday ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *scheduleBlockRepo) ExistsAt(ctx context.Context, scheduleID, mentorID string, weekday, hour int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleBlock{}).
		Where("schedule_id = ? AND mentor_id = ? AND weekday = ? AND hour = ?",
			scheduleID, mentorID, weekday, hour).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scheduleBlockRepo) UpdatePosition(ctx context.Context, block *model.ScheduleBlock, weekday, hour int) error {
	result := r.db.WithContext(ctx).
		Model(block).
		Where("block_id = ?", block.BlockID).
		Updates(map[string]interface{}{
			"weekday": weekday,
			"hour":    hour,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	block.Weekday = weekday
	block.Hour = hour
	return nil
}

func (r *scheduleBlockRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("block_id = ?", id).
		Delete(&model.ScheduleBlock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scheduleBlockRepo) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.ScheduleBlock{}).Error
}
