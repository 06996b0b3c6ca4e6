package repository

import (
	"context"

	"gorm.io/gorm"

	"mentor-lab/backend/internal/model"
	pkgerrors "mentor-lab/backend/pkg/errors"
)

// MentorRepository 导师名册数据访问接口
type MentorRepository interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	GetByUserID(ctx context.Context, userID string) (*model.Mentor, error)
	List(ctx context.Context, offset, limit int) ([]model.Mentor, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Mentor, error)
	Update(ctx context.Context, mentor *model.Mentor) error
	Delete(ctx context.Context, id string) error
}

type mentorRepo struct {
	db *gorm.DB
}

func NewMentorRepo(db *gorm.DB) MentorRepository {
	return &mentorRepo{db: db}
}

func (r *mentorRepo) Create(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepo) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", id).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) GetByUserID(ctx context.Context, userID string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) List(ctx context.Context, offset, limit int) ([]model.Mentor, int64, error) {
	var mentors []model.Mentor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Mentor{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&mentors).Error
	return mentors, total, err
}

func (r *mentorRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Mentor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var mentors []model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id IN ?", ids).
		Find(&mentors).Error
	return mentors, err
}

func (r *mentorRepo) Update(ctx context.Context, mentor *model.Mentor) error {
	oldVersion := mentor.Version
	result := r.db.WithContext(ctx).
		Model(mentor).
		Where("mentor_id = ? AND version = ?", mentor.MentorID, oldVersion).
		Updates(map[string]interface{}{
			"name":            mentor.Name,
			"email":           mentor.Email,
			"is_active":       mentor.IsActive,
			"expiration_date": mentor.ExpirationDate,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	mentor.Version = oldVersion + 1
	return nil
}

func (r *mentorRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("mentor_id = ?", id).
		Delete(&model.Mentor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
