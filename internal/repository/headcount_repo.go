package repository

import (
	"context"

	"gorm.io/gorm"

	"mentor-lab/backend/internal/model"
)

// HeadcountRepository 人数采样数据访问接口
type HeadcountRepository interface {
	Create(ctx context.Context, entry *model.HeadcountEntry) error
	ListBySemester(ctx context.Context, semesterID string) ([]model.HeadcountEntry, error)
}

type headcountRepo struct {
	db *gorm.DB
}

func NewHeadcountRepo(db *gorm.DB) HeadcountRepository {
	return &headcountRepo{db: db}
}

func (r *headcountRepo) Create(ctx context.Context, entry *model.HeadcountEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *headcountRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.HeadcountEntry, error) {
	var entries []model.HeadcountEntry
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
