package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mentor-lab/backend/internal/model"
)

// AvailabilityRepository 空闲时间数据访问接口
type AvailabilityRepository interface {
	// Replace 在单个事务内删除该导师本学期的旧提交并写入新提交（整份替换）
	Replace(ctx context.Context, submission *model.AvailabilitySubmission) error
	GetByMentorAndSemester(ctx context.Context, mentorID, semesterID string) (*model.AvailabilitySubmission, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.AvailabilitySubmission, error)
	DeleteByMentorAndSemester(ctx context.Context, mentorID, semesterID string) error
}

type availabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Replace(ctx context.Context, submission *model.AvailabilitySubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old model.AvailabilitySubmission
		err := tx.Where("mentor_id = ? AND semester_id = ?", submission.MentorID, submission.SemesterID).
			First(&old).Error
		if err == nil {
			if err := tx.Where("submission_id = ?", old.SubmissionID).
				Delete(&model.AvailabilitySlot{}).Error; err != nil {
				return err
			}
			if err := tx.Where("submission_id = ?", old.SubmissionID).
				Delete(&model.AvailabilitySubmission{}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(submission).Error
	})
}

func (r *availabilityRepo) GetByMentorAndSemester(ctx context.Context, mentorID, semesterID string) (*model.AvailabilitySubmission, error) {
	var submission model.AvailabilitySubmission
	err := r.db.WithContext(ctx).
		Preload("Slots").
		Preload("Mentor").
		Where("mentor_id = ? AND semester_id = ?", mentorID, semesterID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *availabilityRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.AvailabilitySubmission, error) {
	var submissions []model.AvailabilitySubmission
	err := r.db.WithContext(ctx).
		Preload("Slots").
		Preload("Mentor").
		Where("semester_id = ?", semesterID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *availabilityRepo) DeleteByMentorAndSemester(ctx context.Context, mentorID, semesterID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old model.AvailabilitySubmission
		err := tx.Where("mentor_id = ? AND semester_id = ?", mentorID, semesterID).
			First(&old).Error
		if err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", old.SubmissionID).
			Delete(&model.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		return tx.Where("submission_id = ?", old.SubmissionID).
			Delete(&model.AvailabilitySubmission{}).Error
	})
}
