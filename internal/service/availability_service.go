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

// ── 空闲时间模块业务错误 ──

var (
	ErrSubmissionNotFound = errors.New("空闲时间提交不存在")
)

// AvailabilityService 空闲时间业务接口
type AvailabilityService interface {
	// Submit 提交空闲时间，重复提交整份替换
	Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) (*dto.AvailabilityResponse, error)
	// ListBySemester 返回本学期全部提交及聚合后的网格
	ListBySemester(ctx context.Context, semesterID string) (*dto.AvailabilityGridResponse, error)
	// Delete 撤回某导师本学期的提交
	Delete(ctx context.Context, mentorID, semesterID string) error
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	// 所有时段必须落在开放网格内，越界直接拒绝而不收窄
	for _, slot := range req.Slots {
		if !IsValidSlot(slot.Weekday, slot.Hour) {
			return nil, ErrSlotOutOfRange
		}
	}

	mentor, err := s.repo.Mentor.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("查询导师失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Semester.GetByID(ctx, req.SemesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	submission := &model.AvailabilitySubmission{
		MentorID:    req.MentorID,
		SemesterID:  req.SemesterID,
		SubmittedAt: time.Now(),
	}
	seen := make(map[string]bool, len(req.Slots))
	for _, slot := range req.Slots {
		key := SlotKey(slot.Weekday, slot.Hour)
		if seen[key] {
			continue // 重复时段去重
		}
		seen[key] = true
		submission.Slots = append(submission.Slots, model.AvailabilitySlot{
			Weekday: slot.Weekday,
			Hour:    slot.Hour,
		})
	}

	if err := s.repo.Availability.Replace(ctx, submission); err != nil {
		s.logger.Error("保存空闲时间提交失败", zap.Error(err))
		return nil, err
	}

	submission.Mentor = mentor
	return toAvailabilityResponse(submission), nil
}

func (s *availabilityService) ListBySemester(ctx context.Context, semesterID string) (*dto.AvailabilityGridResponse, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, err
	}

	submissions, err := s.repo.Availability.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询空闲时间提交失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.AvailabilityGridResponse{
		SemesterID:  semesterID,
		Submissions: make([]dto.AvailabilityResponse, 0, len(submissions)),
		Cells:       AggregateAvailability(submissions),
	}
	for i := range submissions {
		resp.Submissions = append(resp.Submissions, *toAvailabilityResponse(&submissions[i]))
	}
	return resp, nil
}

func (s *availabilityService) Delete(ctx context.Context, mentorID, semesterID string) error {
	if err := s.repo.Availability.DeleteByMentorAndSemester(ctx, mentorID, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		s.logger.Error("撤回空闲时间提交失败", zap.Error(err))
		return err
	}
	return nil
}

func toAvailabilityResponse(sub *model.AvailabilitySubmission) *dto.AvailabilityResponse {
	resp := &dto.AvailabilityResponse{
		MentorID:    sub.MentorID,
		MentorName:  mentorDisplayName(*sub),
		Slots:       make([]dto.SlotRef, 0, len(sub.Slots)),
		SubmittedAt: sub.SubmittedAt.Format(time.RFC3339),
	}
	for _, slot := range sub.Slots {
		resp.Slots = append(resp.Slots, dto.SlotRef{Weekday: slot.Weekday, Hour: slot.Hour})
	}
	return resp
}
