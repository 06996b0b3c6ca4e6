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

// ── 导师名册模块业务错误 ──

var (
	ErrMentorNotFound      = errors.New("导师不存在")
	ErrMentorAlreadyExists = errors.New("该账号已在导师名册中")
	ErrInvalidDate         = errors.New("日期格式不合法")
)

// MentorService 导师名册业务接口
type MentorService interface {
	Create(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error)
	Get(ctx context.Context, id string) (*dto.MentorResponse, error)
	List(ctx context.Context, req *dto.MentorListRequest) ([]dto.MentorResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	Delete(ctx context.Context, id string) error
}

type mentorService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewMentorService 创建 MentorService 实例
func NewMentorService(repo *repository.Repository, logger *zap.Logger) MentorService {
	return &mentorService{repo: repo, logger: logger, now: time.Now}
}

func (s *mentorService) Create(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	if _, err := s.repo.Mentor.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrMentorAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询导师失败", zap.Error(err))
		return nil, err
	}

	mentor := &model.Mentor{
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}
	if req.ExpirationDate != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpirationDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		mentor.ExpirationDate = &t
	}

	if err := s.repo.Mentor.Create(ctx, mentor); err != nil {
		s.logger.Error("创建导师失败", zap.Error(err))
		return nil, err
	}
	return toMentorResponse(mentor), nil
}

func (s *mentorService) Get(ctx context.Context, id string) (*dto.MentorResponse, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("查询导师失败", zap.Error(err))
		return nil, err
	}
	return toMentorResponse(mentor), nil
}

func (s *mentorService) List(ctx context.Context, req *dto.MentorListRequest) ([]dto.MentorResponse, int64, error) {
	mentors, total, err := s.repo.Mentor.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询导师列表失败", zap.Error(err))
		return nil, 0, err
	}

	now := s.now()
	resp := make([]dto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		if req.EligibleOnly && !mentors[i].IsEligible(now) {
			continue
		}
		resp = append(resp, *toMentorResponse(&mentors[i]))
	}
	return resp, total, nil
}

func (s *mentorService) Update(ctx context.Context, id string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("查询导师失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		mentor.Name = *req.Name
	}
	if req.Email != nil {
		mentor.Email = *req.Email
	}
	if req.IsActive != nil {
		mentor.IsActive = *req.IsActive
	}
	if req.ExpirationDate != nil {
		if *req.ExpirationDate == "" {
			mentor.ExpirationDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ExpirationDate)
			if err != nil {
				return nil, ErrInvalidDate
			}
			mentor.ExpirationDate = &t
		}
	}

	if err := s.repo.Mentor.Update(ctx, mentor); err != nil {
		s.logger.Error("更新导师失败", zap.Error(err))
		return nil, err
	}
	return toMentorResponse(mentor), nil
}

func (s *mentorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Mentor.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMentorNotFound
		}
		s.logger.Error("删除导师失败", zap.Error(err))
		return err
	}
	return nil
}

func toMentorResponse(mentor *model.Mentor) *dto.MentorResponse {
	resp := &dto.MentorResponse{
		ID:        mentor.MentorID,
		UserID:    mentor.UserID,
		Name:      mentor.Name,
		Email:     mentor.Email,
		IsActive:  mentor.IsActive,
		CreatedAt: mentor.CreatedAt.Format(time.RFC3339),
	}
	if mentor.ExpirationDate != nil {
		s := mentor.ExpirationDate.Format(time.RFC3339)
		resp.ExpirationDate = &s
	}
	return resp
}
