package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/service"
	"mentor-lab/backend/pkg/response"
)

// MentorHandler 导师名册模块 HTTP 处理器
type MentorHandler struct {
	mentorSvc service.MentorService
}

// NewMentorHandler 创建 MentorHandler
func NewMentorHandler(mentorSvc service.MentorService) *MentorHandler {
	return &MentorHandler{mentorSvc: mentorSvc}
}

// ListMentors 获取导师列表
// GET /api/v1/mentors?eligible_only=true
func (h *MentorHandler) ListMentors(c *gin.Context) {
	var req dto.MentorListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	mentors, total, err := h.mentorSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}
	response.OKPage(c, mentors, total, req.GetPage(), req.GetPageSize())
}

// CreateMentor 新增导师
// POST /api/v1/mentors
func (h *MentorHandler) CreateMentor(c *gin.Context) {
	var req dto.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	mentor, err := h.mentorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}
	response.Created(c, mentor)
}

// GetMentor 获取导师详情
// GET /api/v1/mentors/:id
func (h *MentorHandler) GetMentor(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "导师ID不能为空")
		return
	}

	mentor, err := h.mentorSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}
	response.OK(c, mentor)
}

// UpdateMentor 更新导师
// PUT /api/v1/mentors/:id
func (h *MentorHandler) UpdateMentor(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "导师ID不能为空")
		return
	}

	var req dto.UpdateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	mentor, err := h.mentorSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}
	response.OK(c, mentor)
}

// DeleteMentor 删除导师
// DELETE /api/v1/mentors/:id
func (h *MentorHandler) DeleteMentor(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "导师ID不能为空")
		return
	}

	if err := h.mentorSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleMentorError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MentorHandler) handleMentorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMentorNotFound):
		response.NotFound(c, 11101, "导师不存在")
	case errors.Is(err, service.ErrMentorAlreadyExists):
		response.Conflict(c, 11102, "该账号已在导师名册中")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 11103, "日期格式不合法")
	default:
		response.InternalError(c)
	}
}
