package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/service"
	"mentor-lab/backend/pkg/response"
)

// AvailabilityHandler 空闲时间模块 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// ListAvailability 获取本学期全部空闲时间（含聚合网格）
// GET /api/v1/availability?semester_id=xxx
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	var req dto.AvailabilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	grid, err := h.availabilitySvc.ListBySemester(c.Request.Context(), req.SemesterID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}
	response.OK(c, grid)
}

// SubmitAvailability 提交空闲时间（整份替换）
// PUT /api/v1/availability
func (h *AvailabilityHandler) SubmitAvailability(c *gin.Context) {
	var req dto.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	submission, err := h.availabilitySvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}
	response.OK(c, submission)
}

// DeleteAvailability 撤回某导师本学期的提交
// DELETE /api/v1/availability?mentor_id=xxx&semester_id=xxx
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	mentorID := c.Query("mentor_id")
	semesterID := c.Query("semester_id")
	if mentorID == "" || semesterID == "" {
		response.BadRequest(c, 12001, "mentor_id 与 semester_id 不能为空")
		return
	}

	if err := h.availabilitySvc.Delete(c.Request.Context(), mentorID, semesterID); err != nil {
		h.handleAvailabilityError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotOutOfRange):
		response.BadRequest(c, 12101, "时段超出开放时间范围")
	case errors.Is(err, service.ErrMentorNotFound):
		response.NotFound(c, 12102, "导师不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 12103, "学期不存在")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 12104, "空闲时间提交不存在")
	default:
		response.InternalError(c)
	}
}
