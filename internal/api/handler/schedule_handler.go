package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/service"
	"mentor-lab/backend/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules 获取排班表列表
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleSvc.ListSchedules(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": schedules})
}

// CreateSchedule 新建排班表
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.CreateSchedule(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, schedule)
}

// GetActiveSchedule 获取激活排班表（含排班块）
// GET /api/v1/schedules/active
func (h *ScheduleHandler) GetActiveSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.GetActiveSchedule(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// GetSchedule 获取排班表详情（含排班块）
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetSchedule(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, schedule)
}

// ActivateSchedule 激活排班表
// PUT /api/v1/schedules/:id/activate
func (h *ScheduleHandler) ActivateSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	if err := h.scheduleSvc.ActivateSchedule(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListBlocks 获取排班表的排班块
// GET /api/v1/schedules/:id/blocks
func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	blocks, err := h.scheduleSvc.ListBlocks(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": blocks})
}

// CreateBlock 手动放置排班块
// POST /api/v1/schedules/blocks
func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	block, err := h.scheduleSvc.AssignBlock(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, block)
}

// MoveBlock 移动排班块
// PUT /api/v1/schedules/blocks/:id
func (h *ScheduleHandler) MoveBlock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班块ID不能为空")
		return
	}

	var req dto.MoveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	block, err := h.scheduleSvc.MoveBlock(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, block)
}

// ResolveDrag 处理拖拽手势
// POST /api/v1/schedules/blocks/drag
func (h *ScheduleHandler) ResolveDrag(c *gin.Context) {
	var req dto.DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.ResolveDrag(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteBlock 删除排班块
// DELETE /api/v1/schedules/blocks/:id
func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班块ID不能为空")
		return
	}

	if err := h.scheduleSvc.RemoveBlock(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ClearSchedule 清空排班表的所有排班块
// DELETE /api/v1/schedules/:id/blocks
func (h *ScheduleHandler) ClearSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	if err := h.scheduleSvc.ClearSchedule(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// AutoFill 执行自动填班
// POST /api/v1/schedules/autofill
func (h *ScheduleHandler) AutoFill(c *gin.Context) {
	var req dto.AutoFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.AutoFill(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

// handleScheduleError 统一处理排班模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "排班表不存在")
	case errors.Is(err, service.ErrBlockNotFound):
		response.NotFound(c, 13102, "排班块不存在")
	case errors.Is(err, service.ErrSlotOutOfRange):
		response.BadRequest(c, 13103, "时段超出开放时间范围")
	case errors.Is(err, service.ErrBlockConflict):
		response.Conflict(c, 13104, "该导师在此时段已有排班块")
	case errors.Is(err, service.ErrNoAvailabilityYet):
		response.BadRequest(c, 13105, "本学期尚无空闲时间提交，无法自动填班")
	case errors.Is(err, service.ErrMentorNotFound):
		response.NotFound(c, 13106, "导师不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 13107, "学期不存在")
	default:
		response.InternalError(c)
	}
}
