package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mentor-lab/backend/internal/dto"
	"mentor-lab/backend/internal/service"
	"mentor-lab/backend/pkg/response"
)

// TrafficHandler 人流量模块 HTTP 处理器
type TrafficHandler struct {
	trafficSvc service.TrafficService
}

// NewTrafficHandler 创建 TrafficHandler
func NewTrafficHandler(trafficSvc service.TrafficService) *TrafficHandler {
	return &TrafficHandler{trafficSvc: trafficSvc}
}

// ListTraffic 获取本学期人流量网格
// GET /api/v1/traffic?semester_id=xxx
func (h *TrafficHandler) ListTraffic(c *gin.Context) {
	var req dto.TrafficListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	traffic, err := h.trafficSvc.ListBySemester(c.Request.Context(), req.SemesterID)
	if err != nil {
		h.handleTrafficError(c, err)
		return
	}
	response.OK(c, traffic)
}

// RecordHeadcount 记录人数采样
// POST /api/v1/traffic/headcount
func (h *TrafficHandler) RecordHeadcount(c *gin.Context) {
	var req dto.RecordHeadcountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	if err := h.trafficSvc.RecordHeadcount(c.Request.Context(), &req); err != nil {
		h.handleTrafficError(c, err)
		return
	}
	response.Created(c, nil)
}

func (h *TrafficHandler) handleTrafficError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 15101, "学期不存在")
	default:
		response.InternalError(c)
	}
}
