package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"mentor-lab/backend/internal/service"
	"mentor-lab/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule 导出激活排班表为 Excel
// GET /api/v1/export/schedule
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportScheduleXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportMentorICS 导出导师值班日历
// GET /api/v1/export/schedule/ics?mentor_id=xxx&semester_id=xxx
func (h *ExportHandler) ExportMentorICS(c *gin.Context) {
	mentorID := c.Query("mentor_id")
	semesterID := c.Query("semester_id")
	if mentorID == "" || semesterID == "" {
		response.BadRequest(c, 16001, "mentor_id 与 semester_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportMentorICS(c.Request.Context(), mentorID, semesterID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16101, "暂无激活排班表")
	case errors.Is(err, service.ErrMentorNotFound):
		response.NotFound(c, 16102, "导师不存在")
	case errors.Is(err, service.ErrSemesterNotFound):
		response.NotFound(c, 16103, "学期不存在")
	case errors.Is(err, service.ErrExportNoBlocks):
		response.BadRequest(c, 16104, "排班表中无排班块")
	default:
		response.InternalError(c)
	}
}
