package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentor-lab/backend/config"
	"mentor-lab/backend/internal/api/handler"
	"mentor-lab/backend/internal/api/middleware"
	"mentor-lab/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.RateLimit(rdb, 120, time.Minute))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	// 身份由接入网关注入，服务只做角色区分
	v1 := r.Group("/api/v1")
	v1.Use(middleware.GatewayIdentity())
	{
		// 导师名册模块
		mentors := v1.Group("/mentors")
		{
			mentors.GET("", h.Mentor.ListMentors)
			mentors.GET("/:id", h.Mentor.GetMentor)
			mentors.POST("", middleware.RoleAuth("admin"), h.Mentor.CreateMentor)
			mentors.PUT("/:id", middleware.RoleAuth("admin"), h.Mentor.UpdateMentor)
			mentors.DELETE("/:id", middleware.RoleAuth("admin"), h.Mentor.DeleteMentor)
		}

		// 学期模块
		semesters := v1.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.GET("/active", h.Semester.GetActiveSemester)
			semesters.GET("/:id", h.Semester.GetSemester)
			semesters.POST("", middleware.RoleAuth("admin"), h.Semester.CreateSemester)
			semesters.PUT("/:id/activate", middleware.RoleAuth("admin"), h.Semester.ActivateSemester)
		}

		// 空闲时间模块
		availability := v1.Group("/availability")
		{
			availability.GET("", h.Availability.ListAvailability)
			availability.PUT("", h.Availability.SubmitAvailability)
			availability.DELETE("", h.Availability.DeleteAvailability)
		}

		// 排班模块
		schedules := v1.Group("/schedules")
		{
			schedules.GET("", h.Schedule.ListSchedules)
			schedules.GET("/active", h.Schedule.GetActiveSchedule)
			schedules.POST("", middleware.RoleAuth("admin"), h.Schedule.CreateSchedule)
			schedules.GET("/:id", h.Schedule.GetSchedule)
			schedules.PUT("/:id/activate", middleware.RoleAuth("admin"), h.Schedule.ActivateSchedule)
			schedules.GET("/:id/blocks", h.Schedule.ListBlocks)
			schedules.DELETE("/:id/blocks", middleware.RoleAuth("admin"), h.Schedule.ClearSchedule)
			schedules.POST("/blocks", middleware.RoleAuth("admin"), h.Schedule.CreateBlock)
			schedules.PUT("/blocks/:id", middleware.RoleAuth("admin"), h.Schedule.MoveBlock)
			schedules.DELETE("/blocks/:id", middleware.RoleAuth("admin"), h.Schedule.DeleteBlock)
			schedules.POST("/blocks/drag", middleware.RoleAuth("admin"), h.Schedule.ResolveDrag)
			schedules.POST("/autofill", middleware.RoleAuth("admin"), h.Schedule.AutoFill)
		}

		// 人流量模块
		traffic := v1.Group("/traffic")
		{
			traffic.GET("", h.Traffic.ListTraffic)
			traffic.POST("/headcount", h.Traffic.RecordHeadcount)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/schedule", h.Export.ExportSchedule)
			export.GET("/schedule/ics", h.Export.ExportMentorICS)
		}
	}

	return r
}
