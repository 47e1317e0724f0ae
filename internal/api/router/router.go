package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ReyesCoding/medicina-pwa/config"
	"github.com/ReyesCoding/medicina-pwa/internal/api/handler"
	"github.com/ReyesCoding/medicina-pwa/internal/api/middleware"
	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/pkg/jwt"
	"github.com/ReyesCoding/medicina-pwa/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20))
	if rdb != nil {
		r.Use(middleware.RateLimit(rdb, 300, time.Minute))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 课程目录（公开只读；携带 Token 时附带可修状态）
		catalog := v1.Group("")
		catalog.Use(middleware.OptionalJWTAuth(jwtMgr))
		{
			catalog.GET("/courses", h.Course.List)
			catalog.GET("/courses/:id", h.Course.Get)
			catalog.GET("/sections", h.Section.List)
			catalog.GET("/sections/course/:courseId", h.Section.ListByCourse)
			catalog.GET("/sections/:id", h.Section.Get)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学业进度模块
			progress := authorized.Group("/progress")
			{
				progress.GET("", h.Progress.List)
				progress.GET("/statuses", h.Progress.Statuses)
				progress.GET("/summary", h.Progress.Summary)
				progress.PUT("/:courseId", h.Progress.Upsert)
				progress.DELETE("/:courseId", h.Progress.Remove)
			}

			// 选课计划模块
			plan := authorized.Group("/plan")
			{
				plan.GET("", h.Plan.List)
				plan.GET("/conflicts", h.Plan.Conflicts)
				plan.GET("/suggestions", h.Plan.Suggestions)
				plan.PUT("/:courseId", h.Plan.Upsert)
				plan.DELETE("/:courseId", h.Plan.Remove)
				plan.PUT("/:courseId/section", h.Plan.SelectSection)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/plan.xlsx", h.Export.PlanExcel)
				export.GET("/schedule.ics", h.Export.ScheduleICS)
			}

			// 管理端（课程/班次维护与批量导入）
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("/courses", h.Course.Create)
				admin.PUT("/courses/:id", h.Course.Update)
				admin.DELETE("/courses/:id", h.Course.Delete)

				admin.POST("/sections", h.Section.Create)
				admin.PUT("/sections/:id", h.Section.Update)
				admin.DELETE("/sections/:id", h.Section.Delete)

				admin.POST("/import/courses", h.Catalog.ImportCoursesJSON)
				admin.POST("/import/courses/csv", h.Catalog.ImportCoursesCSV)
				admin.POST("/import/sections", h.Catalog.ImportSectionsJSON)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
