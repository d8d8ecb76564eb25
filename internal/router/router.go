package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/handler"
	"github.com/Harish222600/LMS-SELL-sub001/internal/middleware"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/logger"
	corsmiddleware "github.com/Harish222600/LMS-SELL-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/Harish222600/LMS-SELL-sub001/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Categories    *handler.CategoryHandler
	Courses       *handler.CourseHandler
	Enrollments   *handler.EnrollmentHandler
	AccessRequest *handler.AccessRequestHandler
	Learning      *handler.LearningHandler
	Analytics     *handler.AnalyticsHandler
	Dashboard     *handler.DashboardHandler
	Drilldown     *handler.DrilldownHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	Exports       *handler.ExportHandler
	Metrics       *handler.MetricsHandler
}

// New assembles the gin engine with middleware and all route groups.
func New(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.JWT(auth)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", h.Auth.Signup)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
			authGroup.POST("/reset-password", h.Auth.ResetPassword)
			authGroup.POST("/logout", authRequired, h.Auth.Logout)
			authGroup.POST("/change-password", authRequired, h.Auth.ChangePassword)
			authGroup.GET("/me", authRequired, h.Auth.Me)
		}

		v1.GET("/categories", h.Categories.List)
		v1.GET("/categories/:id", h.Categories.Get)
		v1.GET("/categories/:id/courses", h.Categories.Courses)

		courses := v1.Group("/courses")
		{
			courses.GET("", h.Courses.List)
			courses.GET("/:id", h.Courses.Get)

			enrolled := courses.Group("", authRequired)
			{
				enrolled.POST("/:id/enroll", h.Enrollments.Enroll)
				enrolled.DELETE("/:id/enroll", h.Enrollments.Unenroll)
				enrolled.POST("/:id/request-access", h.AccessRequest.Request)
				enrolled.GET("/:id/progress", h.Learning.GetProgress)
				enrolled.POST("/:id/progress/videos", h.Learning.MarkVideoComplete)
				enrolled.POST("/:id/progress/quizzes", h.Learning.RecordQuizResult)
				enrolled.POST("/:id/certificate", h.Learning.IssueCertificate)
			}
		}

		me := v1.Group("/me", authRequired)
		{
			me.GET("", h.Users.Profile)
			me.PUT("", h.Users.UpdateProfile)
			me.GET("/courses", h.Enrollments.MyCourses)
			me.GET("/access-requests", h.AccessRequest.ListMine)
		}

		if cfg.JobBoard.Enabled {
			v1.GET("/jobs", h.Jobs.ListPublic)
			v1.GET("/jobs/:id", h.Jobs.GetPublic)
			v1.POST("/jobs/:id/apply", h.Applications.Apply)
		}

		if cfg.Exports.Enabled {
			v1.GET("/exports/download", h.Exports.Download)
		}

		admin := v1.Group("/admin", authRequired, adminOnly)
		{
			admin.GET("/users", h.Users.List)
			admin.POST("/users", h.Users.Create)
			admin.GET("/users/:id", h.Users.Get)
			admin.PUT("/users/:id", h.Users.Update)
			admin.DELETE("/users/:id", h.Users.Delete)

			admin.GET("/enrollments", h.Enrollments.List)
			admin.GET("/courses/:id/students", h.Enrollments.Roster)
			admin.GET("/courses/:id/students/:studentId/progress", h.Learning.StudentProgress)

			admin.GET("/access-requests", h.AccessRequest.List)
			admin.POST("/access-requests/:id/approve", h.AccessRequest.Approve)
			admin.POST("/access-requests/:id/reject", h.AccessRequest.Reject)

			if cfg.Analytics.Enabled {
				admin.GET("/analytics", h.Analytics.Platform)
				admin.GET("/analytics/system", h.Analytics.System)
			}

			if cfg.Dashboard.Enabled {
				admin.GET("/dashboard", h.Dashboard.Summary)
				admin.DELETE("/dashboard/notifications", h.Dashboard.DismissAll)
				admin.DELETE("/dashboard/notifications/:id", h.Dashboard.DismissNotification)
			}

			admin.GET("/drilldown", h.Drilldown.View)
			admin.POST("/drilldown/categories/:id", h.Drilldown.SelectCategory)
			admin.POST("/drilldown/courses/:id", h.Drilldown.SelectCourse)
			admin.POST("/drilldown/students/:id", h.Drilldown.SelectStudent)
			admin.POST("/drilldown/back", h.Drilldown.Back)
			admin.POST("/drilldown/reset", h.Drilldown.Reset)

			if cfg.JobBoard.Enabled {
				admin.GET("/jobs", h.Jobs.List)
				admin.POST("/jobs", h.Jobs.Create)
				admin.GET("/jobs/:id", h.Jobs.Get)
				admin.PUT("/jobs/:id", h.Jobs.Update)
				admin.DELETE("/jobs/:id", h.Jobs.Delete)

				admin.GET("/applications", h.Applications.List)
				admin.GET("/applications/:id", h.Applications.Get)
				admin.PATCH("/applications/:id/status", h.Applications.SetStatus)
			}

			if cfg.Exports.Enabled {
				admin.POST("/exports", h.Exports.Request)
				admin.GET("/exports", h.Exports.ListMine)
				admin.GET("/exports/:id", h.Exports.Get)
			}
		}

		catalog := v1.Group("/catalog", authRequired, staff)
		{
			catalog.POST("/courses", h.Courses.Create)
			catalog.PUT("/courses/:id", h.Courses.Update)
			catalog.PATCH("/courses/:id/publish", h.Courses.Publish)
			catalog.DELETE("/courses/:id", h.Courses.Delete)
			catalog.POST("/categories", h.Categories.Create)
			catalog.PUT("/categories/:id", h.Categories.Update)
			catalog.DELETE("/categories/:id", h.Categories.Delete)
		}
	}

	return r
}
