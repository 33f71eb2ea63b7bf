// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Init swagger doc
	_ "github.com/HarishP23/OneStop/docs"

	"github.com/HarishP23/OneStop/internal/auth"
	"github.com/HarishP23/OneStop/internal/controller/application"
	"github.com/HarishP23/OneStop/internal/controller/file"
	"github.com/HarishP23/OneStop/internal/controller/jobpost"
	"github.com/HarishP23/OneStop/internal/middleware"
	"github.com/HarishP23/OneStop/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.SafeHeader())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)
	appController := application.NewApplicationController(s.DB, s.Mailer)
	jobController := jobpost.NewJobPostController(s.DB)
	fileController := file.NewFileController(s.DB, s.Storage)

	requireAuth := middleware.RequireAuth(s.DB)
	notRevoked := middleware.JwtBlacklistCheck(s.Blacklist)

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimiterMiddleware(s.Config.RateLimitPerSecond, s.Redis))
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("register", lAuth.LocalRegisterHandler)
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("logout", requireAuth, notRevoked, logout.LogoutHandler)
		}

		applicationRoute := v1.Group("/applications")
		{
			applicationRoute.GET("", appController.GetAllApplications)
			applicationRoute.POST("", appController.CreateApplication)
			applicationRoute.GET("user/:userId", appController.GetUserApplications)
			applicationRoute.GET(":id", appController.GetApplication)
			applicationRoute.PATCH(":id", appController.UpdateApplicationStatus)
			applicationRoute.PUT(":id", appController.UpdateApplicationStatus)
			applicationRoute.DELETE(":id", appController.DeleteApplication)
		}

		jobRoute := v1.Group("/jobs")
		{
			jobRoute.GET("", jobController.GetPosts)
			jobRoute.GET(":id", jobController.GetPostByID)

			owner := jobRoute.Group("", requireAuth, notRevoked, middleware.CheckRole(model.RoleRecruiter))
			owner.POST("", jobController.CreateJobPostHandler)
			owner.PATCH(":id", jobController.EditJobPost)
			owner.DELETE(":id", jobController.DeleteJobPost)
			owner.GET(":id/applications", appController.GetJobApplications)
		}

		fileRoute := v1.Group("/files")
		{
			fileRoute.POST("resume", middleware.SizeLimit(file.MaxResumeBytes), fileController.UploadResume)
			fileRoute.GET(":id", fileController.GetFile)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
