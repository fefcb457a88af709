package routes

import (
	"travel-authorization-api/controllers"
	"travel-authorization-api/middleware"
	"travel-authorization-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Travel Authorization API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)

			// Reference data (all authenticated users)
			protected.GET("/statuses", controllers.GetStatuses)
			protected.GET("/expense-types", controllers.GetExpenseTypes)
			protected.GET("/fund-types", controllers.GetFundTypes)
			protected.GET("/organizations", controllers.GetOrganizations)
			protected.GET("/divisions", controllers.GetDivisions)

			// Travel applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id",
					middleware.RequirePermission(services.PermApplicationReadOne),
					controllers.GetApplication)

				applications.POST("",
					middleware.RequirePermission(services.PermApplicationCreate),
					controllers.CreateApplication)
				applications.PUT("/:id",
					middleware.RequirePermission(services.PermApplicationUpdate),
					controllers.UpdateApplication)
				applications.DELETE("/:id",
					middleware.RequirePermission(services.PermApplicationUpdate),
					controllers.DeleteApplication)

				// Workflow transitions resolve their own permission from
				// both the current and the requested status.
				applications.POST("/:id/status", controllers.TransitionApplicationStatus)
				applications.GET("/:id/status-history",
					middleware.RequirePermission(services.PermApplicationReadOne),
					controllers.GetApplicationStatusHistory)

				// Attached documents
				applications.POST("/:id/files", controllers.UploadApplicationFile)
				applications.GET("/:id/files", controllers.GetApplicationFiles)
			}

			files := protected.Group("/files")
			{
				files.GET("/:file_id/download", controllers.DownloadApplicationFile)
				files.DELETE("/:file_id", controllers.DeleteApplicationFile)
			}

			// Complaints
			complaints := protected.Group("/complaints")
			{
				complaints.GET("", controllers.GetComplaints)
				complaints.GET("/:id", controllers.GetComplaint)
				complaints.POST("", controllers.CreateComplaint)
				complaints.POST("/:id/assign", controllers.AssignComplaint)
				complaints.POST("/:id/status", controllers.TransitionComplaintStatus)
				complaints.GET("/:id/logs", controllers.GetComplaintLogs)
			}
		}
	}
}
