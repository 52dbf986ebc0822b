package routes

import (
	"venture-marketplace-api/controllers"
	"venture-marketplace-api/middleware"
	"venture-marketplace-api/models"

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
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Venture Marketplace API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Venture self-service
			venture := protected.Group("/ventures", middleware.RequireRole(models.RoleVenture))
			{
				venture.POST("/me", controllers.CreateVenture)
				venture.GET("/me", controllers.GetMyVenture)
				venture.PUT("/me", controllers.UpdateMyVenture)
				venture.POST("/me/submit", controllers.SubmitMyVenture)
				venture.GET("/me/investors", middleware.RequireApprovedProfile(), controllers.ListVisibleInvestors)
			}

			// Venture browsing for approved investors and mentors
			browse := protected.Group("/ventures",
				middleware.RequireRole(models.RoleInvestor, models.RoleMentor, models.RoleAdmin))
			{
				browse.GET("", middleware.RequireApprovedProfile(), controllers.ListApprovedVentures)
				browse.GET("/:id", middleware.RequireApprovedProfile(), controllers.GetVenture)
			}

			// Investor profile self-service
			investor := protected.Group("/investors", middleware.RequireRole(models.RoleInvestor))
			{
				investor.POST("/me", controllers.UpsertInvestorProfile)
				investor.GET("/me", controllers.GetMyInvestorProfile)
				investor.POST("/me/submit", controllers.SubmitMyInvestorProfile)
				investor.GET("/me/shares", middleware.RequireApprovedProfile(), controllers.ListMyShares)
				investor.GET("/me/access-requests", middleware.RequireApprovedProfile(), controllers.ListMyAccessRequests)
			}

			// Mentor profile self-service and directory
			mentor := protected.Group("/mentors")
			{
				mentor.POST("/me", middleware.RequireRole(models.RoleMentor), controllers.UpsertMentorProfile)
				mentor.GET("/me", middleware.RequireRole(models.RoleMentor), controllers.GetMyMentorProfile)
				mentor.POST("/me/submit", middleware.RequireRole(models.RoleMentor), controllers.SubmitMyMentorProfile)
				mentor.GET("", controllers.ListApprovedMentors)
			}

			// Pitch documents
			documents := protected.Group("/documents")
			{
				documents.POST("", middleware.RequireRole(models.RoleVenture), controllers.UploadPitchDocument)
				documents.PUT("/:id", middleware.RequireRole(models.RoleVenture), controllers.UpdatePitchDocument)
				documents.DELETE("/:id", middleware.RequireRole(models.RoleVenture), controllers.DeletePitchDocument)
				documents.GET("/:id/view", controllers.ViewPitchDocument)
				documents.GET("/:id/download", controllers.DownloadPitchDocument)
				documents.GET("/:id/analytics", controllers.GetDocumentAnalytics)

				// Access ledger
				documents.POST("/:id/grants", controllers.GrantDocumentAccess)
				documents.DELETE("/:id/grants/:grantee_id", controllers.RevokeDocumentAccess)
				documents.POST("/:id/share", controllers.ShareDocument)
				documents.GET("/:id/access-requests", controllers.ListDocumentAccessRequests)

				// Investor-initiated negotiation
				documents.POST("/:id/access-requests",
					middleware.RequireRole(models.RoleInvestor),
					middleware.RequireApprovedProfile(),
					controllers.RequestDocumentAccess)
				documents.POST("/:id/commitments",
					middleware.RequireRole(models.RoleInvestor),
					middleware.RequireApprovedProfile(),
					controllers.ProposeCommitment)
			}

			// Access request lifecycle
			accessRequests := protected.Group("/access-requests")
			{
				accessRequests.POST("/:id/respond", controllers.RespondToAccessRequest)
				accessRequests.POST("/:id/cancel", middleware.RequireRole(models.RoleInvestor), controllers.CancelAccessRequest)
			}

			// Commitments
			commitments := protected.Group("/commitments")
			{
				commitments.GET("", controllers.ListMyCommitments)
				commitments.GET("/:id", controllers.GetCommitment)
				commitments.POST("/:id/accept", middleware.RequireRole(models.RoleVenture, models.RoleAdmin), controllers.AcceptCommitment)
				commitments.POST("/:id/renegotiate", middleware.RequireRole(models.RoleVenture, models.RoleAdmin), controllers.RenegotiateCommitment)
				commitments.POST("/:id/withdraw", middleware.RequireRole(models.RoleInvestor), controllers.WithdrawCommitment)
				commitments.POST("/:id/complete", controllers.CompleteCommitment)
			}

			// Conversations
			conversations := protected.Group("/conversations")
			{
				conversations.POST("", controllers.StartConversation)
				conversations.GET("", controllers.ListMyConversations)
				conversations.GET("/:id/messages", controllers.ListConversationMessages)
				conversations.POST("/:id/messages", controllers.PostConversationMessage)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Admin review console
			admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/reviews", controllers.ListPendingReviews)
				admin.POST("/reviews/:id/decide", controllers.DecideReview)
				admin.POST("/subjects/suspend", controllers.SuspendSubject)
				admin.POST("/subjects/purge", controllers.PurgeSubject)
			}
		}
	}
}
