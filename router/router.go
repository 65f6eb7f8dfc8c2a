package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodbridge/donation-app/controllers"
	"github.com/foodbridge/donation-app/middlewares"
	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
)

func SetupRouter(db *gorm.DB, st *store.Store) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	donationCtrl := controllers.NewDonationController(st)
	notificationCtrl := controllers.NewNotificationController(st.Notifications())
	adminCtrl := controllers.NewAdminController(st)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Live feed; browsers pass the token on the query string.
	r.GET("/live/ws", middlewares.WebSocketAuthMiddleware(), controllers.LiveFeedHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		donations := auth.Group("/donations")
		{
			donations.POST("", middlewares.RequireRoles(models.RoleDonor), donationCtrl.CreateDonation)
			donations.GET("", middlewares.RequireRoles(models.RoleAdmin), donationCtrl.GetAllDonations)
			donations.GET("/available", middlewares.RequireRoles(models.RoleNGO), donationCtrl.GetAvailableDonations)
			donations.GET("/mine", middlewares.RequireRoles(models.RoleDonor), donationCtrl.GetMyDonations)
			donations.GET("/claimed", middlewares.RequireRoles(models.RoleNGO), donationCtrl.GetClaimedDonations)
			donations.GET("/board", middlewares.RequireRoles(models.RoleCourier), donationCtrl.GetCourierBoard)
			donations.GET("/:donation_id", donationCtrl.GetDonationByID)
			donations.POST("/:donation_id/accept", middlewares.RequireRoles(models.RoleNGO), donationCtrl.AcceptDonation)
			donations.POST("/:donation_id/pickup", middlewares.RequireRoles(models.RoleCourier), donationCtrl.PickUpDonation)
			donations.POST("/:donation_id/deliver", middlewares.RequireRoles(models.RoleNGO, models.RoleCourier), donationCtrl.DeliverDonation)
			donations.POST("/:donation_id/location", middlewares.RequireRoles(models.RoleCourier), donationCtrl.UpdateLocation)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", notificationCtrl.GetMyNotifications)
			notifications.GET("/unread-count", notificationCtrl.GetUnreadCount)
			notifications.POST("", middlewares.RequireRoles(models.RoleAdmin), notificationCtrl.CreateNotification)
			notifications.PATCH("/:notif_id/read", notificationCtrl.MarkAsRead)
			notifications.DELETE("/:notif_id", notificationCtrl.DeleteNotification)
		}

		auth.GET("/analytics", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetAnalytics)
		auth.GET("/leaderboard", adminCtrl.GetLeaderboard)
		auth.GET("/admin/dashboard", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetDashboardStats)
	}

	return r
}
