package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

type AdminController struct {
	Store *store.Store
}

func NewAdminController(s *store.Store) *AdminController {
	return &AdminController{Store: s}
}

// GetAnalytics returns the memoized summary snapshot.
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Analytics", ac.Store.Analytics())
}

// GetDashboardStats bundles the snapshot with per-status counts and
// the unread notification total for the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var stats struct {
		Analytics   *models.AnalyticsSnapshot `json:"analytics"`
		StatusStats struct {
			Available int `json:"available"`
			Accepted  int `json:"accepted"`
			PickedUp  int `json:"picked_up"`
			Delivered int `json:"delivered"`
		} `json:"status_stats"`
		UnreadNotifications int `json:"unread_notifications"`
	}

	stats.Analytics = ac.Store.Analytics()
	stats.StatusStats.Available = len(ac.Store.WithStatus(models.StatusAvailable))
	stats.StatusStats.Accepted = len(ac.Store.WithStatus(models.StatusAccepted))
	stats.StatusStats.PickedUp = len(ac.Store.WithStatus(models.StatusPickedUp))
	stats.StatusStats.Delivered = len(ac.Store.WithStatus(models.StatusDelivered))
	stats.UnreadNotifications = ac.Store.Notifications().UnreadCount()

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetLeaderboard returns the donor ranking. Open to every
// authenticated role; the leaderboard screen is public in the app.
func (ac *AdminController) GetLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	utils.RespondJSON(c, http.StatusOK, "Top restaurants", ac.Store.TopRestaurants(limit))
}
