package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodbridge/donation-app/live"
	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

type NotificationController struct {
	Notifs *store.NotificationCenter
}

func NewNotificationController(nc *store.NotificationCenter) *NotificationController {
	return &NotificationController{Notifs: nc}
}

// GetMyNotifications lists the caller's notifications, broadcasts
// included, most recent first.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	actor := actorFromContext(c)
	utils.RespondJSON(c, http.StatusOK, "Notifications", nc.Notifs.ListFor(actor.ID))
}

// GetUnreadCount drives the badge in the UI.
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	actor := actorFromContext(c)
	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{
		"count": nc.Notifs.UnreadCountFor(actor.ID),
	})
}

// CreateNotification lets an admin push a manual broadcast or a
// message to one user.
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		UserID  string `json:"user_id"`
		Type    string `json:"type"`
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.UserID == "" {
		body.UserID = models.BroadcastUser
	}
	if body.Type == "" || !models.ValidNotifType(body.Type) {
		body.Type = models.NotifInfo
	}

	notif := nc.Notifs.Add(models.Notification{
		UserID:  body.UserID,
		Type:    body.Type,
		Title:   body.Title,
		Message: body.Message,
	})

	utils.InfoLogger.Printf("Notification created: %v", notif.Message)
	live.BroadcastNotification(notif)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkAsRead flags one notification as read. Safe to repeat.
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	id := c.Param("notif_id")
	nc.Notifs.MarkRead(id)
	utils.RespondJSON(c, http.StatusOK, "Notification read", gin.H{"notif_id": id})
}

// DeleteNotification dismisses one notification. Safe to repeat.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id := c.Param("notif_id")
	nc.Notifs.Remove(id)
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
