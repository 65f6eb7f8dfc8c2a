package services

import (
	"fmt"
	"time"

	"github.com/foodbridge/donation-app/live"
	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

// ExpiryMonitor periodically warns donors about available listings
// that are close to expiry. Expiry is advisory only; the store never
// removes or blocks a stale donation.
type ExpiryMonitor struct {
	Store    *store.Store
	Interval time.Duration
	Window   time.Duration
	StopChan chan struct{}

	warned map[string]bool // donation id -> already warned
}

func NewExpiryMonitor(s *store.Store, window time.Duration) *ExpiryMonitor {
	return &ExpiryMonitor{
		Store:    s,
		Interval: 1 * time.Minute,
		Window:   window,
		StopChan: make(chan struct{}),
		warned:   make(map[string]bool),
	}
}

func (em *ExpiryMonitor) Start() {
	go func() {
		ticker := time.NewTicker(em.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				em.sweep(time.Now())
			case <-em.StopChan:
				return
			}
		}
	}()
}

func (em *ExpiryMonitor) Stop() {
	close(em.StopChan)
}

// sweep emits at most one warning per donation once its remaining
// shelf time drops inside the window.
func (em *ExpiryMonitor) sweep(now time.Time) {
	for _, d := range em.Store.Available() {
		if em.warned[d.ID] {
			continue
		}
		if d.ExpiryTime.Sub(now) > em.Window {
			continue
		}
		em.warned[d.ID] = true

		notif := em.Store.Notifications().Add(models.Notification{
			UserID:    d.DonorID,
			Type:      models.NotifWarning,
			Title:     "Donation Expiring Soon",
			Message:   fmt.Sprintf("%s expires at %s and is still unclaimed", d.FoodType, d.ExpiryTime.Format(time.Kitchen)),
			RelatedID: d.ID,
		})
		live.BroadcastNotification(notif)
		utils.InfoLogger.Printf("Expiry warning sent for donation %s (%s)", d.ID, d.FoodType)
	}
}
