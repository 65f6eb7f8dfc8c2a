package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

func TestSweepWarnsOnceInsideWindow(t *testing.T) {
	utils.InitLogger()

	s := store.New(nil)
	d, err := s.CreateDonation(store.CreateDonationInput{
		DonorID:        "hotel1",
		DonorName:      "The Grand Hotel",
		FoodType:       "Biryani",
		Quantity:       "50 servings",
		ExpiryHours:    0.25, // 15 minutes
		PickupLocation: "123 Main St",
	})
	require.NoError(t, err)

	em := NewExpiryMonitor(s, 30*time.Minute)
	em.sweep(time.Now())
	em.sweep(time.Now())

	var warnings []models.Notification
	for _, n := range s.Notifications().ListFor("hotel1") {
		if n.Type == models.NotifWarning {
			warnings = append(warnings, n)
		}
	}
	require.Len(t, warnings, 1, "repeated sweeps must not duplicate the warning")
	assert.Equal(t, d.ID, warnings[0].RelatedID)
	assert.Equal(t, "Donation Expiring Soon", warnings[0].Title)
}

func TestSweepIgnoresDistantExpiry(t *testing.T) {
	utils.InitLogger()

	s := store.New(nil)
	_, err := s.CreateDonation(store.CreateDonationInput{
		DonorID:        "hotel1",
		DonorName:      "The Grand Hotel",
		FoodType:       "Biryani",
		Quantity:       "50 servings",
		ExpiryHours:    5,
		PickupLocation: "123 Main St",
	})
	require.NoError(t, err)

	em := NewExpiryMonitor(s, 30*time.Minute)
	em.sweep(time.Now())

	for _, n := range s.Notifications().List() {
		assert.NotEqual(t, models.NotifWarning, n.Type)
	}
}

func TestSweepSkipsClaimedDonations(t *testing.T) {
	utils.InitLogger()

	s := store.New(nil)
	d, err := s.CreateDonation(store.CreateDonationInput{
		DonorID:        "hotel1",
		DonorName:      "The Grand Hotel",
		FoodType:       "Biryani",
		Quantity:       "50 servings",
		ExpiryHours:    0.25,
		PickupLocation: "123 Main St",
	})
	require.NoError(t, err)
	_, err = s.TransitionStatus(d.ID, models.StatusAccepted, store.Actor{ID: "ngo1"}, nil)
	require.NoError(t, err)

	em := NewExpiryMonitor(s, 30*time.Minute)
	em.sweep(time.Now())

	for _, n := range s.Notifications().List() {
		assert.NotEqual(t, models.NotifWarning, n.Type, "claimed donations need no expiry warning")
	}
}
