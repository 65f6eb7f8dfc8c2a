package store

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbridge/donation-app/models"
)

func validInput() CreateDonationInput {
	return CreateDonationInput{
		DonorID:           "hotel1",
		DonorName:         "The Grand Hotel",
		DonorOrganization: "The Grand Hotel",
		FoodType:          "Biryani",
		Quantity:          "50 servings",
		ExpiryHours:       2,
		PickupLocation:    "123 Main St, Downtown",
	}
}

func TestCreateDonationInitialHistory(t *testing.T) {
	s := New(nil)

	d, err := s.CreateDonation(validInput())
	require.NoError(t, err)

	assert.Equal(t, models.StatusAvailable, d.Status)
	require.Len(t, d.StatusHistory, 1)
	assert.Equal(t, models.StatusAvailable, d.StatusHistory[0].Status)
	assert.Equal(t, "system", d.StatusHistory[0].UpdatedBy)
	assert.Equal(t, 50, d.Meals())
	assert.True(t, d.ExpiryTime.After(d.CreatedAt))
}

func TestCreateDonationValidation(t *testing.T) {
	s := New(nil)

	cases := []struct {
		name   string
		mutate func(*CreateDonationInput)
	}{
		{"empty food type", func(in *CreateDonationInput) { in.FoodType = "  " }},
		{"empty pickup location", func(in *CreateDonationInput) { in.PickupLocation = "" }},
		{"unparseable quantity", func(in *CreateDonationInput) { in.Quantity = "abc" }},
		{"zero quantity", func(in *CreateDonationInput) { in.Quantity = "0 servings" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := s.CreateDonation(in)
			require.Error(t, err)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
	assert.Equal(t, 0, s.Len(), "rejected payloads must not be stored")
}

func TestCreateDonationIDsStrictlyIncrease(t *testing.T) {
	s := New(nil)

	prev := int64(0)
	for i := 0; i < 50; i++ {
		d, err := s.CreateDonation(validInput())
		require.NoError(t, err)

		id, err := strconv.ParseInt(d.ID, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestAcceptRecordsRecipient(t *testing.T) {
	s := New(nil)
	d, err := s.CreateDonation(validInput())
	require.NoError(t, err)
	before := len(s.Notifications().List())

	got, err := s.TransitionStatus(d.ID, models.StatusAccepted, Actor{ID: "ngo1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAccepted, got.Status)
	assert.Equal(t, "ngo1", got.NgoID)
	assert.Equal(t, "ngo1", got.NgoName)
	require.Len(t, got.StatusHistory, 2)
	assert.Equal(t, "ngo1", got.StatusHistory[1].UpdatedBy)

	notifs := s.Notifications().List()
	require.Len(t, notifs, before+1)
	assert.Equal(t, "Donation Accepted!", notifs[0].Title)
	assert.Equal(t, models.NotifAcceptance, notifs[0].Type)
	assert.Equal(t, d.DonorID, notifs[0].UserID)
	assert.Equal(t, d.ID, notifs[0].RelatedID)
}

func TestInvalidTransitionsLeaveHistoryUntouched(t *testing.T) {
	s := New(nil)
	d, err := s.CreateDonation(validInput())
	require.NoError(t, err)

	for _, target := range []string{
		models.StatusAvailable, // repeat current
		models.StatusPickedUp,  // skip ahead
		models.StatusDelivered, // skip two
		"cancelled",            // unknown
	} {
		_, err := s.TransitionStatus(d.ID, target, Actor{ID: "x"}, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition, "target %q", target)
	}

	got, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, got.Status)
	assert.Len(t, got.StatusHistory, 1)
}

func TestBackwardTransitionRejected(t *testing.T) {
	s := New(nil)
	d, _ := s.CreateDonation(validInput())
	_, err := s.TransitionStatus(d.ID, models.StatusAccepted, Actor{ID: "ngo1"}, nil)
	require.NoError(t, err)

	_, err = s.TransitionStatus(d.ID, models.StatusAvailable, Actor{ID: "ngo1"}, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownDonation(t *testing.T) {
	s := New(nil)

	_, err := s.TransitionStatus("nope", models.StatusAccepted, Actor{ID: "ngo1"}, nil)
	assert.ErrorIs(t, err, ErrDonationNotFound)
}

func TestFullLifecycle(t *testing.T) {
	s := New(nil)

	in := validInput()
	in.FoodType = "Pizza"
	in.Quantity = "30 slices"
	d, err := s.CreateDonation(in)
	require.NoError(t, err)

	_, err = s.TransitionStatus(d.ID, models.StatusAccepted, Actor{ID: "ngoX"}, nil)
	require.NoError(t, err)

	coords := &models.Coordinates{Lat: 1, Lng: 2}
	picked, err := s.TransitionStatus(d.ID, models.StatusPickedUp, Actor{ID: "courierY"}, coords)
	require.NoError(t, err)
	assert.Equal(t, "courierY", picked.CourierID)
	require.NotNil(t, picked.CourierCoordinates)
	assert.Equal(t, 1.0, picked.CourierCoordinates.Lat)

	final, err := s.TransitionStatus(d.ID, models.StatusDelivered, Actor{ID: "ngoX"}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDelivered, final.Status)
	require.Len(t, final.StatusHistory, 4)
	for i := 1; i < len(final.StatusHistory); i++ {
		assert.False(t, final.StatusHistory[i].Timestamp.Before(final.StatusHistory[i-1].Timestamp),
			"history timestamps must be non-decreasing")
	}
	assert.Equal(t, final.Status, final.StatusHistory[len(final.StatusHistory)-1].Status)

	// Creation broadcast plus one donor notification per transition.
	assert.Len(t, s.Notifications().List(), 4)
	assert.Equal(t, 100, s.Analytics().SuccessRate)
}

func TestUpdateCourierLocation(t *testing.T) {
	s := New(nil)
	d, _ := s.CreateDonation(validInput())

	_, err := s.UpdateCourierLocation(d.ID, Actor{ID: "courier1"}, models.Coordinates{Lat: 3, Lng: 4})
	assert.ErrorIs(t, err, ErrInvalidTransition, "location updates only apply in transit")

	s.TransitionStatus(d.ID, models.StatusAccepted, Actor{ID: "ngo1"}, nil)
	s.TransitionStatus(d.ID, models.StatusPickedUp, Actor{ID: "courier1"}, nil)

	got, err := s.UpdateCourierLocation(d.ID, Actor{ID: "courier1"}, models.Coordinates{Lat: 3, Lng: 4})
	require.NoError(t, err)
	require.NotNil(t, got.CourierCoordinates)
	assert.Equal(t, 3.0, got.CourierCoordinates.Lat)
	assert.Len(t, got.StatusHistory, 3, "en-route updates must not append history")

	_, err = s.UpdateCourierLocation("nope", Actor{ID: "courier1"}, models.Coordinates{})
	assert.ErrorIs(t, err, ErrDonationNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	s := New(nil)
	d, _ := s.CreateDonation(validInput())

	d.Status = "tampered"
	d.StatusHistory[0].Status = "tampered"

	got, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, got.Status)
	assert.Equal(t, models.StatusAvailable, got.StatusHistory[0].Status)
}
