package store

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/foodbridge/donation-app/models"
)

// Actor identifies who caused a mutation. Name is optional; the ID is
// used where no display name is known. The store performs no identity
// verification.
type Actor struct {
	ID   string
	Name string
}

func (a Actor) displayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// CreateDonationInput carries the raw listing form values.
type CreateDonationInput struct {
	DonorID           string
	DonorName         string
	DonorOrganization string
	FoodType          string
	Quantity          string
	ExpiryHours       float64
	PickupLocation    string
	PickupCoordinates *models.Coordinates
	Photo             string
	Notes             string
}

type analyticsMemo struct {
	gen  uint64
	snap *models.AnalyticsSnapshot
}

type rankingMemo struct {
	gen    uint64
	ranked []models.RestaurantRanking
}

// Store owns the authoritative in-memory donation collection. A single
// mutex serializes mutations; reads hand out copies so callers never
// observe a donation whose status and history tail disagree. Derived
// analytics are memoized against a generation counter bumped by every
// mutation, so a snapshot can never outlive the write that invalidated
// it.
type Store struct {
	mu        sync.RWMutex
	donations []*models.Donation
	byID      map[string]*models.Donation
	lastID    int64
	gen       uint64

	notifs    *NotificationCenter
	analytics analyticsMemo
	rankings  rankingMemo
}

// New returns an empty store. A nil notification center gets replaced
// with an unbounded one, so tests can construct isolated instances with
// a single call.
func New(nc *NotificationCenter) *Store {
	if nc == nil {
		nc = NewNotificationCenter(0)
	}
	return &Store{
		byID:   make(map[string]*models.Donation),
		gen:    1,
		notifs: nc,
	}
}

// Notifications exposes the notification center the store emits into.
func (s *Store) Notifications() *NotificationCenter {
	return s.notifs
}

// nextID derives an id from the wall clock in milliseconds, bumped past
// the previously issued id so two creations in the same millisecond
// never collide. Caller must hold the write lock.
func (s *Store) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// CreateDonation validates the payload, stores a new donation with
// status available and a single-entry history, emits the broadcast
// notification, and returns a copy of the record.
func (s *Store) CreateDonation(in CreateDonationInput) (*models.Donation, error) {
	if strings.TrimSpace(in.FoodType) == "" {
		return nil, &ValidationError{Field: "food_type", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		return nil, &ValidationError{Field: "pickup_location", Reason: "must not be empty"}
	}
	if models.ParseQuantity(in.Quantity) <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must contain a positive serving count"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	d := &models.Donation{
		ID:                s.nextID(now),
		DonorID:           in.DonorID,
		DonorName:         in.DonorName,
		DonorOrganization: in.DonorOrganization,
		FoodType:          in.FoodType,
		Quantity:          in.Quantity,
		ExpiryTime:        now.Add(time.Duration(in.ExpiryHours * float64(time.Hour))),
		PickupLocation:    in.PickupLocation,
		PickupCoordinates: cloneCoords(in.PickupCoordinates),
		Photo:             in.Photo,
		Notes:             in.Notes,
		Status:            models.StatusAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
		StatusHistory: []models.StatusUpdate{
			{Status: models.StatusAvailable, Timestamp: now, UpdatedBy: "system"},
		},
	}
	s.donations = append(s.donations, d)
	s.byID[d.ID] = d
	s.gen++

	s.notifs.Add(models.Notification{
		UserID:    models.BroadcastUser,
		Type:      models.NotifDonation,
		Title:     "New Food Donation!",
		Message:   fmt.Sprintf("%s donated %s", d.DonorName, d.FoodType),
		RelatedID: d.ID,
	})

	return cloneDonation(d), nil
}

// transitionNotices maps a target status to the notification sent to
// the donor when that transition lands.
var transitionNotices = map[string]struct {
	title string
	typ   string
}{
	models.StatusAccepted:  {title: "Donation Accepted!", typ: models.NotifAcceptance},
	models.StatusPickedUp:  {title: "Food Picked Up", typ: models.NotifPickup},
	models.StatusDelivered: {title: "Delivery Complete!", typ: models.NotifDelivery},
}

// TransitionStatus advances a donation to target, which must be the
// immediate successor of its current status. The history entry records
// the actor and optional coordinates; the accepted transition assigns
// the recipient org, picked-up and later assign the courier and its
// live coordinates. A rejected transition leaves the record untouched.
func (s *Store) TransitionStatus(donationID, target string, actor Actor, coords *models.Coordinates) (*models.Donation, error) {
	if !models.ValidStatus(target) {
		return nil, ErrInvalidTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[donationID]
	if !ok {
		return nil, ErrDonationNotFound
	}
	next, ok := models.NextStatus(d.Status)
	if !ok || next != target {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	d.StatusHistory = append(d.StatusHistory, models.StatusUpdate{
		Status:      target,
		Timestamp:   now,
		UpdatedBy:   actor.ID,
		Coordinates: cloneCoords(coords),
	})
	d.Status = target
	d.UpdatedAt = now

	switch target {
	case models.StatusAccepted:
		d.NgoID = actor.ID
		d.NgoName = actor.displayName()
	case models.StatusPickedUp, models.StatusDelivered:
		d.CourierID = actor.ID
		d.CourierName = actor.displayName()
		if coords != nil {
			d.CourierCoordinates = cloneCoords(coords)
		}
	}
	s.gen++

	notice := transitionNotices[target]
	s.notifs.Add(models.Notification{
		UserID:    d.DonorID,
		Type:      notice.typ,
		Title:     notice.title,
		Message:   fmt.Sprintf("%s status updated to %s", d.FoodType, target),
		RelatedID: d.ID,
	})

	return cloneDonation(d), nil
}

// UpdateCourierLocation refreshes the live coordinates of a donation in
// transit. No history entry is appended; expiry of the analytics memo
// still applies since the record changed.
func (s *Store) UpdateCourierLocation(donationID string, actor Actor, coords models.Coordinates) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[donationID]
	if !ok {
		return nil, ErrDonationNotFound
	}
	if d.Status != models.StatusPickedUp {
		return nil, ErrInvalidTransition
	}

	d.CourierID = actor.ID
	d.CourierName = actor.displayName()
	d.CourierCoordinates = &models.Coordinates{Lat: coords.Lat, Lng: coords.Lng}
	d.UpdatedAt = time.Now()
	s.gen++

	return cloneDonation(d), nil
}

// Get returns a copy of one donation.
func (s *Store) Get(donationID string) (*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byID[donationID]
	if !ok {
		return nil, ErrDonationNotFound
	}
	return cloneDonation(d), nil
}

// Len returns the donation count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.donations)
}

func cloneCoords(c *models.Coordinates) *models.Coordinates {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneDonation(d *models.Donation) *models.Donation {
	cp := *d
	cp.PickupCoordinates = cloneCoords(d.PickupCoordinates)
	cp.CourierCoordinates = cloneCoords(d.CourierCoordinates)
	cp.StatusHistory = make([]models.StatusUpdate, len(d.StatusHistory))
	copy(cp.StatusHistory, d.StatusHistory)
	for i := range cp.StatusHistory {
		cp.StatusHistory[i].Coordinates = cloneCoords(d.StatusHistory[i].Coordinates)
	}
	return &cp
}
