package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodbridge/donation-app/live"
	"github.com/foodbridge/donation-app/models"
	"github.com/foodbridge/donation-app/store"
	"github.com/foodbridge/donation-app/utils"
)

var ErrNoPermission = errors.New("you do not have permission to perform this action")

type DonationController struct {
	Store *store.Store
}

func NewDonationController(s *store.Store) *DonationController {
	return &DonationController{Store: s}
}

// actorFromContext builds the mutation actor from the identity the auth
// middleware decoded.
func actorFromContext(c *gin.Context) store.Actor {
	var id string
	if userID, ok := c.Get("userID"); ok {
		if uid, ok := userID.(uint); ok {
			id = strconv.FormatUint(uint64(uid), 10)
		}
	}
	return store.Actor{
		ID:   id,
		Name: c.GetString("userName"),
	}
}

type coordsReq struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (r coordsReq) toCoordinates() *models.Coordinates {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &models.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
}

// respondStoreError maps core errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrDonationNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrInvalidTransition):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &vErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// CreateDonation lists surplus food on behalf of the authenticated
// donor.
func (dc *DonationController) CreateDonation(c *gin.Context) {
	type reqBody struct {
		FoodType       string    `json:"food_type" binding:"required"`
		Quantity       string    `json:"quantity" binding:"required"`
		ExpiryHours    float64   `json:"expiry_hours" binding:"required,gt=0"`
		PickupLocation string    `json:"pickup_location" binding:"required"`
		PickupCoords   coordsReq `json:"pickup_coordinates"`
		Photo          string    `json:"photo"`
		Notes          string    `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	actor := actorFromContext(c)
	organization := c.GetString("organization")
	if organization == "" {
		organization = actor.Name
	}

	donation, err := dc.Store.CreateDonation(store.CreateDonationInput{
		DonorID:           actor.ID,
		DonorName:         actor.Name,
		DonorOrganization: organization,
		FoodType:          body.FoodType,
		Quantity:          body.Quantity,
		ExpiryHours:       body.ExpiryHours,
		PickupLocation:    body.PickupLocation,
		PickupCoordinates: body.PickupCoords.toCoordinates(),
		Photo:             body.Photo,
		Notes:             body.Notes,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.InfoLogger.Printf("Donation %s created by %s (%s)", donation.ID, donation.DonorName, donation.FoodType)
	live.BroadcastDonationUpdate(donation)

	utils.RespondJSON(c, http.StatusCreated, "Donation created", donation)
}

// GetAllDonations lists every donation for the admin view, optionally
// filtered by a single status.
func (dc *DonationController) GetAllDonations(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		utils.RespondJSON(c, http.StatusOK, "List of donations", dc.Store.All())
		return
	}
	if !models.ValidStatus(status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown status filter"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of donations", dc.Store.WithStatus(status))
}

// GetDonationByID returns one donation with its full status history.
func (dc *DonationController) GetDonationByID(c *gin.Context) {
	donation, err := dc.Store.Get(c.Param("donation_id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Donation detail", donation)
}

// GetAvailableDonations lists the claimable pool for NGOs.
func (dc *DonationController) GetAvailableDonations(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Available donations", dc.Store.Available())
}

// GetMyDonations lists the authenticated donor's own listings.
func (dc *DonationController) GetMyDonations(c *gin.Context) {
	actor := actorFromContext(c)
	utils.RespondJSON(c, http.StatusOK, "Your donations", dc.Store.ByDonor(actor.ID))
}

// GetClaimedDonations lists the donations claimed by the requesting
// NGO, whatever their current status.
func (dc *DonationController) GetClaimedDonations(c *gin.Context) {
	actor := actorFromContext(c)
	utils.RespondJSON(c, http.StatusOK, "Claimed donations", dc.Store.AcceptedBy(actor.ID))
}

// GetCourierBoard partitions the collection for the courier screen.
// The pickup pool is shared; any courier may take any accepted listing.
func (dc *DonationController) GetCourierBoard(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Courier board", dc.Store.Board())
}

// AcceptDonation claims an available donation for the requesting NGO.
func (dc *DonationController) AcceptDonation(c *gin.Context) {
	dc.transition(c, models.StatusAccepted)
}

// PickUpDonation marks an accepted donation as collected by the
// requesting courier, optionally recording its position.
func (dc *DonationController) PickUpDonation(c *gin.Context) {
	dc.transition(c, models.StatusPickedUp)
}

// DeliverDonation completes the lifecycle.
func (dc *DonationController) DeliverDonation(c *gin.Context) {
	dc.transition(c, models.StatusDelivered)
}

func (dc *DonationController) transition(c *gin.Context, target string) {
	var body coordsReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	donation, err := dc.Store.TransitionStatus(c.Param("donation_id"), target, actorFromContext(c), body.toCoordinates())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.InfoLogger.Printf("Donation %s -> %s by %s", donation.ID, target, donation.StatusHistory[len(donation.StatusHistory)-1].UpdatedBy)
	live.BroadcastDonationUpdate(donation)

	utils.RespondJSON(c, http.StatusOK, "Donation "+target, donation)
}

// UpdateLocation refreshes the courier's live position while a
// donation is in transit.
func (dc *DonationController) UpdateLocation(c *gin.Context) {
	var body coordsReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	pos := body.toCoordinates()
	if pos == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("lat and lng are required"))
		return
	}

	coords := *pos
	donation, err := dc.Store.UpdateCourierLocation(c.Param("donation_id"), actorFromContext(c), coords)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	live.BroadcastCourierLocation(donation.ID, coords)
	utils.RespondJSON(c, http.StatusOK, "Location updated", donation)
}
