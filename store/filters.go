package store

import (
	"github.com/foodbridge/donation-app/models"
)

// Role-scoped, side-effect-free views over the donation collection.
// Every view returns copies in insertion order.

// CourierBoard partitions the collection for the courier screen. A
// courier is not restricted to donations it accepted; any courier may
// act on any accepted donation.
type CourierBoard struct {
	ReadyForPickup []*models.Donation `json:"ready_for_pickup"`
	InTransit      []*models.Donation `json:"in_transit"`
	Completed      []*models.Donation `json:"completed"`
}

func (s *Store) filter(keep func(*models.Donation) bool) []*models.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Donation, 0)
	for _, d := range s.donations {
		if keep(d) {
			out = append(out, cloneDonation(d))
		}
	}
	return out
}

// All returns every donation, expired ones included; expiry is
// advisory and computed by consumers from ExpiryTime.
func (s *Store) All() []*models.Donation {
	return s.filter(func(*models.Donation) bool { return true })
}

// WithStatus returns the donations currently in the given status.
func (s *Store) WithStatus(status string) []*models.Donation {
	return s.filter(func(d *models.Donation) bool { return d.Status == status })
}

// ByDonor returns the donations created by one donor.
func (s *Store) ByDonor(donorID string) []*models.Donation {
	return s.filter(func(d *models.Donation) bool { return d.DonorID == donorID })
}

// Available returns the donations an NGO can still claim.
func (s *Store) Available() []*models.Donation {
	return s.WithStatus(models.StatusAvailable)
}

// AcceptedBy returns the donations claimed by one recipient org,
// whatever their current status.
func (s *Store) AcceptedBy(ngoID string) []*models.Donation {
	return s.filter(func(d *models.Donation) bool { return d.NgoID == ngoID })
}

// Board returns the courier partition of the collection.
func (s *Store) Board() CourierBoard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board := CourierBoard{
		ReadyForPickup: []*models.Donation{},
		InTransit:      []*models.Donation{},
		Completed:      []*models.Donation{},
	}
	for _, d := range s.donations {
		switch d.Status {
		case models.StatusAccepted:
			board.ReadyForPickup = append(board.ReadyForPickup, cloneDonation(d))
		case models.StatusPickedUp:
			board.InTransit = append(board.InTransit, cloneDonation(d))
		case models.StatusDelivered:
			board.Completed = append(board.Completed, cloneDonation(d))
		}
	}
	return board
}
