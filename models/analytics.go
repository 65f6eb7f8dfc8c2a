package models

import "time"

// FoodTypeCount is one entry of the food-type frequency ranking.
type FoodTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// WeeklyStat is one day of the Mon..Sun donation/delivery series.
type WeeklyStat struct {
	Day        string `json:"day"`
	Donations  int    `json:"donations"`
	Deliveries int    `json:"deliveries"`
}

// RestaurantRanking is one leaderboard entry for a donor, ranked by
// descending donation count.
type RestaurantRanking struct {
	RestaurantID      string    `json:"restaurant_id"`
	RestaurantName    string    `json:"restaurant_name"`
	TotalDonations    int       `json:"total_donations"`
	TotalMealsDonated int       `json:"total_meals_donated"`
	LastDonationDate  time.Time `json:"last_donation_date"`
	Location          string    `json:"location,omitempty"`
	Rank              int       `json:"rank"`
}

// AnalyticsSnapshot is the cached, derived summary over all donations.
// Snapshots are recomputed lazily after every store mutation and must
// be treated as read-only by callers.
type AnalyticsSnapshot struct {
	TotalMealsSaved int                 `json:"total_meals_saved"`
	TotalDonations  int                 `json:"total_donations"`
	ActiveDonors    int                 `json:"active_donors"`
	ActiveNGOs      int                 `json:"active_ngos"`
	SuccessRate     int                 `json:"success_rate"`
	CommonFoodTypes []FoodTypeCount     `json:"common_food_types"`
	WeeklyData      []WeeklyStat        `json:"weekly_data"`
	TopRestaurants  []RestaurantRanking `json:"top_restaurants"`
}
