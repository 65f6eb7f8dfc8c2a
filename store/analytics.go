package store

import (
	"math"
	"sort"
	"time"

	"github.com/foodbridge/donation-app/models"
)

// Analytics returns the summary snapshot over the full donation
// collection, recomputing only when a mutation happened since the last
// call. The returned snapshot is shared and must not be modified.
func (s *Store) Analytics() *models.AnalyticsSnapshot {
	s.mu.RLock()
	if s.analytics.gen == s.gen {
		snap := s.analytics.snap
		s.mu.RUnlock()
		return snap
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: another reader may have recomputed while we waited.
	if s.analytics.gen == s.gen {
		return s.analytics.snap
	}

	snap := s.computeAnalyticsLocked(time.Now())
	s.analytics = analyticsMemo{gen: s.gen, snap: snap}
	return snap
}

func (s *Store) computeAnalyticsLocked(now time.Time) *models.AnalyticsSnapshot {
	total := len(s.donations)
	meals := 0
	delivered := 0
	donors := make(map[string]struct{})
	ngos := make(map[string]struct{})

	typeCounts := make(map[string]int)
	var typeOrder []string

	for _, d := range s.donations {
		meals += d.Meals()
		if d.Status == models.StatusDelivered {
			delivered++
		}
		donors[d.DonorID] = struct{}{}
		if d.NgoID != "" {
			ngos[d.NgoID] = struct{}{}
		}
		if _, seen := typeCounts[d.FoodType]; !seen {
			typeOrder = append(typeOrder, d.FoodType)
		}
		typeCounts[d.FoodType]++
	}

	successRate := 0
	if total > 0 {
		successRate = int(math.Round(float64(delivered) / float64(total) * 100))
	}

	common := make([]models.FoodTypeCount, 0, len(typeOrder))
	for _, t := range typeOrder {
		common = append(common, models.FoodTypeCount{Type: t, Count: typeCounts[t]})
	}
	sort.SliceStable(common, func(i, j int) bool {
		return common[i].Count > common[j].Count
	})

	return &models.AnalyticsSnapshot{
		TotalMealsSaved: meals,
		TotalDonations:  total,
		ActiveDonors:    len(donors),
		ActiveNGOs:      len(ngos),
		SuccessRate:     successRate,
		CommonFoodTypes: common,
		WeeklyData:      s.weeklyDataLocked(now),
		TopRestaurants:  s.topRestaurantsLocked(5),
	}
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weeklyDataLocked buckets status-history timestamps from the trailing
// seven days into a fixed Mon..Sun series: a donation event on the day
// a record was created, a delivery event on the day its status became
// delivered.
func (s *Store) weeklyDataLocked(now time.Time) []models.WeeklyStat {
	stats := make([]models.WeeklyStat, len(weekdayLabels))
	for i, label := range weekdayLabels {
		stats[i].Day = label
	}
	cutoff := now.AddDate(0, 0, -7)

	dayIndex := func(t time.Time) int {
		// time.Weekday starts at Sunday; the series starts at Monday.
		return (int(t.Weekday()) + 6) % 7
	}

	for _, d := range s.donations {
		if d.CreatedAt.After(cutoff) {
			stats[dayIndex(d.CreatedAt)].Donations++
		}
		for _, h := range d.StatusHistory {
			if h.Status == models.StatusDelivered && h.Timestamp.After(cutoff) {
				stats[dayIndex(h.Timestamp)].Deliveries++
				break
			}
		}
	}
	return stats
}

// TopRestaurants returns the first limit entries of the donor
// leaderboard. The full ranked list is memoized; only the returned
// slice is cut to size. A non-positive limit defaults to 10.
func (s *Store) TopRestaurants(limit int) []models.RestaurantRanking {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	if s.rankings.gen == s.gen {
		out := sliceRankings(s.rankings.ranked, limit)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topRestaurantsLocked(limit)
}

func (s *Store) topRestaurantsLocked(limit int) []models.RestaurantRanking {
	if s.rankings.gen != s.gen {
		s.rankings = rankingMemo{gen: s.gen, ranked: s.computeRankingsLocked()}
	}
	return sliceRankings(s.rankings.ranked, limit)
}

// computeRankingsLocked groups donations by donor in insertion order,
// accumulating count, summed meals, the most recent creation time and
// that donation's pickup location, then ranks by descending count.
// Ties keep the original grouping order.
func (s *Store) computeRankingsLocked() []models.RestaurantRanking {
	type agg struct {
		name     string
		count    int
		meals    int
		lastDate time.Time
		location string
	}
	groups := make(map[string]*agg)
	var order []string

	for _, d := range s.donations {
		g, ok := groups[d.DonorID]
		if !ok {
			g = &agg{name: d.DonorName, lastDate: d.CreatedAt, location: d.PickupLocation}
			groups[d.DonorID] = g
			order = append(order, d.DonorID)
		}
		g.count++
		g.meals += d.Meals()
		if d.CreatedAt.After(g.lastDate) {
			g.lastDate = d.CreatedAt
			g.location = d.PickupLocation
		}
	}

	ranked := make([]models.RestaurantRanking, 0, len(order))
	for _, id := range order {
		g := groups[id]
		ranked = append(ranked, models.RestaurantRanking{
			RestaurantID:      id,
			RestaurantName:    g.name,
			TotalDonations:    g.count,
			TotalMealsDonated: g.meals,
			LastDonationDate:  g.lastDate,
			Location:          g.location,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalDonations > ranked[j].TotalDonations
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func sliceRankings(ranked []models.RestaurantRanking, limit int) []models.RestaurantRanking {
	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]models.RestaurantRanking, limit)
	copy(out, ranked[:limit])
	return out
}
