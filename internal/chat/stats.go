package chat

import "github.com/projet-mariage/wedding-api/internal/models"

// UnknownChoice groups guests who have not picked a dinner option yet.
const UnknownChoice = "unknown"

// GuestStats summarises a set of guest records for the assistant.
type GuestStats struct {
	Total              int            `json:"total"`
	Attending          int            `json:"attending"`
	Dinner             int            `json:"dinner"`
	Brunch             int            `json:"brunch"`
	NeedsAccommodation int            `json:"needsAccommodation"`
	GuestCountSum      int            `json:"guestCountSum"`
	ByDinnerChoice     map[string]int `json:"byDinnerChoice"`
}

// AggregateGuests folds guest records into summary counts. GuestCountSum
// only counts guests who confirmed attendance; a declined guest contributes
// zero headcount whatever their stored count says.
func AggregateGuests(guests []models.Guest) GuestStats {
	stats := GuestStats{ByDinnerChoice: map[string]int{}}
	for _, g := range guests {
		stats.Total++
		if isTrue(g.IsAttending) {
			stats.Attending++
			if g.GuestCount != nil {
				stats.GuestCountSum += *g.GuestCount
			}
		}
		if isTrue(g.DinnerParticipation) {
			stats.Dinner++
		}
		if isTrue(g.BrunchParticipation) {
			stats.Brunch++
		}
		if isTrue(g.NeedsAccommodation) {
			stats.NeedsAccommodation++
		}
		choice := UnknownChoice
		if g.DinnerChoice != nil {
			choice = *g.DinnerChoice
		}
		stats.ByDinnerChoice[choice]++
	}
	return stats
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
