package models

import (
	"regexp"
	"time"
)

// Dinner and dessert choices as stored in the database and exchanged with
// the frontend. The values are wire constants and must not be renamed.
const (
	DinnerRaclette     = "raclette"
	DinnerPierreChaude = "pierreChaudde"

	DessertSorbet        = "sorbet"
	DessertTarteMyrtille = "tarteMyrille"
)

// Guest count bounds for a single invitation.
const (
	GuestCountMin = 1
	GuestCountMax = 10
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidDinnerChoice reports whether s is a known dinner choice.
func ValidDinnerChoice(s string) bool {
	return s == DinnerRaclette || s == DinnerPierreChaude
}

// ValidDessertChoice reports whether s is a known dessert choice.
func ValidDessertChoice(s string) bool {
	return s == DessertSorbet || s == DessertTarteMyrtille
}

// Guest is one invitee response. The attendance and participation fields are
// tri-state: nil means the guest has not answered yet, which is distinct from
// an explicit yes or no.
type Guest struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	LastName            string    `json:"lastName" gorm:"not null"`
	FirstName           string    `json:"firstName" gorm:"not null"`
	Email               string    `json:"email" gorm:"uniqueIndex;not null"`
	IsAttending         *bool     `json:"isAttending"`
	GuestCount          *int      `json:"guestCount"`
	DinnerParticipation *bool     `json:"dinnerParticipation"`
	DinnerChoice        *string   `json:"dinnerChoice"`
	DessertChoice       *string   `json:"dessertChoice"`
	BrunchParticipation *bool     `json:"brunchParticipation"`
	NeedsAccommodation  *bool     `json:"needsAccommodation"`
	AccommodationDates  string    `json:"accommodationDates"`
	Comments            string    `json:"comments"`
	CreatedAt           time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
