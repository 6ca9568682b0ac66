package chat

import (
	"github.com/projet-mariage/wedding-api/internal/models"
	"gorm.io/gorm"
)

// GuestFilters is the sparse filter accepted by the assistant tools. Every
// field is tri-state: an absent key imposes no constraint, an explicit null
// matches guests whose answer is still null, and a value matches exactly.
type GuestFilters struct {
	IsAttending         models.Nullable[bool]   `json:"isAttending"`
	DinnerParticipation models.Nullable[bool]   `json:"dinnerParticipation"`
	BrunchParticipation models.Nullable[bool]   `json:"brunchParticipation"`
	NeedsAccommodation  models.Nullable[bool]   `json:"needsAccommodation"`
	DinnerChoice        models.Nullable[string] `json:"dinnerChoice"`
	DessertChoice       models.Nullable[string] `json:"dessertChoice"`
}

// Condition is a single equality clause of a guest query. A nil Value
// matches rows where the column is stored as NULL.
type Condition struct {
	Column string
	Value  any
}

// Conditions translates the filter into equality clauses, one per key that
// was present in the input and nothing else.
func (f GuestFilters) Conditions() []Condition {
	var conds []Condition
	appendCond := func(column string, present bool, value any) {
		if present {
			conds = append(conds, Condition{Column: column, Value: value})
		}
	}
	appendCond("is_attending", f.IsAttending.Present, nullableValue(f.IsAttending))
	appendCond("dinner_participation", f.DinnerParticipation.Present, nullableValue(f.DinnerParticipation))
	appendCond("brunch_participation", f.BrunchParticipation.Present, nullableValue(f.BrunchParticipation))
	appendCond("needs_accommodation", f.NeedsAccommodation.Present, nullableValue(f.NeedsAccommodation))
	appendCond("dinner_choice", f.DinnerChoice.Present, nullableValue(f.DinnerChoice))
	appendCond("dessert_choice", f.DessertChoice.Present, nullableValue(f.DessertChoice))
	return conds
}

func nullableValue[T any](n models.Nullable[T]) any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// Apply adds the filter's clauses to a gorm query.
func (f GuestFilters) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range f.Conditions() {
		if c.Value == nil {
			db = db.Where(c.Column + " IS NULL")
		} else {
			db = db.Where(c.Column+" = ?", c.Value)
		}
	}
	return db
}
