package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/projet-mariage/wedding-api/internal/models"
	"github.com/projet-mariage/wedding-api/internal/notifier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type GuestHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
	log      zerolog.Logger
}

func NewGuestHandler(db *gorm.DB, n notifier.Notifier) *GuestHandler {
	return &GuestHandler{
		db:       db,
		notifier: n,
		log:      zerolog.New(os.Stdout).With().Timestamp().Str("component", "guests").Logger(),
	}
}

type CreateGuestInput struct {
	Body struct {
		LastName            string  `json:"lastName" minLength:"1" doc:"Family name"`
		FirstName           string  `json:"firstName" minLength:"1" doc:"Given name"`
		Email               string  `json:"email" minLength:"1" doc:"Contact email, unique per guest"`
		IsAttending         *bool   `json:"isAttending,omitempty" nullable:"true"`
		GuestCount          *int    `json:"guestCount,omitempty" nullable:"true" minimum:"1" maximum:"10"`
		DinnerParticipation *bool   `json:"dinnerParticipation,omitempty" nullable:"true"`
		DinnerChoice        *string `json:"dinnerChoice,omitempty" nullable:"true" enum:"raclette,pierreChaudde"`
		DessertChoice       *string `json:"dessertChoice,omitempty" nullable:"true" enum:"sorbet,tarteMyrille"`
		BrunchParticipation *bool   `json:"brunchParticipation,omitempty" nullable:"true"`
		NeedsAccommodation  *bool   `json:"needsAccommodation,omitempty" nullable:"true"`
		AccommodationDates  string  `json:"accommodationDates,omitempty"`
		Comments            string  `json:"comments,omitempty"`
	}
}

type GuestResponse struct {
	Body struct {
		Success bool         `json:"success"`
		Data    models.Guest `json:"data"`
	}
}

type GuestListResponse struct {
	Body struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Data    []models.Guest `json:"data"`
	}
}

type GuestDeletedResponse struct {
	Body struct {
		Success bool `json:"success"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
}

type GuestIDInput struct {
	ID string `path:"id" doc:"Guest identifier"`
}

func parseGuestID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, huma.Error400BadRequest("invalid guest id")
	}
	return uint(id), nil
}

func (h *GuestHandler) Create(ctx context.Context, input *CreateGuestInput) (*GuestResponse, error) {
	b := input.Body
	if !models.ValidEmail(b.Email) {
		return nil, huma.Error400BadRequest("email must be a valid email address")
	}

	guest := models.Guest{
		LastName:            b.LastName,
		FirstName:           b.FirstName,
		Email:               b.Email,
		IsAttending:         b.IsAttending,
		GuestCount:          b.GuestCount,
		DinnerParticipation: b.DinnerParticipation,
		DinnerChoice:        b.DinnerChoice,
		DessertChoice:       b.DessertChoice,
		BrunchParticipation: b.BrunchParticipation,
		NeedsAccommodation:  b.NeedsAccommodation,
		AccommodationDates:  b.AccommodationDates,
		Comments:            b.Comments,
	}

	if err := h.db.WithContext(ctx).Create(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("a guest with this email already exists")
		}
		h.log.Error().Err(err).Msg("failed to create guest")
		return nil, huma.Error400BadRequest("failed to create guest")
	}

	h.notify(guest, "created")

	res := &GuestResponse{}
	res.Body.Success = true
	res.Body.Data = guest
	return res, nil
}

func (h *GuestHandler) List(ctx context.Context, _ *struct{}) (*GuestListResponse, error) {
	var guests []models.Guest
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&guests).Error; err != nil {
		h.log.Error().Err(err).Msg("failed to list guests")
		return nil, huma.Error500InternalServerError("failed to fetch the guest list")
	}

	res := &GuestListResponse{}
	res.Body.Success = true
	res.Body.Count = len(guests)
	res.Body.Data = guests
	return res, nil
}

func (h *GuestHandler) Get(ctx context.Context, input *GuestIDInput) (*GuestResponse, error) {
	id, err := parseGuestID(input.ID)
	if err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("guest not found")
		}
		h.log.Error().Err(err).Msg("failed to fetch guest")
		return nil, huma.Error500InternalServerError("failed to fetch guest")
	}

	res := &GuestResponse{}
	res.Body.Success = true
	res.Body.Data = guest
	return res, nil
}

type UpdateGuestInput struct {
	ID      string `path:"id" doc:"Guest identifier"`
	RawBody []byte
}

// guestUpdateBody is decoded by hand so a key that is absent can be told
// apart from a key explicitly set to null: only present keys are written,
// and only nullable fields may carry null. The id and timestamps are not
// part of the struct, so they are stripped from the payload silently.
type guestUpdateBody struct {
	LastName            models.Nullable[string] `json:"lastName"`
	FirstName           models.Nullable[string] `json:"firstName"`
	Email               models.Nullable[string] `json:"email"`
	IsAttending         models.Nullable[bool]   `json:"isAttending"`
	GuestCount          models.Nullable[int]    `json:"guestCount"`
	DinnerParticipation models.Nullable[bool]   `json:"dinnerParticipation"`
	DinnerChoice        models.Nullable[string] `json:"dinnerChoice"`
	DessertChoice       models.Nullable[string] `json:"dessertChoice"`
	BrunchParticipation models.Nullable[bool]   `json:"brunchParticipation"`
	NeedsAccommodation  models.Nullable[bool]   `json:"needsAccommodation"`
	AccommodationDates  models.Nullable[string] `json:"accommodationDates"`
	Comments            models.Nullable[string] `json:"comments"`
}

func (b guestUpdateBody) validate() error {
	requiredText := []struct {
		name  string
		field models.Nullable[string]
	}{
		{"lastName", b.LastName},
		{"firstName", b.FirstName},
		{"email", b.Email},
	}
	for _, f := range requiredText {
		if f.field.Present && (!f.field.Valid || f.field.Value == "") {
			return huma.Error400BadRequest(f.name + " cannot be empty")
		}
	}
	if b.Email.Present && !models.ValidEmail(b.Email.Value) {
		return huma.Error400BadRequest("email must be a valid email address")
	}
	if b.GuestCount.Present {
		if !b.GuestCount.Valid || b.GuestCount.Value < models.GuestCountMin || b.GuestCount.Value > models.GuestCountMax {
			return huma.Error400BadRequest("guest count must be an integer between 1 and 10")
		}
	}
	if b.DinnerChoice.Present && b.DinnerChoice.Valid && !models.ValidDinnerChoice(b.DinnerChoice.Value) {
		return huma.Error400BadRequest("invalid dinner choice")
	}
	if b.DessertChoice.Present && b.DessertChoice.Valid && !models.ValidDessertChoice(b.DessertChoice.Value) {
		return huma.Error400BadRequest("invalid dessert choice")
	}
	return nil
}

func (b guestUpdateBody) changes() map[string]any {
	updates := map[string]any{}
	setText := func(column string, f models.Nullable[string]) {
		if f.Present {
			updates[column] = f.Value
		}
	}
	setNullable := func(column string, value any, present bool) {
		if present {
			updates[column] = value
		}
	}
	setText("last_name", b.LastName)
	setText("first_name", b.FirstName)
	setText("email", b.Email)
	setText("accommodation_dates", b.AccommodationDates)
	setText("comments", b.Comments)
	setNullable("is_attending", b.IsAttending.Ptr(), b.IsAttending.Present)
	setNullable("guest_count", b.GuestCount.Ptr(), b.GuestCount.Present)
	setNullable("dinner_participation", b.DinnerParticipation.Ptr(), b.DinnerParticipation.Present)
	setNullable("dinner_choice", b.DinnerChoice.Ptr(), b.DinnerChoice.Present)
	setNullable("dessert_choice", b.DessertChoice.Ptr(), b.DessertChoice.Present)
	setNullable("brunch_participation", b.BrunchParticipation.Ptr(), b.BrunchParticipation.Present)
	setNullable("needs_accommodation", b.NeedsAccommodation.Ptr(), b.NeedsAccommodation.Present)
	return updates
}

func (h *GuestHandler) Update(ctx context.Context, input *UpdateGuestInput) (*GuestResponse, error) {
	id, err := parseGuestID(input.ID)
	if err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("guest not found")
		}
		h.log.Error().Err(err).Msg("failed to fetch guest")
		return nil, huma.Error500InternalServerError("failed to fetch guest")
	}

	var body guestUpdateBody
	if err := json.Unmarshal(input.RawBody, &body); err != nil {
		return nil, huma.Error400BadRequest("invalid request body")
	}
	if err := body.validate(); err != nil {
		return nil, err
	}

	updates := body.changes()
	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(&guest).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, huma.Error400BadRequest("a guest with this email already exists")
			}
			h.log.Error().Err(err).Msg("failed to update guest")
			return nil, huma.Error400BadRequest("failed to update guest")
		}
		if err := h.db.WithContext(ctx).First(&guest, id).Error; err != nil {
			h.log.Error().Err(err).Msg("failed to reload guest")
			return nil, huma.Error500InternalServerError("failed to fetch the updated guest")
		}
		h.notify(guest, "updated")
	}

	res := &GuestResponse{}
	res.Body.Success = true
	res.Body.Data = guest
	return res, nil
}

func (h *GuestHandler) Delete(ctx context.Context, input *GuestIDInput) (*GuestDeletedResponse, error) {
	id, err := parseGuestID(input.ID)
	if err != nil {
		return nil, err
	}

	result := h.db.WithContext(ctx).Delete(&models.Guest{}, id)
	if result.Error != nil {
		h.log.Error().Err(result.Error).Msg("failed to delete guest")
		return nil, huma.Error500InternalServerError("failed to delete guest")
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("guest not found")
	}

	res := &GuestDeletedResponse{}
	res.Body.Success = true
	res.Body.Data.Message = "guest deleted"
	return res, nil
}

func (h *GuestHandler) notify(guest models.Guest, action string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.NotifyGuestChange(guest, action); err != nil {
		h.log.Warn().Err(err).Msg("discord notification failed")
	}
}
