package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/projet-mariage/wedding-api/internal/models"
	"gorm.io/gorm"
)

// ToolName identifies one of the read-only lookups the assistant may
// invoke. The set is closed: the executor switches over it exhaustively
// instead of going through a dynamic dispatch table.
type ToolName string

const (
	ToolGetGuestStats   ToolName = "get_guest_stats"
	ToolListGuests      ToolName = "list_guests"
	ToolGetGuestByEmail ToolName = "get_guest_by_email"
)

// List limits for list_guests.
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

type statsArgs struct {
	Filters GuestFilters `json:"filters"`
}

type listArgs struct {
	Filters GuestFilters `json:"filters"`
	Limit   *int         `json:"limit"`
}

type emailArgs struct {
	Email string `json:"email"`
}

// GuestSummary is the projection list_guests returns: display fields only,
// never free-text comments, accommodation dates or timestamps.
type GuestSummary struct {
	LastName            string  `json:"lastName"`
	FirstName           string  `json:"firstName"`
	Email               string  `json:"email"`
	IsAttending         *bool   `json:"isAttending"`
	GuestCount          *int    `json:"guestCount"`
	DinnerParticipation *bool   `json:"dinnerParticipation"`
	BrunchParticipation *bool   `json:"brunchParticipation"`
	DinnerChoice        *string `json:"dinnerChoice"`
	DessertChoice       *string `json:"dessertChoice"`
	NeedsAccommodation  *bool   `json:"needsAccommodation"`
}

type listGuestsResult struct {
	Items []GuestSummary `json:"items"`
}

type guestByEmailResult struct {
	Guest *models.Guest `json:"guest"`
}

// filterSchema is the JSON schema for the shared filters argument.
func filterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isAttending":         map[string]any{"type": []string{"boolean", "null"}},
			"dinnerParticipation": map[string]any{"type": []string{"boolean", "null"}},
			"brunchParticipation": map[string]any{"type": []string{"boolean", "null"}},
			"needsAccommodation":  map[string]any{"type": []string{"boolean", "null"}},
			"dinnerChoice": map[string]any{
				"type": []string{"string", "null"},
				"enum": []any{models.DinnerRaclette, models.DinnerPierreChaude, nil},
			},
			"dessertChoice": map[string]any{
				"type": []string{"string", "null"},
				"enum": []any{models.DessertSorbet, models.DessertTarteMyrtille, nil},
			},
		},
		"additionalProperties": false,
	}
}

// ToolDefinitions describes the tool set offered to the completion
// endpoint on the first round.
func ToolDefinitions() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        string(ToolGetGuestStats),
				Description: openai.String("Return aggregated stats of guests given optional filters."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"filters": filterSchema(),
					},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        string(ToolListGuests),
				Description: openai.String("List guests matching filters with an optional limit (default 20)."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"filters": filterSchema(),
						"limit":   map[string]any{"type": "number", "minimum": 1, "maximum": MaxListLimit},
					},
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        string(ToolGetGuestByEmail),
				Description: openai.String("Find a guest by exact email."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"email": map[string]any{"type": "string"},
					},
					"required": []string{"email"},
				},
			},
		},
	}
}

// ToolExecutor runs assistant tool calls against the guest store.
type ToolExecutor struct {
	db *gorm.DB
}

func NewToolExecutor(db *gorm.DB) *ToolExecutor {
	return &ToolExecutor{db: db}
}

// Execute dispatches a single tool call. The returned value is JSON
// serializable; an error means the call failed and should be reported back
// to the model as a structured error payload.
func (e *ToolExecutor) Execute(ctx context.Context, name ToolName, argsJSON string) (any, error) {
	if strings.TrimSpace(argsJSON) == "" {
		argsJSON = "{}"
	}
	switch name {
	case ToolGetGuestStats:
		var args statsArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return e.guestStats(ctx, args)
	case ToolListGuests:
		var args listArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return e.listGuests(ctx, args)
	case ToolGetGuestByEmail:
		var args emailArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return e.guestByEmail(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

func (e *ToolExecutor) guestStats(ctx context.Context, args statsArgs) (any, error) {
	var guests []models.Guest
	if err := args.Filters.Apply(e.db.WithContext(ctx)).Find(&guests).Error; err != nil {
		return nil, err
	}
	return AggregateGuests(guests), nil
}

func (e *ToolExecutor) listGuests(ctx context.Context, args listArgs) (any, error) {
	limit := DefaultListLimit
	if args.Limit != nil {
		limit = *args.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var guests []models.Guest
	q := args.Filters.Apply(e.db.WithContext(ctx)).Order("created_at DESC").Limit(limit)
	if err := q.Find(&guests).Error; err != nil {
		return nil, err
	}

	items := make([]GuestSummary, 0, len(guests))
	for _, g := range guests {
		items = append(items, GuestSummary{
			LastName:            g.LastName,
			FirstName:           g.FirstName,
			Email:               g.Email,
			IsAttending:         g.IsAttending,
			GuestCount:          g.GuestCount,
			DinnerParticipation: g.DinnerParticipation,
			BrunchParticipation: g.BrunchParticipation,
			DinnerChoice:        g.DinnerChoice,
			DessertChoice:       g.DessertChoice,
			NeedsAccommodation:  g.NeedsAccommodation,
		})
	}
	return listGuestsResult{Items: items}, nil
}

func (e *ToolExecutor) guestByEmail(ctx context.Context, args emailArgs) (any, error) {
	if args.Email == "" {
		return nil, errors.New("email is required")
	}
	var guest models.Guest
	err := e.db.WithContext(ctx).Where("email = ?", args.Email).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guestByEmailResult{Guest: nil}, nil
	}
	if err != nil {
		return nil, err
	}
	return guestByEmailResult{Guest: &guest}, nil
}
