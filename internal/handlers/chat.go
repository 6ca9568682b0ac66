package handlers

import (
	"context"
	"encoding/json"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// Converser answers one free-text question about the guest list.
type Converser interface {
	Converse(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	svc Converser
	log zerolog.Logger
}

func NewChatHandler(svc Converser) *ChatHandler {
	return &ChatHandler{
		svc: svc,
		log: zerolog.New(os.Stdout).With().Timestamp().Str("component", "chat-api").Logger(),
	}
}

// ChatInput takes the raw body so a missing, non-string or empty message
// can all be rejected with the same 400 response.
type ChatInput struct {
	RawBody []byte
}

type ChatResponse struct {
	Body struct {
		Success bool `json:"success"`
		Data    struct {
			Reply string `json:"reply"`
		} `json:"data"`
	}
}

func (h *ChatHandler) Chat(ctx context.Context, input *ChatInput) (*ChatResponse, error) {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(input.RawBody, &body); err != nil || body.Message == nil {
		return nil, huma.Error400BadRequest("'message' is required")
	}
	var message string
	if err := json.Unmarshal(body.Message, &message); err != nil || message == "" {
		return nil, huma.Error400BadRequest("'message' is required")
	}

	reply, err := h.svc.Converse(ctx, message)
	if err != nil {
		h.log.Error().Err(err).Msg("chat request failed")
		return nil, huma.Error500InternalServerError("chat error")
	}

	res := &ChatResponse{}
	res.Body.Success = true
	res.Body.Data.Reply = reply
	return res, nil
}
