package chat

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const systemPrompt = `You are an assistant for a wedding admin dashboard. You can query the guest database via tools to answer questions about guests, attendance, meals, and accommodations. Always be concise and answer in the user's language. If needed, call tools to fetch exact numbers or lists.`

// MissingKeyReply is returned without contacting OpenAI when no API key is
// configured. The endpoint stays reachable, just degraded.
const MissingKeyReply = "OpenAI API key missing. Set OPENAI_API_KEY to enable the assistant."

// samplingTemperature leans deterministic so factual answers stay
// consistent between identical questions.
const samplingTemperature = 0.2

// Completer is the slice of the OpenAI client the service needs.
type Completer interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type openaiCompleter struct {
	client openai.Client
}

func (c *openaiCompleter) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}

// Service answers free-text questions about the guest list. Each call to
// Converse is an independent exchange of at most two completion rounds: one
// to let the model request tools, one to fold the tool results into a final
// answer. No conversation state is kept between calls.
type Service struct {
	completer Completer
	tools     *ToolExecutor
	model     openai.ChatModel
	log       zerolog.Logger
}

func NewService(db *gorm.DB, apiKey, model string) *Service {
	s := &Service{
		tools: NewToolExecutor(db),
		model: openai.ChatModel(model),
		log:   zerolog.New(os.Stdout).With().Timestamp().Str("component", "chat").Logger(),
	}
	if apiKey != "" {
		s.completer = &openaiCompleter{client: openai.NewClient(option.WithAPIKey(apiKey))}
	}
	return s
}

// Converse runs one user message through the two-round tool loop and
// returns the assistant's final reply.
func (s *Service) Converse(ctx context.Context, userMessage string) (string, error) {
	if s.completer == nil {
		return MissingKeyReply, nil
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(userMessage),
	}

	// First round: the model decides whether it needs tools.
	first, err := s.completer.Complete(ctx, openai.ChatCompletionNewParams{
		Model:       s.model,
		Messages:    messages,
		Tools:       ToolDefinitions(),
		ToolChoice:  openai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openai.String("auto")},
		Temperature: openai.Float(samplingTemperature),
	})
	if err != nil {
		return "", err
	}
	if len(first.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	assistant := first.Choices[0].Message
	if len(assistant.ToolCalls) == 0 {
		return assistant.Content, nil
	}

	messages = append(messages, assistant.ToParam())

	// Execute tool calls sequentially so every result stays attributable
	// to its call id. A failing tool becomes an error payload in the
	// conversation instead of aborting the round.
	for _, call := range assistant.ToolCalls {
		messages = append(messages, openai.ToolMessage(s.runTool(ctx, call), call.ID))
	}

	// Second round: final answer from the tool outputs. No tools offered.
	second, err := s.completer.Complete(ctx, openai.ChatCompletionNewParams{
		Model:       s.model,
		Messages:    messages,
		Temperature: openai.Float(samplingTemperature),
	})
	if err != nil {
		return "", err
	}
	if len(second.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	final := second.Choices[0].Message
	if len(final.ToolCalls) > 0 {
		s.log.Warn().Int("count", len(final.ToolCalls)).Msg("model requested tools after the resolution round; dropping them")
	}
	return final.Content, nil
}

func (s *Service) runTool(ctx context.Context, call openai.ChatCompletionMessageToolCall) string {
	result, err := s.tools.Execute(ctx, ToolName(call.Function.Name), call.Function.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", call.Function.Name).Msg("tool execution failed")
		result = map[string]any{"error": true, "message": err.Error()}
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return `{"error":true,"message":"unserializable tool result"}`
	}
	return string(payload)
}
