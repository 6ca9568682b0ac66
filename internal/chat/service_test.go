package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/projet-mariage/wedding-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type fakeCompleter struct {
	responses []*openai.ChatCompletion
	params    []openai.ChatCompletionNewParams
	err       error
}

func (f *fakeCompleter) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func toolResponse(calls ...openai.ChatCompletionMessageToolCall) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{ToolCalls: calls}},
		},
	}
}

func toolCall(id string, name ToolName, args string) openai.ChatCompletionMessageToolCall {
	return openai.ChatCompletionMessageToolCall{
		ID: id,
		Function: openai.ChatCompletionMessageToolCallFunction{
			Name:      string(name),
			Arguments: args,
		},
	}
}

func newTestService(db *gorm.DB, f *fakeCompleter) *Service {
	return &Service{
		completer: f,
		tools:     NewToolExecutor(db),
		model:     "gpt-4o-mini",
		log:       zerolog.Nop(),
	}
}

func toolMessages(params openai.ChatCompletionNewParams) []string {
	var contents []string
	for _, m := range params.Messages {
		if m.OfTool != nil {
			contents = append(contents, m.OfTool.Content.OfString.Value)
		}
	}
	return contents
}

func TestConverseMissingKey(t *testing.T) {
	svc := NewService(newTestDB(t), "", "gpt-4o-mini")

	reply, err := svc.Converse(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if !strings.Contains(reply, "OPENAI_API_KEY") {
		t.Errorf("expected missing-key reply, got %q", reply)
	}
}

func TestConverseNoToolsNeeded(t *testing.T) {
	f := &fakeCompleter{responses: []*openai.ChatCompletion{textResponse("Bonjour !")}}
	svc := newTestService(newTestDB(t), f)

	reply, err := svc.Converse(context.Background(), "dis bonjour")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if reply != "Bonjour !" {
		t.Errorf("expected verbatim reply, got %q", reply)
	}
	if len(f.params) != 1 {
		t.Fatalf("expected exactly 1 completion call, got %d", len(f.params))
	}
	if len(f.params[0].Tools) == 0 {
		t.Error("expected tools to be offered on the first round")
	}
}

func TestConverseEmptyContent(t *testing.T) {
	f := &fakeCompleter{responses: []*openai.ChatCompletion{textResponse("")}}
	svc := newTestService(newTestDB(t), f)

	reply, err := svc.Converse(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if reply != "" {
		t.Errorf("expected empty reply, got %q", reply)
	}
}

func TestConverseWithToolCalls(t *testing.T) {
	db := newTestDB(t)
	seedGuest(t, db, models.Guest{
		LastName: "Martin", FirstName: "Alice", Email: "alice@example.com",
		IsAttending: boolPtr(true), GuestCount: intPtr(2),
	})

	f := &fakeCompleter{responses: []*openai.ChatCompletion{
		toolResponse(
			toolCall("call_1", ToolGetGuestStats, `{"filters":{"isAttending":true}}`),
			toolCall("call_2", ToolGetGuestByEmail, `{"email":"alice@example.com"}`),
		),
		textResponse("Il y a 1 invité confirmé."),
	}}
	svc := newTestService(db, f)

	reply, err := svc.Converse(context.Background(), "combien d'invités ?")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if reply != "Il y a 1 invité confirmé." {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(f.params) != 2 {
		t.Fatalf("expected exactly 2 completion calls, got %d", len(f.params))
	}

	second := f.params[1]
	if len(second.Tools) != 0 {
		t.Error("expected no tools on the second round")
	}
	// system + user + assistant tool request + one result per call.
	if len(second.Messages) != 5 {
		t.Errorf("expected 5 messages on the second round, got %d", len(second.Messages))
	}
	results := toolMessages(second)
	if len(results) != 2 {
		t.Fatalf("expected 2 tool results, got %d", len(results))
	}
	if !strings.Contains(results[0], `"guestCountSum":2`) {
		t.Errorf("stats result not fed back: %s", results[0])
	}
	if !strings.Contains(results[1], "alice@example.com") {
		t.Errorf("lookup result not fed back: %s", results[1])
	}
}

func TestConverseToolFailureIsRecovered(t *testing.T) {
	f := &fakeCompleter{responses: []*openai.ChatCompletion{
		toolResponse(
			toolCall("call_1", ToolName("bogus_tool"), `{}`),
			toolCall("call_2", ToolGetGuestStats, `{}`),
		),
		textResponse("Voilà."),
	}}
	svc := newTestService(newTestDB(t), f)

	reply, err := svc.Converse(context.Background(), "stats ?")
	if err != nil {
		t.Fatalf("Converse returned error: %v", err)
	}
	if reply != "Voilà." {
		t.Errorf("unexpected reply %q", reply)
	}

	results := toolMessages(f.params[1])
	if len(results) != 2 {
		t.Fatalf("expected 2 tool results despite the failure, got %d", len(results))
	}
	if !strings.Contains(results[0], `"error":true`) {
		t.Errorf("expected structured error payload, got %s", results[0])
	}
	if !strings.Contains(results[1], `"total":0`) {
		t.Errorf("expected the second tool to still run, got %s", results[1])
	}
}

func TestConverseCompletionErrorPropagates(t *testing.T) {
	f := &fakeCompleter{err: errors.New("upstream down")}
	svc := newTestService(newTestDB(t), f)

	if _, err := svc.Converse(context.Background(), "hello"); err == nil {
		t.Error("expected completion error to propagate")
	}
}
