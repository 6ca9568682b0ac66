package handlers

import (
	"context"
	"errors"
	"testing"
)

type stubConverser struct {
	reply    string
	err      error
	messages []string
}

func (s *stubConverser) Converse(ctx context.Context, message string) (string, error) {
	s.messages = append(s.messages, message)
	return s.reply, s.err
}

func TestChatSuccess(t *testing.T) {
	stub := &stubConverser{reply: "42 invités confirmés."}
	h := NewChatHandler(stub)

	resp, err := h.Chat(context.Background(), &ChatInput{RawBody: []byte(`{"message":"combien d'invités ?"}`)})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !resp.Body.Success || resp.Body.Data.Reply != "42 invités confirmés." {
		t.Errorf("unexpected response: %+v", resp.Body)
	}
	if len(stub.messages) != 1 || stub.messages[0] != "combien d'invités ?" {
		t.Errorf("unexpected forwarded messages: %v", stub.messages)
	}
}

func TestChatMessageRequired(t *testing.T) {
	stub := &stubConverser{reply: "should not be reached"}
	h := NewChatHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"null message", `{"message":null}`},
		{"non-string message", `{"message":123}`},
		{"empty message", `{"message":""}`},
		{"not json", `garbage`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Chat(context.Background(), &ChatInput{RawBody: []byte(tc.body)})
			if err == nil {
				t.Fatal("expected error")
			}
			if status := statusOf(t, err); status != 400 {
				t.Errorf("expected 400, got %d", status)
			}
		})
	}
	if len(stub.messages) != 0 {
		t.Errorf("converse should not run on invalid input, got %v", stub.messages)
	}
}

func TestChatConverseFailure(t *testing.T) {
	h := NewChatHandler(&stubConverser{err: errors.New("upstream down")})

	_, err := h.Chat(context.Background(), &ChatInput{RawBody: []byte(`{"message":"hello"}`)})
	if err == nil {
		t.Fatal("expected error")
	}
	if status := statusOf(t, err); status != 500 {
		t.Errorf("expected 500, got %d", status)
	}
}
