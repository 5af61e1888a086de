package chat

import (
	"context"

	"github.com/tetraminz/character_tuning/internal/training"
)

type exchange struct {
	user      string
	assistant string
}

// Session holds one conversation with a character. History only grows when
// the model actually answered, so a failed request can be retried.
type Session struct {
	client    *Client
	model     string
	character string
	history   []exchange
}

// NewSession starts a conversation with the given character model.
func NewSession(client *Client, model, character string) *Session {
	return &Session{
		client:    client,
		model:     model,
		character: character,
	}
}

// Send asks the character for a reply to the user message.
func (s *Session) Send(ctx context.Context, userText string) (string, error) {
	messages := make([]Message, 0, 2*len(s.history)+2)
	messages = append(messages, Message{
		Role:    "system",
		Content: training.Preamble(s.character),
	})
	for _, past := range s.history {
		messages = append(messages, Message{Role: "user", Content: past.user})
		messages = append(messages, Message{Role: "assistant", Content: past.assistant})
	}
	messages = append(messages, Message{Role: "user", Content: userText})

	reply, err := s.client.Complete(ctx, s.model, messages)
	if err != nil {
		return "", err
	}

	s.history = append(s.history, exchange{user: userText, assistant: reply})
	return reply, nil
}

// Len reports how many completed exchanges the session holds.
func (s *Session) Len() int {
	return len(s.history)
}
