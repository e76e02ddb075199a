// Package message stores customer/vendor chat history, one record per
// conversation.
package message

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
)

var ErrEmptyBody = errors.New("message body is empty")

func recordName(conversationID string) string {
	return "messages_" + conversationID
}

type Service interface {
	Send(ctx context.Context, conversationID string, sender domain.User, body string) (*domain.Message, error)
	History(ctx context.Context, conversationID string) ([]domain.Message, error)
}

type service struct {
	records recordstore.Store
}

func NewService(records recordstore.Store) Service {
	return &service{records: records}
}

func (s *service) Send(ctx context.Context, conversationID string, sender domain.User, body string) (*domain.Message, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}

	messages, err := s.History(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	msg := domain.Message{
		ID:             "msg" + uuid.New().String()[:8],
		ConversationID: conversationID,
		SenderID:       sender.ID,
		SenderName:     sender.Name,
		Body:           body,
		Timestamp:      time.Now().UTC(),
	}
	messages = append(messages, msg)

	data, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}
	if err := s.records.Put(ctx, recordName(conversationID), data); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *service) History(ctx context.Context, conversationID string) ([]domain.Message, error) {
	data, err := s.records.Get(ctx, recordName(conversationID))
	if err == recordstore.ErrNotFound {
		return []domain.Message{}, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
