package domain

import "time"

// Message is a single chat message between a customer and a vendor. Messages
// live in per-conversation records keyed by conversation id.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Body           string    `json:"body"`
	Timestamp      time.Time `json:"timestamp"`
	IsRead         bool      `json:"isRead"`
}
