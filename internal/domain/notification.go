package domain

import "time"

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	Timestamp time.Time        `json:"timestamp"`
	Link      string           `json:"link,omitempty"`
}

type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
	NotifError   NotificationType = "error"
)
