package domain

import (
	"strings"
	"time"
)

// VendorIDPrefix is the canonical namespace every stored vendor identifier
// carries. Upstream producers (booking forms, historical records) are
// inconsistent about it, so identifiers are normalized on every ingress.
const VendorIDPrefix = "vendor"

// NormalizeVendorID prepends the canonical prefix when missing. Idempotent.
func NormalizeVendorID(id string) string {
	if strings.HasPrefix(id, VendorIDPrefix) {
		return id
	}
	return VendorIDPrefix + id
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentState string

const (
	PaymentPending  PaymentState = "pending"
	PaymentPaid     PaymentState = "paid"
	PaymentRefunded PaymentState = "refunded"
)

type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	VendorID      string        `json:"vendorId"`
	VendorName    string        `json:"vendorName"`
	ServiceName   string        `json:"serviceName"`
	ServiceDate   string        `json:"serviceDate"`
	EventType     string        `json:"eventType"`
	Amount        float64       `json:"amount"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentState  `json:"paymentStatus"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// BookingDraft is a booking as submitted by a customer, before the store
// assigns identity and timestamps.
type BookingDraft struct {
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	VendorID      string        `json:"vendorId"`
	VendorName    string        `json:"vendorName"`
	ServiceName   string        `json:"serviceName"`
	ServiceDate   string        `json:"serviceDate"`
	EventType     string        `json:"eventType"`
	Amount        float64       `json:"amount"`
	Notes         string        `json:"notes,omitempty"`
}

// BookingUpdate carries partial changes; nil fields are left untouched.
type BookingUpdate struct {
	VendorID      *string        `json:"vendorId,omitempty"`
	VendorName    *string        `json:"vendorName,omitempty"`
	ServiceName   *string        `json:"serviceName,omitempty"`
	ServiceDate   *string        `json:"serviceDate,omitempty"`
	EventType     *string        `json:"eventType,omitempty"`
	Amount        *float64       `json:"amount,omitempty"`
	Status        *BookingStatus `json:"status,omitempty"`
	PaymentStatus *PaymentState  `json:"paymentStatus,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}
