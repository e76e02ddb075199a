package domain

import "time"

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentReversed  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodPayPal     PaymentMethod = "paypal"
)

type Payment struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"bookingId"`
	UserID        string        `json:"userId"`
	VendorID      string        `json:"vendorId"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type PaymentRequest struct {
	BookingID string        `json:"bookingId"`
	UserID    string        `json:"userId"`
	VendorID  string        `json:"vendorId"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency,omitempty"`
	Method    PaymentMethod `json:"paymentMethod"`
	Card      *CardDetails  `json:"cardDetails,omitempty"`
}

type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}
