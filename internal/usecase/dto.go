package usecase

import "encoding/json"

type RegisterClientInput struct {
	// Answers are kept raw so the length check runs before any entry is decoded.
	Answers []json.RawMessage
}

type RegisterClientOutput struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ClientID string `json:"client_id,omitempty"`
}

const EventCheckoutSessionCompleted = "checkout.session.completed"

type PaymentEventInput struct {
	Type          string
	CustomerEmail string
}

type ActivateSubscriptionOutput struct {
	Status    string `json:"status"`
	Activated bool   `json:"-"`
	Matched   int64  `json:"-"`
}
