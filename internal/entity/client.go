package entity

import (
	"context"
	"errors"
	"time"
)

var ErrStorageUnavailable = errors.New("storage client not initialized")

type SubscriptionStatus string

const (
	StatusTrialing SubscriptionStatus = "trialing"
	StatusActive   SubscriptionStatus = "active"
)

const MonthlyPlanPro = "pro"

// ClientRecord is one row of the clients table.
type ClientRecord struct {
	ID                  string             `json:"id,omitempty"`
	BusinessName        string             `json:"business_name"`
	ContactEmail        string             `json:"contact_email"`
	ProspectingNiche    string             `json:"prospecting_niche"`
	ProspectingLocation string             `json:"prospecting_location"`
	SubscriptionStatus  SubscriptionStatus `json:"subscription_status"`
	MonthlyPlan         string             `json:"monthly_plan"`
	CreatedAt           *time.Time         `json:"created_at,omitempty"`
}

// NewTrialClient builds a record for a fresh signup. The ID is left empty,
// storage assigns it on insert.
func NewTrialClient(businessName, contactEmail, niche, location string) *ClientRecord {
	return &ClientRecord{
		BusinessName:        businessName,
		ContactEmail:        contactEmail,
		ProspectingNiche:    niche,
		ProspectingLocation: location,
		SubscriptionStatus:  StatusTrialing,
		MonthlyPlan:         MonthlyPlanPro,
	}
}

type ClientRepository interface {
	// Insert always creates a new row and returns the storage-assigned ID.
	Insert(ctx context.Context, c *ClientRecord) (string, error)
	// ActivateByEmail marks every row whose contact_email equals email
	// (exact, case-sensitive) as active and returns how many rows matched.
	ActivateByEmail(ctx context.Context, email string) (int64, error)
	Ping(ctx context.Context) error
}
