package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrialClientDefaults(t *testing.T) {
	c := NewTrialClient("Acme Plumbing", "owner@acme.com", "Plumbers", "Austin TX")

	assert.Empty(t, c.ID)
	assert.Equal(t, StatusTrialing, c.SubscriptionStatus)
	assert.Equal(t, "pro", c.MonthlyPlan)
	assert.Equal(t, "Acme Plumbing", c.BusinessName)
	assert.Equal(t, "owner@acme.com", c.ContactEmail)
}

func TestClientRecordColumnNames(t *testing.T) {
	body, err := json.Marshal(NewTrialClient("a", "b", "c", "d"))
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &data))

	for _, field := range []string{
		"business_name", "contact_email", "prospecting_niche",
		"prospecting_location", "subscription_status", "monthly_plan",
	} {
		assert.Contains(t, data, field)
	}
	// id and created_at belong to storage and are not sent on insert
	assert.NotContains(t, data, "id")
	assert.NotContains(t, data, "created_at")
}
