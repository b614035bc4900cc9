package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/xavierca1/callflex-webhooks/internal/entity"
)

const (
	clientsTable   = "clients"
	returnRows     = "representation"
	restPathSuffix = "/rest/v1"
)

// Client talks to the PostgREST endpoint of a Supabase project using the
// service role key, which bypasses row level security.
type Client struct {
	rest *postgrest.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	rest := postgrest.NewClient(strings.TrimSuffix(baseURL, "/")+restPathSuffix, "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	return &Client{rest: rest}
}

func (c *Client) Insert(ctx context.Context, record *entity.ClientRecord) (string, error) {
	if err := c.ready(ctx); err != nil {
		return "", err
	}

	body, _, err := c.rest.From(clientsTable).
		Insert(record, false, "", returnRows, "").
		Execute()
	if err != nil {
		return "", fmt.Errorf("supabase insert %s failed: %w", clientsTable, err)
	}

	var rows []map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return "", fmt.Errorf("failed to decode insert response: %w", err)
	}
	if len(rows) == 0 || rows[0]["id"] == nil {
		return "", nil
	}
	return fmt.Sprint(rows[0]["id"]), nil
}

func (c *Client) ActivateByEmail(ctx context.Context, email string) (int64, error) {
	if err := c.ready(ctx); err != nil {
		return 0, err
	}

	body, _, err := c.rest.From(clientsTable).
		Update(map[string]string{"subscription_status": string(entity.StatusActive)}, returnRows, "").
		Eq("contact_email", email).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("supabase update %s failed: %w", clientsTable, err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode update response: %w", err)
	}
	return int64(len(rows)), nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.ready(ctx); err != nil {
		return err
	}

	_, _, err := c.rest.From(clientsTable).
		Select("id", "", false).
		Limit(1, "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase ping failed: %w", err)
	}
	return nil
}

// ready reports a bad base URL or an already cancelled request; postgrest-go
// queries take no context of their own.
func (c *Client) ready(ctx context.Context) error {
	if c.rest.ClientError != nil {
		return fmt.Errorf("supabase client misconfigured: %w", c.rest.ClientError)
	}
	return ctx.Err()
}
