package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to a WhatsApp gateway that accepts bearer-authenticated
// JSON posts of the form {"phone": ..., "message": ...}.
type Client struct {
	APIURL   string
	APIToken string
	http     *http.Client
}

func New(apiURL, apiToken string) *Client {
	return &Client{
		APIURL:   apiURL,
		APIToken: apiToken,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one message to a phone number.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode WhatsApp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create WhatsApp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message to %s: %w", phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WhatsApp API returned %d for %s", resp.StatusCode, phone)
	}
	return nil
}
