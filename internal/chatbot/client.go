// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package chatbot talks to the auxiliary support-chatbot backend. The chatbot
// runs on its own host, configured once at startup from the environment with
// a hard-coded default, and does not require a session token.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"kavio/cli/internal/apierr"
)

// Client sends messages to the chatbot backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a chatbot client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one message and returns the reply.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", apierr.Wrap(apierr.Network, "encode message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", apierr.Wrap(apierr.Network, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apierr.Wrap(apierr.Network, "chatbot unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		// The chatbot reports failures as {"error": "..."} when it can.
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
			return "", apierr.StatusError(resp.StatusCode, payload.Error)
		}
		return "", apierr.StatusError(resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apierr.Wrap(apierr.Network, "decode reply", err)
	}
	return out.Reply, nil
}
