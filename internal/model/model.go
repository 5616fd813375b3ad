// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the CRM entities exchanged with the Kavio backend.
// Field tags follow the backend's wire names, which are Portuguese.
package model

// User is a Kavio account as returned by the authentication endpoints.
// Password is only ever populated on outgoing requests (login, register);
// it is never retained in session state.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Handle   string `json:"usuario"`
	Password string `json:"senha,omitempty"`
	Photo    string `json:"foto,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Client is a CRM client record.
type Client struct {
	ID            int64         `json:"id,omitempty"`
	Name          string        `json:"nome"`
	Email         string        `json:"email"`
	Phone         string        `json:"telefone,omitempty"`
	Opportunities []Opportunity `json:"oportunidade,omitempty"`
}

// Opportunity statuses used by the backend.
const (
	StatusOpen = "Aberta"
	StatusWon  = "Fechada"
	StatusLost = "Perdida"
)

// Opportunity is a sales-pipeline record. Dates are passed through as the
// backend sends them (ISO date strings).
type Opportunity struct {
	ID       int64   `json:"id,omitempty"`
	Title    string  `json:"titulo"`
	Status   string  `json:"status"`
	Value    float64 `json:"valor"`
	OpenedAt string  `json:"data_abertura,omitempty"`
	ClosedAt string  `json:"data_fechamento,omitempty"`
	Client   *Client `json:"cliente,omitempty"`
	User     *User   `json:"usuario,omitempty"`
}

// Credentials carries a login attempt. The password lives only for the
// duration of the request that needs it.
type Credentials struct {
	Handle   string `json:"usuario"`
	Password string `json:"senha"`
}
