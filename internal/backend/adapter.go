// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the data-access layer for the Kavio CRM REST API.
// It defines the API contract for authentication, client records and
// opportunity records. The package includes both interface definitions and
// the HTTP-based implementation; tests may substitute mocks.
//
// Every authenticated request carries the current session token as the raw
// value of the Authorization header (the backend does not use the Bearer
// scheme). Failures are reported as typed errors from internal/apierr; a 401
// response additionally fires the registered unauthorized handler exactly
// once per call, which is how forced logout is centralized.
package backend

import (
	"context"

	"kavio/cli/internal/model"
)

// TokenSource supplies the current session token. The session store
// implements this; the data-access layer only ever reads the token.
type TokenSource interface {
	Token() string
}

// API defines the backend operations the CLI depends on.
type API interface {
	// Login authenticates against POST /usuarios/logar and returns the
	// populated user, token included.
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	// Register creates an account via POST /usuarios/cadastrar.
	Register(ctx context.Context, user model.User) (model.User, error)
	// UpdateProfile updates the authenticated user via PUT /usuarios/atualizar.
	UpdateProfile(ctx context.Context, user model.User) (model.User, error)

	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id int64) (model.Client, error)
	CreateClient(ctx context.Context, c model.Client) (model.Client, error)
	UpdateClient(ctx context.Context, c model.Client) (model.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	ListOpportunities(ctx context.Context) ([]model.Opportunity, error)
	GetOpportunity(ctx context.Context, id int64) (model.Opportunity, error)
	CreateOpportunity(ctx context.Context, o model.Opportunity) (model.Opportunity, error)
	UpdateOpportunity(ctx context.Context, o model.Opportunity) (model.Opportunity, error)
	DeleteOpportunity(ctx context.Context, id int64) error

	// SetUnauthorizedHandler registers the hook invoked whenever the
	// backend answers 401. Passing nil removes the hook.
	SetUnauthorizedHandler(fn func())
}
