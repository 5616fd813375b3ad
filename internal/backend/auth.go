package backend

import (
	"context"

	"kavio/cli/internal/apierr"
	"kavio/cli/internal/model"
)

// Authentication endpoint paths.
const (
	pathLogin         = "/usuarios/logar"
	pathRegister      = "/usuarios/cadastrar"
	pathUpdateProfile = "/usuarios/atualizar"
)

// Login posts the credentials to /usuarios/logar.
// A usable response must contain a non-empty token.
func (h *HTTP) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	var user model.User
	if err := h.post(ctx, pathLogin, creds, &user); err != nil {
		return model.User{}, err
	}
	if user.Token == "" {
		return model.User{}, apierr.New(apierr.RequestFailed, "login response carried no token")
	}
	return user, nil
}

// Register creates an account via /usuarios/cadastrar. The backend strips
// the id from the request and assigns its own.
func (h *HTTP) Register(ctx context.Context, user model.User) (model.User, error) {
	user.ID = 0
	var created model.User
	if err := h.post(ctx, pathRegister, user, &created); err != nil {
		return model.User{}, err
	}
	return created, nil
}

// UpdateProfile updates the authenticated user via /usuarios/atualizar.
func (h *HTTP) UpdateProfile(ctx context.Context, user model.User) (model.User, error) {
	var updated model.User
	if err := h.put(ctx, pathUpdateProfile, user, &updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}
