package backend

import (
	"context"
	"fmt"

	"kavio/cli/internal/model"
)

const pathClients = "/clientes"

// ListClients fetches all client records.
func (h *HTTP) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := h.get(ctx, pathClients, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClient fetches a single client by id.
func (h *HTTP) GetClient(ctx context.Context, id int64) (model.Client, error) {
	var out model.Client
	if err := h.get(ctx, fmt.Sprintf("%s/%d", pathClients, id), &out); err != nil {
		return model.Client{}, err
	}
	return out, nil
}

// CreateClient creates a client record.
func (h *HTTP) CreateClient(ctx context.Context, c model.Client) (model.Client, error) {
	c.ID = 0
	var out model.Client
	if err := h.post(ctx, pathClients, c, &out); err != nil {
		return model.Client{}, err
	}
	return out, nil
}

// UpdateClient updates a client record. The id travels in the path.
func (h *HTTP) UpdateClient(ctx context.Context, c model.Client) (model.Client, error) {
	var out model.Client
	if err := h.put(ctx, fmt.Sprintf("%s/%d", pathClients, c.ID), c, &out); err != nil {
		return model.Client{}, err
	}
	return out, nil
}

// DeleteClient removes a client record.
func (h *HTTP) DeleteClient(ctx context.Context, id int64) error {
	return h.delete(ctx, fmt.Sprintf("%s/%d", pathClients, id))
}
