package backend

import (
	"context"
	"fmt"

	"kavio/cli/internal/model"
)

const pathOpportunities = "/oportunidades"

// ListOpportunities fetches all opportunity records.
func (h *HTTP) ListOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	var out []model.Opportunity
	if err := h.get(ctx, pathOpportunities, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOpportunity fetches a single opportunity by id.
func (h *HTTP) GetOpportunity(ctx context.Context, id int64) (model.Opportunity, error) {
	var out model.Opportunity
	if err := h.get(ctx, fmt.Sprintf("%s/%d", pathOpportunities, id), &out); err != nil {
		return model.Opportunity{}, err
	}
	return out, nil
}

// CreateOpportunity creates an opportunity record.
func (h *HTTP) CreateOpportunity(ctx context.Context, o model.Opportunity) (model.Opportunity, error) {
	o.ID = 0
	var out model.Opportunity
	if err := h.post(ctx, pathOpportunities, o, &out); err != nil {
		return model.Opportunity{}, err
	}
	return out, nil
}

// UpdateOpportunity updates an opportunity. Unlike clients, the backend takes
// the id in the body, not the path.
func (h *HTTP) UpdateOpportunity(ctx context.Context, o model.Opportunity) (model.Opportunity, error) {
	var out model.Opportunity
	if err := h.put(ctx, pathOpportunities, o, &out); err != nil {
		return model.Opportunity{}, err
	}
	return out, nil
}

// DeleteOpportunity removes an opportunity record.
func (h *HTTP) DeleteOpportunity(ctx context.Context, id int64) error {
	return h.delete(ctx, fmt.Sprintf("%s/%d", pathOpportunities, id))
}
