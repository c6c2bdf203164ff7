package port

import (
	"context"

	"roast_agent/internal/domain/entity"
)

// RoastService runs the validate, fetch, format, generate pipeline.
type RoastService interface {
	// Roast returns the generated roast, or a *entity.RoastError classifying the failure.
	Roast(ctx context.Context, req entity.RoastRequest) (*entity.RoastResult, error)
}
