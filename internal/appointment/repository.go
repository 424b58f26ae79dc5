package appointment

import (
	"context"
)

// Repository contains all backend interactions needed by the controller.
type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	Create(ctx context.Context, input CreateInput) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Appointment, error)
	SearchByName(ctx context.Context, name string) ([]Appointment, error)
	Remove(ctx context.Context, id int64) error
}

// TokenSource supplies the bearer token attached to authenticated requests.
// The session store implements it; passing it explicitly keeps the auth
// lifecycle out of request construction.
type TokenSource interface {
	Token() (string, bool)
}
