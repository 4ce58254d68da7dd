package workers

import (
	"context"

	"rates-service/internal/models"
)

// Handler runs one kind of refresh command.
type Handler interface {
	Type() string
	Handle(ctx context.Context, args models.RefreshArgs) error
}
