package pets

import "context"

// Repository guarda perfiles de mascotas.
//
// GetByID devuelve ErrNotFound; Create devuelve ErrAlreadyExists si el ID ya está.
// ListByOwner ordena por CreatedAt y luego ID.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
