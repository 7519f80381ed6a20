package vaccines

import "context"

// Repository persiste registros de seguimiento.
//
// Contrato:
//   - FindActive devuelve ErrRecordNotFound si no hay registro ACTIVE de ese tipo para el pet.
//   - Update compara rec.Version contra lo guardado; si difiere devuelve ErrStaleRecord.
//     Si aplica, guarda con Version+1.
//   - Create con Version 0; si ya existe un ACTIVE del mismo tipo para el pet devuelve
//     ErrStaleRecord (otra escritura ganó la carrera).
type Repository interface {
	Create(ctx context.Context, rec TrackingRecord) error
	Update(ctx context.Context, rec TrackingRecord) error
	FindActive(ctx context.Context, petID string, typ TrackingType) (TrackingRecord, error)
	ListByPet(ctx context.Context, petID string) ([]TrackingRecord, error)
}
