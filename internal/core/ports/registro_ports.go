package ports

import (
	"context"

	"registros-gateway/internal/core/domain"
)

// RegistrosAPI exposes the backend's adjustment-record endpoints. All
// non-export operations return the envelope verbatim; no retries, no
// caching.
type RegistrosAPI interface {
	List(ctx context.Context, params domain.ListParams) domain.Envelope
	Get(ctx context.Context, id string) domain.Envelope
	Create(ctx context.Context, form domain.RegistroForm) domain.Envelope
	Update(ctx context.Context, id string, form domain.RegistroForm) domain.Envelope
	Delete(ctx context.Context, id string) domain.Envelope
	BulkDelete(ctx context.Context, ids []string) domain.Envelope
	Stats(ctx context.Context) domain.Envelope
	Asesores(ctx context.Context) domain.Envelope
	Cuentas(ctx context.Context) domain.Envelope
	Export(ctx context.Context, format string, params domain.ListParams) ([]byte, error)
}
