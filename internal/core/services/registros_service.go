package services

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

type registrosService struct {
	client ports.APIClient
}

func NewRegistrosService(client ports.APIClient) ports.RegistrosAPI {
	return &registrosService{client: client}
}

func (s *registrosService) List(ctx context.Context, params domain.ListParams) domain.Envelope {
	return s.client.Get(ctx, endpointRegistros+"/?"+listQuery(params).Encode())
}

func (s *registrosService) Get(ctx context.Context, id string) domain.Envelope {
	return s.client.Get(ctx, endpointRegistroDetail(id))
}

func (s *registrosService) Create(ctx context.Context, form domain.RegistroForm) domain.Envelope {
	return s.client.Post(ctx, endpointRegistros+"/", TransformForm(form))
}

func (s *registrosService) Update(ctx context.Context, id string, form domain.RegistroForm) domain.Envelope {
	return s.client.Put(ctx, endpointRegistroDetail(id), TransformForm(form))
}

func (s *registrosService) Delete(ctx context.Context, id string) domain.Envelope {
	return s.client.Delete(ctx, endpointRegistroDetail(id))
}

func (s *registrosService) BulkDelete(ctx context.Context, ids []string) domain.Envelope {
	return s.client.Post(ctx, endpointBulkDelete, map[string][]string{"ids": ids})
}

func (s *registrosService) Stats(ctx context.Context) domain.Envelope {
	return s.client.Get(ctx, endpointRegistroStats)
}

func (s *registrosService) Asesores(ctx context.Context) domain.Envelope {
	return s.client.Get(ctx, endpointAsesores)
}

func (s *registrosService) Cuentas(ctx context.Context) domain.Envelope {
	return s.client.Get(ctx, endpointCuentas)
}

func (s *registrosService) Export(ctx context.Context, format string, params domain.ListParams) ([]byte, error) {
	if format == "" {
		format = "csv"
	}
	query := listQuery(params)
	query.Set("format", format)
	return s.client.Download(ctx, endpointRegistroExport+"?"+query.Encode())
}

// listQuery maps ListParams to the backend's snake_case query parameters,
// dropping zero values.
func listQuery(params domain.ListParams) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.FechaInicio != "" {
		query.Set("fecha_inicio", params.FechaInicio)
	}
	if params.FechaFin != "" {
		query.Set("fecha_fin", params.FechaFin)
	}
	if params.Asesor != "" {
		query.Set("asesor", params.Asesor)
	}
	if params.Cuenta != "" {
		query.Set("cuenta", params.Cuenta)
	}
	if params.Ordering != "" {
		query.Set("ordering", params.Ordering)
	}
	return query
}

// TransformRegistro maps the backend wire shape to the view model. The
// numeric id becomes an opaque string; the owning user id is dropped.
func TransformRegistro(rec domain.RegistroRecord) domain.Registro {
	return domain.Registro{
		ID:                strconv.Itoa(rec.ID),
		IDCuenta:          rec.IDCuenta,
		IDAcuerdoServicio: rec.IDAcuerdoServicio,
		IDCargoFacturable: rec.IDCargoFacturable,
		FechaAjuste:       rec.FechaAjuste,
		AsesorQueAjusto:   rec.AsesorQueAjusto,
		ValorAjustado:     rec.ValorAjustado,
		ObsAdicional:      rec.ObsAdicional,
		Justificacion:     rec.Justificacion,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

// TransformForm copies exactly the fields the backend accepts on writes.
// Together with TransformRegistro it is an inverse on the shared field set;
// server-side timestamps and ids are lossy by design.
func TransformForm(form domain.RegistroForm) domain.RegistroForm {
	return domain.RegistroForm{
		IDCuenta:          form.IDCuenta,
		IDAcuerdoServicio: form.IDAcuerdoServicio,
		IDCargoFacturable: form.IDCargoFacturable,
		FechaAjuste:       form.FechaAjuste,
		AsesorQueAjusto:   form.AsesorQueAjusto,
		ValorAjustado:     form.ValorAjustado,
		ObsAdicional:      form.ObsAdicional,
		Justificacion:     form.Justificacion,
	}
}

// requiredFields, in the order they are reported.
var requiredFields = []struct {
	name  string
	value func(domain.RegistroForm) bool // reports presence
}{
	{"id_cuenta", func(f domain.RegistroForm) bool { return f.IDCuenta != "" }},
	{"id_acuerdo_servicio", func(f domain.RegistroForm) bool { return f.IDAcuerdoServicio != "" }},
	{"id_cargo_facturable", func(f domain.RegistroForm) bool { return f.IDCargoFacturable != "" }},
	{"fecha_ajuste", func(f domain.RegistroForm) bool { return f.FechaAjuste != "" }},
	{"asesor_que_ajusto", func(f domain.RegistroForm) bool { return f.AsesorQueAjusto != "" }},
	{"valor_ajustado", func(f domain.RegistroForm) bool {
		return f.ValorAjustado != 0 && !math.IsNaN(f.ValorAjustado) && !math.IsInf(f.ValorAjustado, 0)
	}},
	{"justificacion", func(f domain.RegistroForm) bool { return f.Justificacion != "" }},
}

// ValidateForm rejects incomplete forms before they reach the backend. It
// returns the Spanish field-level message of the first missing field. A
// zero valor_ajustado counts as missing, matching the backend's contract.
func ValidateForm(form domain.RegistroForm) (string, bool) {
	for _, field := range requiredFields {
		if !field.value(form) {
			return "El campo " + field.name + " es requerido", false
		}
	}
	return "", true
}
