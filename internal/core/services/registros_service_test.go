package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registros-gateway/internal/core/domain"
)

// recordingClient captures the last call made through the API port.
type recordingClient struct {
	method   string
	endpoint string
	body     any

	env      domain.Envelope
	download []byte
}

func (c *recordingClient) record(method, endpoint string, body any) domain.Envelope {
	c.method, c.endpoint, c.body = method, endpoint, body
	return c.env
}

func (c *recordingClient) Get(_ context.Context, endpoint string) domain.Envelope {
	return c.record("GET", endpoint, nil)
}

func (c *recordingClient) Post(_ context.Context, endpoint string, body any) domain.Envelope {
	return c.record("POST", endpoint, body)
}

func (c *recordingClient) Put(_ context.Context, endpoint string, body any) domain.Envelope {
	return c.record("PUT", endpoint, body)
}

func (c *recordingClient) Patch(_ context.Context, endpoint string, body any) domain.Envelope {
	return c.record("PATCH", endpoint, body)
}

func (c *recordingClient) Delete(_ context.Context, endpoint string) domain.Envelope {
	return c.record("DELETE", endpoint, nil)
}

func (c *recordingClient) Download(_ context.Context, endpoint string) ([]byte, error) {
	c.method, c.endpoint = "GET", endpoint
	return c.download, nil
}

func sampleForm() domain.RegistroForm {
	return domain.RegistroForm{
		IDCuenta:          "CTA-001",
		IDAcuerdoServicio: "AS-22",
		IDCargoFacturable: "CF-9",
		FechaAjuste:       "2026-08-15",
		AsesorQueAjusto:   "María López",
		ValorAjustado:     -150.5,
		Justificacion:     "Cobro duplicado",
	}
}

func TestListBuildsSnakeCaseQuery(t *testing.T) {
	client := &recordingClient{env: domain.OK(json.RawMessage(`{}`))}
	svc := NewRegistrosService(client)

	svc.List(context.Background(), domain.ListParams{
		Page:        2,
		PageSize:    25,
		Search:      "duplicado",
		FechaInicio: "2026-01-01",
		Asesor:      "María",
	})

	assert.Equal(t, "GET", client.method)
	assert.Equal(t, "/api/registros/?asesor=Mar%C3%ADa&fecha_inicio=2026-01-01&page=2&page_size=25&search=duplicado", client.endpoint)
}

func TestListDropsZeroParams(t *testing.T) {
	client := &recordingClient{env: domain.OK(json.RawMessage(`{}`))}
	svc := NewRegistrosService(client)

	svc.List(context.Background(), domain.ListParams{})

	assert.Equal(t, "/api/registros/?", client.endpoint)
}

func TestCreateSendsWriteFields(t *testing.T) {
	client := &recordingClient{env: domain.OK(json.RawMessage(`{}`))}
	svc := NewRegistrosService(client)

	svc.Create(context.Background(), sampleForm())

	assert.Equal(t, "POST", client.method)
	assert.Equal(t, "/api/registros/", client.endpoint)
	form, ok := client.body.(domain.RegistroForm)
	require.True(t, ok)
	assert.Equal(t, sampleForm(), form)
}

func TestUpdateTargetsDetailEndpoint(t *testing.T) {
	client := &recordingClient{env: domain.OK(json.RawMessage(`{}`))}
	svc := NewRegistrosService(client)

	svc.Update(context.Background(), "17", sampleForm())

	assert.Equal(t, "PUT", client.method)
	assert.Equal(t, "/api/registros/17/", client.endpoint)
}

func TestBulkDeletePayload(t *testing.T) {
	client := &recordingClient{env: domain.OK(json.RawMessage(`{}`))}
	svc := NewRegistrosService(client)

	svc.BulkDelete(context.Background(), []string{"1", "2", "3"})

	assert.Equal(t, "POST", client.method)
	assert.Equal(t, "/api/registros/bulk-delete/", client.endpoint)
	assert.Equal(t, map[string][]string{"ids": {"1", "2", "3"}}, client.body)
}

func TestExportDefaultsToCSV(t *testing.T) {
	client := &recordingClient{download: []byte("doc")}
	svc := NewRegistrosService(client)

	data, err := svc.Export(context.Background(), "", domain.ListParams{FechaInicio: "2026-01-01"})

	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), data)
	assert.Equal(t, "/api/registros/export/?fecha_inicio=2026-01-01&format=csv", client.endpoint)
}

func TestExportExcelFormat(t *testing.T) {
	client := &recordingClient{download: []byte("doc")}
	svc := NewRegistrosService(client)

	_, err := svc.Export(context.Background(), "excel", domain.ListParams{})

	require.NoError(t, err)
	assert.Equal(t, "/api/registros/export/?format=excel", client.endpoint)
}

func TestTransformRegistro(t *testing.T) {
	record := domain.RegistroRecord{
		ID:                8,
		IDCuenta:          "CTA-001",
		IDAcuerdoServicio: "AS-22",
		IDCargoFacturable: "CF-9",
		FechaAjuste:       "2026-08-15",
		AsesorQueAjusto:   "María López",
		ValorAjustado:     -150.5,
		Justificacion:     "Cobro duplicado",
		CreatedAt:         "2026-08-15T10:00:00Z",
		UpdatedAt:         "2026-08-15T10:00:00Z",
		Usuario:           99,
	}

	registro := TransformRegistro(record)

	assert.Equal(t, "8", registro.ID)
	assert.Equal(t, record.IDCuenta, registro.IDCuenta)
	assert.Equal(t, record.ValorAjustado, registro.ValorAjustado)
	assert.Equal(t, record.CreatedAt, registro.CreatedAt)
}

func TestValidateForm(t *testing.T) {
	msg, ok := ValidateForm(sampleForm())
	assert.True(t, ok)
	assert.Empty(t, msg)

	missing := sampleForm()
	missing.IDCuenta = ""
	msg, ok = ValidateForm(missing)
	assert.False(t, ok)
	assert.Equal(t, "El campo id_cuenta es requerido", msg)

	zeroValue := sampleForm()
	zeroValue.ValorAjustado = 0
	msg, ok = ValidateForm(zeroValue)
	assert.False(t, ok)
	assert.Equal(t, "El campo valor_ajustado es requerido", msg)

	// Fields are reported in declaration order: the first missing one wins.
	empty := domain.RegistroForm{}
	msg, ok = ValidateForm(empty)
	assert.False(t, ok)
	assert.Equal(t, "El campo id_cuenta es requerido", msg)
}

func TestValidateFormOptionalObs(t *testing.T) {
	form := sampleForm()
	form.ObsAdicional = ""

	_, ok := ValidateForm(form)
	assert.True(t, ok)
}
