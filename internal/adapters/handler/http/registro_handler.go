package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
	"registros-gateway/internal/core/services"
)

type RegistroHandler struct {
	registros ports.RegistrosAPI
}

func NewRegistroHandler(registros ports.RegistrosAPI) *RegistroHandler {
	return &RegistroHandler{registros: registros}
}

// List proxies the paginated listing. The route's camelCase query
// parameters are mapped onto the backend's snake_case ones.
func (h *RegistroHandler) List(w http.ResponseWriter, r *http.Request) {
	env := h.registros.List(r.Context(), listParamsFromQuery(r))
	if !env.Success {
		writeError(w, http.StatusInternalServerError, orDefault(env.Error, "Error al obtener los registros"))
		return
	}
	writeRaw(w, http.StatusOK, env.Data)
}

func (h *RegistroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.RegistroForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := services.ValidateForm(form); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	env := h.registros.Create(r.Context(), form)
	if !env.Success {
		writeError(w, http.StatusBadRequest, orDefault(env.Error, "Error al crear el registro"))
		return
	}

	var record domain.RegistroRecord
	if err := env.Decode(&record); err != nil {
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	writeJSON(w, http.StatusCreated, services.TransformRegistro(record))
}

func (h *RegistroHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID del registro requerido")
		return
	}

	var form domain.RegistroForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	env := h.registros.Update(r.Context(), id, form)
	if !env.Success {
		writeError(w, http.StatusBadRequest, orDefault(env.Error, "Error al actualizar el registro"))
		return
	}

	var record domain.RegistroRecord
	if err := env.Decode(&record); err != nil {
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	writeJSON(w, http.StatusOK, services.TransformRegistro(record))
}

func (h *RegistroHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID del registro requerido")
		return
	}

	env := h.registros.Delete(r.Context(), id)
	if !env.Success {
		writeError(w, http.StatusBadRequest, orDefault(env.Error, "Error al eliminar el registro"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *RegistroHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "Se requiere al menos un ID")
		return
	}

	env := h.registros.BulkDelete(r.Context(), req.IDs)
	if !env.Success {
		writeError(w, http.StatusBadRequest, orDefault(env.Error, "Error al eliminar los registros"))
		return
	}
	writeRaw(w, http.StatusOK, env.Data)
}

func (h *RegistroHandler) Asesores(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.registros.Asesores(r.Context()))
}

func (h *RegistroHandler) Cuentas(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.registros.Cuentas(r.Context()))
}

func (h *RegistroHandler) passthrough(w http.ResponseWriter, env domain.Envelope) {
	if !env.Success {
		writeError(w, http.StatusInternalServerError, orDefault(env.Error, "Error al obtener los datos"))
		return
	}
	writeRaw(w, http.StatusOK, env.Data)
}

func listParamsFromQuery(r *http.Request) domain.ListParams {
	query := r.URL.Query()
	params := domain.ListParams{
		Search:      query.Get("search"),
		FechaInicio: query.Get("fechaInicio"),
		FechaFin:    query.Get("fechaFin"),
		Asesor:      query.Get("asesor"),
		Cuenta:      query.Get("cuenta"),
		Ordering:    query.Get("ordering"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(query.Get("pageSize")); err == nil {
		params.PageSize = size
	}
	return params
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
