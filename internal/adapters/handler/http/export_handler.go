package http

import (
	"net/http"
	"time"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
	"registros-gateway/internal/core/services"
)

type ExportHandler struct {
	registros ports.RegistrosAPI
	now       func() time.Time
}

func NewExportHandler(registros ports.RegistrosAPI) *ExportHandler {
	return &ExportHandler{registros: registros, now: time.Now}
}

// Export builds the CSV document from the live listing, honoring the same
// filters as the list route.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	env := h.registros.List(r.Context(), listParamsFromQuery(r))
	if !env.Success {
		writeError(w, http.StatusInternalServerError, orDefault(env.Error, domain.MsgExportError))
		return
	}

	var page domain.RegistroPage
	if err := env.Decode(&page); err != nil {
		writeError(w, http.StatusInternalServerError, domain.MsgExportError)
		return
	}

	registros := make([]domain.Registro, 0, len(page.Registros))
	for _, record := range page.Registros {
		registros = append(registros, services.TransformRegistro(record))
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(services.RegistrosCSV(registros)))
}
