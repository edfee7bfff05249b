package http

import (
	"log"
	"math"
	"net/http"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

type DashboardHandler struct {
	registros ports.RegistrosAPI
}

func NewDashboardHandler(registros ports.RegistrosAPI) *DashboardHandler {
	return &DashboardHandler{registros: registros}
}

// Stats reshapes the backend aggregates into the dashboard's KPI payload.
// When the backend is unreachable the dashboard gets zero-value defaults
// instead of a broken state.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	env := h.registros.Stats(r.Context())
	if !env.Success {
		log.Printf("dashboard: stats fetch failed: %s", env.Error)
		writeJSON(w, http.StatusOK, domain.DashboardStats{})
		return
	}

	var stats domain.RegistroStats
	if err := env.Decode(&stats); err != nil {
		log.Printf("dashboard: stats payload malformed: %v", err)
		writeJSON(w, http.StatusOK, domain.DashboardStats{})
		return
	}

	writeJSON(w, http.StatusOK, reshapeStats(stats))
}

func reshapeStats(stats domain.RegistroStats) domain.DashboardStats {
	return domain.DashboardStats{
		TotalRegistros:     stats.TotalRegistros,
		ValorNeto:          stats.ValorNeto,
		RegistrosMesActual: stats.RegistrosMesActual,
		PromedioValor:      stats.PromedioValor,
		ValorPositivo:      stats.TotalValorPositivo,
		ValorNegativo:      math.Abs(stats.TotalValorNegativo),
		AsesoresActivos:    stats.AsesoresActivos,
		CuentasAfectadas:   stats.CuentasAfectadas,
		EficienciaPromedio: eficiencia(stats.TotalValorPositivo, stats.TotalValorNegativo),
	}
}

// eficiencia is the positive share of the total adjusted volume, as a
// rounded percentage. A zero denominator yields 0, not a division error.
func eficiencia(positivo, negativo float64) int {
	total := positivo + math.Abs(negativo)
	if total == 0 {
		return 0
	}
	return int(math.Round(positivo / total * 100))
}
