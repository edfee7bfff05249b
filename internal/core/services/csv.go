package services

import (
	"strconv"
	"strings"
	"time"

	"registros-gateway/internal/core/domain"
)

// exportHeaders is the fixed 8-column header of the CSV export.
var exportHeaders = []string{
	"ID Cuenta",
	"ID Acuerdo Servicio",
	"ID Cargo Facturable",
	"Fecha Ajuste",
	"Asesor",
	"Valor Ajustado",
	"Justificación",
	"Fecha Creación",
}

// RegistrosCSV renders the records as a comma-joined document. The two
// free-text columns (asesor, justificación) are always quoted, with their
// content preserved verbatim.
func RegistrosCSV(registros []domain.Registro) string {
	lines := make([]string, 0, len(registros)+1)
	lines = append(lines, strings.Join(exportHeaders, ","))

	for _, r := range registros {
		lines = append(lines, strings.Join([]string{
			r.IDCuenta,
			r.IDAcuerdoServicio,
			r.IDCargoFacturable,
			r.FechaAjuste,
			`"` + r.AsesorQueAjusto + `"`,
			strconv.FormatFloat(r.ValorAjustado, 'f', -1, 64),
			`"` + r.Justificacion + `"`,
			r.CreatedAt,
		}, ","))
	}

	return strings.Join(lines, "\n")
}

// ExportFilename names the download after the export date.
func ExportFilename(t time.Time) string {
	return "registros_ajustes_" + t.Format("2006-01-02") + ".csv"
}
