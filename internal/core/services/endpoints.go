package services

import "fmt"

// Backend endpoint table. The backend expects no trailing slash on auth
// routes and a trailing slash on registro routes.
const (
	endpointLogin   = "/auth/login"
	endpointLogout  = "/auth/logout"
	endpointProfile = "/auth/profile"

	endpointRegistros      = "/api/registros"
	endpointRegistroStats  = "/api/registros/stats"
	endpointAsesores       = "/api/registros/asesores"
	endpointCuentas        = "/api/registros/cuentas"
	endpointBulkDelete     = "/api/registros/bulk-delete/"
	endpointRegistroExport = "/api/registros/export/"
)

func endpointRegistroDetail(id string) string {
	return fmt.Sprintf("%s/%s/", endpointRegistros, id)
}
