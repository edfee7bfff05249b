package domain

import "errors"

var (
	ErrEmptyPayload     = errors.New("empty response payload")
	ErrNoToken          = errors.New("no stored token")
	ErrStoreUnavailable = errors.New("token storage unavailable")
)

// User-facing messages, kept in the backend's language.
const (
	MsgConnectionError = "Error de conexión con el servidor"
	MsgUnknownError    = "Error desconocido"
	MsgInvalidLogin    = "Credenciales inválidas"
	MsgTokenRequired   = "Token de autenticación requerido"
	MsgExportError     = "Error al exportar los datos"
	MsgExportConnError = "Error de conexión al exportar"
)
