package domain

// RegistroForm is the input shape for creating or updating an adjustment.
// ValorAjustado may be negative (a credit).
type RegistroForm struct {
	IDCuenta          string  `json:"id_cuenta"`
	IDAcuerdoServicio string  `json:"id_acuerdo_servicio"`
	IDCargoFacturable string  `json:"id_cargo_facturable"`
	FechaAjuste       string  `json:"fecha_ajuste"`
	AsesorQueAjusto   string  `json:"asesor_que_ajusto"`
	ValorAjustado     float64 `json:"valor_ajustado"`
	ObsAdicional      string  `json:"obs_adicional,omitempty"`
	Justificacion     string  `json:"justificacion"`
}

// RegistroRecord is the backend's wire shape for a stored adjustment.
type RegistroRecord struct {
	ID                int     `json:"id"`
	IDCuenta          string  `json:"id_cuenta"`
	IDAcuerdoServicio string  `json:"id_acuerdo_servicio"`
	IDCargoFacturable string  `json:"id_cargo_facturable"`
	FechaAjuste       string  `json:"fecha_ajuste"`
	AsesorQueAjusto   string  `json:"asesor_que_ajusto"`
	ValorAjustado     float64 `json:"valor_ajustado"`
	ObsAdicional      string  `json:"obs_adicional,omitempty"`
	Justificacion     string  `json:"justificacion"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	Usuario           int     `json:"usuario"`
}

// Registro is the view-model shape served to the UI. The owning user id and
// the numeric id are backend concerns; the id becomes an opaque string here.
type Registro struct {
	ID                string  `json:"id,omitempty"`
	IDCuenta          string  `json:"id_cuenta"`
	IDAcuerdoServicio string  `json:"id_acuerdo_servicio"`
	IDCargoFacturable string  `json:"id_cargo_facturable"`
	FechaAjuste       string  `json:"fecha_ajuste"`
	AsesorQueAjusto   string  `json:"asesor_que_ajusto"`
	ValorAjustado     float64 `json:"valor_ajustado"`
	ObsAdicional      string  `json:"obs_adicional,omitempty"`
	Justificacion     string  `json:"justificacion"`
	CreatedAt         string  `json:"created_at,omitempty"`
	UpdatedAt         string  `json:"updated_at,omitempty"`
}

// RegistroPage is the backend's paginated list payload.
type RegistroPage struct {
	Registros  []RegistroRecord `json:"registros"`
	Total      int              `json:"total"`
	Page       int              `json:"page,omitempty"`
	PageSize   int              `json:"pageSize,omitempty"`
	TotalPages int              `json:"totalPages,omitempty"`
}

// ListParams are the filter and pagination options of the list endpoint.
// Zero values are omitted from the query string.
type ListParams struct {
	Page        int
	PageSize    int
	Search      string
	FechaInicio string
	FechaFin    string
	Asesor      string
	Cuenta      string
	Ordering    string
}

// RegistroStats is the backend's aggregate payload for the dashboard.
type RegistroStats struct {
	TotalRegistros     int     `json:"total_registros"`
	TotalValorPositivo float64 `json:"total_valor_positivo"`
	TotalValorNegativo float64 `json:"total_valor_negativo"`
	ValorNeto          float64 `json:"valor_neto"`
	RegistrosMesActual int     `json:"registros_mes_actual"`
	PromedioValor      float64 `json:"promedio_valor"`
	AsesoresActivos    int     `json:"asesores_activos"`
	CuentasAfectadas   int     `json:"cuentas_afectadas"`
}

// DashboardStats is the reshaped KPI payload served by the stats route.
type DashboardStats struct {
	TotalRegistros      int     `json:"totalRegistros"`
	ValorNeto           float64 `json:"valorNeto"`
	RegistrosMesActual  int     `json:"registrosMesActual"`
	PromedioValor       float64 `json:"promedioValor"`
	ValorPositivo       float64 `json:"valorPositivo"`
	ValorNegativo       float64 `json:"valorNegativo"`
	AsesoresActivos     int     `json:"asesoresActivos"`
	CuentasAfectadas    int     `json:"cuentasAfectadas"`
	EficienciaPromedio  int     `json:"eficienciaPromedio"`
	CrecimientoMensual  int     `json:"crecimientoMensual"`
	SatisfaccionCliente int     `json:"satisfaccionCliente"`
}

type AsesorInfo struct {
	Nombre       string  `json:"nombre"`
	TotalAjustes int     `json:"total_ajustes"`
	ValorTotal   float64 `json:"valor_total"`
}

type CuentaInfo struct {
	IDCuenta     string  `json:"id_cuenta"`
	TotalAjustes int     `json:"total_ajustes"`
	ValorTotal   float64 `json:"valor_total"`
	UltimoAjuste string  `json:"ultimo_ajuste"`
}
