package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type MovimientoRequest struct {
	SesionCajaID string          `json:"sesion_caja_id" validate:"required,uuid"`
	Tipo         string          `json:"tipo"           validate:"required,oneof=ingreso egreso"`
	Monto        decimal.Decimal `json:"monto"          validate:"required,gt=0"`
	Descripcion  string          `json:"descripcion"`
}

type CerrarCajaRequest struct {
	SesionCajaID string `json:"sesion_caja_id" validate:"required,uuid"`
	// MontoDeclarado overrides the computed closing amount when the counted
	// cash differs. Nil means "close at the expected amount".
	MontoDeclarado *decimal.Decimal `json:"monto_declarado" validate:"omitempty"`
	Observaciones  *string          `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	CreatedAt   string          `json:"created_at"`
}

// BalanceCaja breaks the expected closing amount into its four terms.
type BalanceCaja struct {
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
	TotalEgresos  decimal.Decimal `json:"total_egresos"`
	TotalCobros   decimal.Decimal `json:"total_cobros"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
}

type SesionCajaResponse struct {
	SesionCajaID  string           `json:"sesion_caja_id"`
	Usuario       string           `json:"usuario"`
	Estado        string           `json:"estado"`
	Balance       BalanceCaja      `json:"balance"`
	MontoCierre   *decimal.Decimal `json:"monto_cierre"`
	Desvio        *decimal.Decimal `json:"desvio"`
	Observaciones *string          `json:"observaciones"`
	AbiertaAt     string           `json:"abierta_at"`
	CerradaAt     *string          `json:"cerrada_at"`
}

type CierreCajaResponse struct {
	SesionCajaID  string          `json:"sesion_caja_id"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	MontoCierre   decimal.Decimal `json:"monto_cierre"`
	Desvio        decimal.Decimal `json:"desvio"`
	Estado        string          `json:"estado"`
}
