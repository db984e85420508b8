package dto

import "github.com/shopspring/decimal"

type RegistrarPagoRequest struct {
	CobroID      string `json:"cobro_id"       validate:"required,uuid"`
	SesionCajaID string `json:"sesion_caja_id" validate:"required,uuid"`
	MetodoPagoID string `json:"metodo_pago_id" validate:"required,uuid"`
	// Either amount may be zero; at least one must be positive.
	MontoPaciente   decimal.Decimal `json:"monto_paciente"    validate:"min=0"`
	MontoObraSocial decimal.Decimal `json:"monto_obra_social" validate:"min=0"`
}

type CobroResponse struct {
	ID                 string          `json:"id"`
	TratamientoID      string          `json:"tratamiento_id"`
	MontoTotal         decimal.Decimal `json:"monto_total"`
	CubiertoObraSocial decimal.Decimal `json:"cubierto_obra_social"`
	ACargoPaciente     decimal.Decimal `json:"a_cargo_paciente"`
	PagadoPaciente     decimal.Decimal `json:"pagado_paciente"`
	PagadoObraSocial   decimal.Decimal `json:"pagado_obra_social"`
	Estado             string          `json:"estado"`
	FechaPago          *string         `json:"fecha_pago"`
}

type CobroListResponse struct {
	Data  []CobroResponse `json:"data"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}
