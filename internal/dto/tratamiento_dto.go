package dto

import "github.com/shopspring/decimal"

type RegistrarTratamientoRequest struct {
	PacienteID    string  `json:"paciente_id"   validate:"required,uuid"`
	ArancelCodigo string  `json:"arancel_codigo" validate:"required"`
	Diente        *int    `json:"diente"`
	Cara          *string `json:"cara"`
	// EstadoDiente updates the odontogram face when diente and cara are set.
	EstadoDiente  *string `json:"estado_diente"`
	Observaciones *string `json:"observaciones"`
}

type TratamientoResponse struct {
	ID            string          `json:"id"`
	PacienteID    string          `json:"paciente_id"`
	OdontologoID  string          `json:"odontologo_id"`
	ArancelCodigo string          `json:"arancel_codigo"`
	Descripcion   string          `json:"descripcion"`
	Diente        *int            `json:"diente"`
	Cara          *string         `json:"cara"`
	Precio        decimal.Decimal `json:"precio"`
	Cobro         *CobroResponse  `json:"cobro"`
	CreatedAt     string          `json:"created_at"`
}

// ConsultaArancelResponse is the cached tariff lookup: base price plus the
// insurer split for an optional obra social.
type ConsultaArancelResponse struct {
	Codigo             string           `json:"codigo"`
	Descripcion        string           `json:"descripcion"`
	Precio             decimal.Decimal  `json:"precio"`
	ObraSocial         *string          `json:"obra_social"`
	CoberturaPct       *decimal.Decimal `json:"cobertura_pct"`
	CubiertoObraSocial *decimal.Decimal `json:"cubierto_obra_social"`
	ACargoPaciente     *decimal.Decimal `json:"a_cargo_paciente"`
}
