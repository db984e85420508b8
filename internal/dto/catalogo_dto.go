package dto

import "github.com/shopspring/decimal"

type ObraSocialRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	CoberturaPct decimal.Decimal `json:"cobertura_pct" validate:"min=0,max=100"`
}

type ObraSocialResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	CoberturaPct decimal.Decimal `json:"cobertura_pct"`
	Activa       bool            `json:"activa"`
}

type MetodoPagoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
}

type MetodoPagoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type ArancelRequest struct {
	Codigo      string          `json:"codigo"      validate:"required,min=2"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
}

type ArancelResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Activo      bool            `json:"activo"`
}
