package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cobro is the payment record of a billed treatment. It is owned by the
// treatment, not by the register: a SesionCaja only references cobros for
// aggregation, so closing a session never cascades into them.
//
// Estado: "pendiente" | "parcial" | "pagado"
// Invariants enforced by CobroService:
//   - PagadoPaciente   <= ACargoPaciente
//   - PagadoObraSocial <= CubiertoObraSocial
//   - Estado == "pagado" only when both paid amounts equal their dues
//     (or MontoTotal is zero).
type Cobro struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TratamientoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	// SesionCajaID attributes the cobro to the register shift in which its
	// last payment was taken. Nil until a payment is registered.
	SesionCajaID       *uuid.UUID      `gorm:"type:uuid;index"`
	MontoTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CubiertoObraSocial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ACargoPaciente     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PagadoPaciente     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PagadoObraSocial   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MetodoPagoID       *uuid.UUID      `gorm:"type:uuid"`
	Estado             string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	FechaPago          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Tratamiento *Tratamiento `gorm:"foreignKey:TratamientoID"`
	MetodoPago  *MetodoPago  `gorm:"foreignKey:MetodoPagoID"`
}

const (
	CobroPendiente = "pendiente"
	CobroParcial   = "parcial"
	CobroPagado    = "pagado"
)
