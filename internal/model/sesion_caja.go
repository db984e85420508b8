package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja represents one cash-drawer shift of the clinic front desk.
// Estado: "abierta" | "cerrada"
// While abierta, SaldoEsperado/MontoCierre/Desvio/CerradaAt are all nil;
// once cerrada they are all set and the row is never mutated again.
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoEsperado is computed on close: apertura + ingresos - egresos + cobros
	SaldoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// MontoCierre equals SaldoEsperado unless the cashier declared a counted
	// amount that differs (manual override).
	MontoCierre   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Desvio        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado        string           `gorm:"type:varchar(20);not null;default:'abierta'"`
	Observaciones *string
	AbiertaAt     time.Time
	CerradaAt     *time.Time

	Usuario     *Usuario         `gorm:"foreignKey:UsuarioID"`
	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

// MovimientoCaja is an immutable entry in the session ledger.
// Tipo: "ingreso" | "egreso". Monto is always stored positive; the sign is
// carried by Tipo. Entries are NEVER updated or deleted, and can only be
// created while the owning session is abierta.
type MovimientoCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(10);not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion  string
	CreatedAt    time.Time
}

const (
	SesionAbierta = "abierta"
	SesionCerrada = "cerrada"

	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)
