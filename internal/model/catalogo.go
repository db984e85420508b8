package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObraSocial is a health-insurance provider. CoberturaPct is the percentage
// of a tariff price it reimburses (0-100).
type ObraSocial struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string          `gorm:"uniqueIndex;not null"`
	CoberturaPct decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Activa       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MetodoPago is a configurable payment method (efectivo, tarjeta, etc.).
type MetodoPago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
