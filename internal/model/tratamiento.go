package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Arancel is one entry of the treatment tariff catalog.
type Arancel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string          `gorm:"uniqueIndex;not null"`
	Descripcion string          `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tratamiento is a tariff item performed on a patient, optionally anchored to
// a specific tooth face. Billing data lives in the associated Cobro.
type Tratamiento struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OdontologoID  uuid.UUID `gorm:"type:uuid;not null"`
	ArancelID     uuid.UUID `gorm:"type:uuid;not null"`
	Diente        *int
	Cara          *string `gorm:"type:varchar(12)"`
	Observaciones *string
	CreatedAt     time.Time

	Paciente   *Paciente `gorm:"foreignKey:PacienteID"`
	Odontologo *Usuario  `gorm:"foreignKey:OdontologoID"`
	Arancel    *Arancel  `gorm:"foreignKey:ArancelID"`
	Cobro      *Cobro    `gorm:"foreignKey:TratamientoID"`
}
