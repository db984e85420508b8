package model

import (
	"time"

	"github.com/google/uuid"
)

// Paciente is a clinic patient. Documento is the national ID and must be
// unique. ObraSocialID is nil for patients paying out of pocket.
type Paciente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Documento       string    `gorm:"uniqueIndex;not null"`
	Nombre          string    `gorm:"not null"`
	Apellido        string    `gorm:"index;not null"`
	FechaNacimiento *time.Time
	Telefono        *string
	Email           *string
	Direccion       *string
	ObraSocialID    *uuid.UUID `gorm:"type:uuid;index"`
	NumeroAfiliado  *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	ObraSocial *ObraSocial `gorm:"foreignKey:ObraSocialID"`
}

// HistoriaClinica is one append-only entry in a patient's medical record.
// Tipo: "antecedente" | "alergia" | "medicacion" | "observacion"
type HistoriaClinica struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Detalle       string    `gorm:"not null"`
	RegistradoPor uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

// HistoriaTipos are the accepted values for HistoriaClinica.Tipo.
var HistoriaTipos = map[string]bool{
	"antecedente": true,
	"alergia":     true,
	"medicacion":  true,
	"observacion": true,
}
