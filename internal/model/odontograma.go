package model

import (
	"time"

	"github.com/google/uuid"
)

// DienteCara records the clinical state of one face of one tooth in a
// patient's odontogram. Teeth use FDI two-digit notation: permanent 11-48,
// deciduous 51-85. One row per (paciente, diente, cara); updates overwrite
// the previous state and keep a reference to the treatment that set it.
type DienteCara struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_paciente_diente_cara"`
	Diente        int        `gorm:"not null;uniqueIndex:idx_paciente_diente_cara"`
	Cara          string     `gorm:"type:varchar(12);not null;uniqueIndex:idx_paciente_diente_cara"`
	Estado        string     `gorm:"type:varchar(25);not null"`
	TratamientoID *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt     time.Time
}

// Caras are the five faces of a tooth as drawn on the chart.
var Caras = map[string]bool{
	"vestibular": true,
	"palatina":   true, // lingual on lower teeth
	"mesial":     true,
	"distal":     true,
	"oclusal":    true,
}

// EstadosDiente are the accepted per-face clinical states.
var EstadosDiente = map[string]bool{
	"sano":                true,
	"caries":              true,
	"restaurado":          true,
	"ausente":             true,
	"corona":              true,
	"extraccion_indicada": true,
}

// ValidFDI reports whether n is a valid FDI tooth number:
// quadrants 1-4 positions 1-8 (permanent), quadrants 5-8 positions 1-5
// (deciduous).
func ValidFDI(n int) bool {
	q, p := n/10, n%10
	if p < 1 {
		return false
	}
	switch {
	case q >= 1 && q <= 4:
		return p <= 8
	case q >= 5 && q <= 8:
		return p <= 5
	default:
		return false
	}
}
