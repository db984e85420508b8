package model

import (
	"time"

	"github.com/google/uuid"
)

// Turno is a scheduled appointment.
// Estado: "programado" | "confirmado" | "atendido" | "cancelado" | "ausente"
// atendido, cancelado and ausente are terminal.
type Turno struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID   uuid.UUID `gorm:"type:uuid;index;not null"`
	OdontologoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Fecha        time.Time `gorm:"index;not null"`
	DuracionMin  int       `gorm:"not null;default:30"`
	Motivo       *string
	Estado       string `gorm:"type:varchar(20);not null;default:'programado'"`
	// RecordatorioEnviado flags that the reminder email job was enqueued,
	// so the cron never enqueues it twice.
	RecordatorioEnviado bool `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Paciente   *Paciente `gorm:"foreignKey:PacienteID"`
	Odontologo *Usuario  `gorm:"foreignKey:OdontologoID"`
}

const (
	TurnoProgramado = "programado"
	TurnoConfirmado = "confirmado"
	TurnoAtendido   = "atendido"
	TurnoCancelado  = "cancelado"
	TurnoAusente    = "ausente"
)

// TurnoTransiciones maps each estado to the estados it may move to.
var TurnoTransiciones = map[string]map[string]bool{
	TurnoProgramado: {TurnoConfirmado: true, TurnoAtendido: true, TurnoCancelado: true, TurnoAusente: true},
	TurnoConfirmado: {TurnoAtendido: true, TurnoCancelado: true, TurnoAusente: true},
	TurnoAtendido:   {},
	TurnoCancelado:  {},
	TurnoAusente:    {},
}
