package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolRecepcionista = "recepcionista"
	RolOdontologo    = "odontologo"
	RolAdministrador = "administrador"
)

// Usuario stores clinic staff with role-based access.
// Rol: "recepcionista" | "odontologo" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	// Matricula is the professional license number, set for odontologos only.
	Matricula *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
