package dto

type CrearTurnoRequest struct {
	PacienteID   string  `json:"paciente_id"   validate:"required,uuid"`
	OdontologoID string  `json:"odontologo_id" validate:"required,uuid"`
	Fecha        string  `json:"fecha"         validate:"required"` // RFC 3339
	DuracionMin  int     `json:"duracion_min"  validate:"min=0,max=240"`
	Motivo       *string `json:"motivo"`
}

type CambiarEstadoTurnoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=programado confirmado atendido cancelado ausente"`
}

type TurnoResponse struct {
	ID           string  `json:"id"`
	PacienteID   string  `json:"paciente_id"`
	Paciente     string  `json:"paciente"`
	OdontologoID string  `json:"odontologo_id"`
	Fecha        string  `json:"fecha"`
	DuracionMin  int     `json:"duracion_min"`
	Motivo       *string `json:"motivo"`
	Estado       string  `json:"estado"`
}
