package dto

type ActualizarCaraRequest struct {
	Diente int    `json:"diente" validate:"required"`
	Cara   string `json:"cara"   validate:"required,oneof=vestibular palatina mesial distal oclusal"`
	Estado string `json:"estado" validate:"required,oneof=sano caries restaurado ausente corona extraccion_indicada"`
}

type CaraResponse struct {
	Diente        int     `json:"diente"`
	Cara          string  `json:"cara"`
	Estado        string  `json:"estado"`
	TratamientoID *string `json:"tratamiento_id"`
}

// OdontogramaResponse is the whole chart, grouped per tooth for rendering.
type OdontogramaResponse struct {
	PacienteID string                 `json:"paciente_id"`
	Dientes    map[int][]CaraResponse `json:"dientes"`
}
