package dto

type CrearPacienteRequest struct {
	Documento       string  `json:"documento"        validate:"required,min=6"`
	Nombre          string  `json:"nombre"           validate:"required"`
	Apellido        string  `json:"apellido"         validate:"required"`
	FechaNacimiento *string `json:"fecha_nacimiento"` // 2006-01-02
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
	ObraSocialID    *string `json:"obra_social_id"   validate:"omitempty,uuid"`
	NumeroAfiliado  *string `json:"numero_afiliado"`
}

type ActualizarPacienteRequest struct {
	Nombre         string  `json:"nombre"`
	Apellido       string  `json:"apellido"`
	Telefono       *string `json:"telefono"`
	Email          *string `json:"email"          validate:"omitempty,email"`
	Direccion      *string `json:"direccion"`
	ObraSocialID   *string `json:"obra_social_id" validate:"omitempty,uuid"`
	NumeroAfiliado *string `json:"numero_afiliado"`
}

type PacienteResponse struct {
	ID              string  `json:"id"`
	Documento       string  `json:"documento"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
	Direccion       *string `json:"direccion"`
	ObraSocial      *string `json:"obra_social"`
	NumeroAfiliado  *string `json:"numero_afiliado"`
	Activo          bool    `json:"activo"`
}

type PacienteListResponse struct {
	Data  []PacienteResponse `json:"data"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
}

type CrearHistoriaRequest struct {
	Tipo    string `json:"tipo"    validate:"required,oneof=antecedente alergia medicacion observacion"`
	Detalle string `json:"detalle" validate:"required,min=3"`
}

type HistoriaResponse struct {
	ID        string `json:"id"`
	Tipo      string `json:"tipo"`
	Detalle   string `json:"detalle"`
	CreatedAt string `json:"created_at"`
}
