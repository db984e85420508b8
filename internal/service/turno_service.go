package service

import (
	"context"
	"fmt"
	"time"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"

	"github.com/google/uuid"
)

type TurnoService interface {
	Crear(ctx context.Context, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.TurnoResponse, error)
	Agenda(ctx context.Context, odontologoID uuid.UUID, dia time.Time) ([]dto.TurnoResponse, error)
}

type turnoService struct {
	repo      repository.TurnoRepository
	pacientes repository.PacienteRepository
	usuarios  repository.UsuarioRepository
}

func NewTurnoService(repo repository.TurnoRepository, pacientes repository.PacienteRepository, usuarios repository.UsuarioRepository) TurnoService {
	return &turnoService{repo: repo, pacientes: pacientes, usuarios: usuarios}
}

func (s *turnoService) Crear(ctx context.Context, req dto.CrearTurnoRequest) (*dto.TurnoResponse, error) {
	pacienteID, err := uuid.Parse(req.PacienteID)
	if err != nil {
		return nil, validationf("paciente_id inválido: %v", err)
	}
	odontologoID, err := uuid.Parse(req.OdontologoID)
	if err != nil {
		return nil, validationf("odontologo_id inválido: %v", err)
	}
	fecha, err := time.Parse(time.RFC3339, req.Fecha)
	if err != nil {
		return nil, validationf("fecha inválida, se espera RFC 3339: %v", err)
	}
	if fecha.Before(time.Now()) {
		return nil, validationf("la fecha del turno debe ser futura")
	}

	if _, err := s.pacientes.FindByID(ctx, pacienteID); err != nil {
		return nil, validationf("paciente no encontrado")
	}
	odontologo, err := s.usuarios.FindByID(ctx, odontologoID)
	if err != nil || odontologo.Rol != model.RolOdontologo {
		return nil, validationf("el profesional indicado no es un odontólogo activo")
	}

	duracion := req.DuracionMin
	if duracion == 0 {
		duracion = 30
	}
	turno := &model.Turno{
		PacienteID:   pacienteID,
		OdontologoID: odontologoID,
		Fecha:        fecha,
		DuracionMin:  duracion,
		Motivo:       req.Motivo,
		Estado:       model.TurnoProgramado,
	}
	if err := s.repo.Create(ctx, turno); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, turno), nil
}

func (s *turnoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.TurnoResponse, error) {
	turno, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("turno no encontrado: %w", err)
	}
	permitidos, ok := model.TurnoTransiciones[turno.Estado]
	if !ok || !permitidos[estado] {
		return nil, invalidStatef("transición de estado inválida: %s → %s", turno.Estado, estado)
	}
	turno.Estado = estado
	if err := s.repo.Update(ctx, turno); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, turno), nil
}

func (s *turnoService) Agenda(ctx context.Context, odontologoID uuid.UUID, dia time.Time) ([]dto.TurnoResponse, error) {
	turnos, err := s.repo.Agenda(ctx, odontologoID, dia)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TurnoResponse, len(turnos))
	for i := range turnos {
		resp[i] = *s.toResponse(ctx, &turnos[i])
	}
	return resp, nil
}

func (s *turnoService) toResponse(_ context.Context, t *model.Turno) *dto.TurnoResponse {
	resp := &dto.TurnoResponse{
		ID:           t.ID.String(),
		PacienteID:   t.PacienteID.String(),
		OdontologoID: t.OdontologoID.String(),
		Fecha:        t.Fecha.Format(time.RFC3339),
		DuracionMin:  t.DuracionMin,
		Motivo:       t.Motivo,
		Estado:       t.Estado,
	}
	if t.Paciente != nil {
		resp.Paciente = t.Paciente.Apellido + ", " + t.Paciente.Nombre
	}
	return resp
}
