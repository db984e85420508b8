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

type OdontogramaService interface {
	ActualizarCara(ctx context.Context, pacienteID uuid.UUID, req dto.ActualizarCaraRequest) (*dto.CaraResponse, error)
	Obtener(ctx context.Context, pacienteID uuid.UUID) (*dto.OdontogramaResponse, error)
}

type odontogramaService struct {
	repo      repository.OdontogramaRepository
	pacientes repository.PacienteRepository
}

func NewOdontogramaService(repo repository.OdontogramaRepository, pacientes repository.PacienteRepository) OdontogramaService {
	return &odontogramaService{repo: repo, pacientes: pacientes}
}

func (s *odontogramaService) ActualizarCara(ctx context.Context, pacienteID uuid.UUID, req dto.ActualizarCaraRequest) (*dto.CaraResponse, error) {
	if !model.ValidFDI(req.Diente) {
		return nil, validationf("número de diente FDI inválido: %d", req.Diente)
	}
	if !model.Caras[req.Cara] {
		return nil, validationf("cara de diente inválida: %q", req.Cara)
	}
	if !model.EstadosDiente[req.Estado] {
		return nil, validationf("estado de diente inválido: %q", req.Estado)
	}
	if _, err := s.pacientes.FindByID(ctx, pacienteID); err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}

	dc := &model.DienteCara{
		PacienteID: pacienteID,
		Diente:     req.Diente,
		Cara:       req.Cara,
		Estado:     req.Estado,
		UpdatedAt:  time.Now(),
	}
	if err := s.repo.UpsertCara(ctx, dc); err != nil {
		return nil, err
	}
	return caraToResponse(dc), nil
}

func (s *odontogramaService) Obtener(ctx context.Context, pacienteID uuid.UUID) (*dto.OdontogramaResponse, error) {
	if _, err := s.pacientes.FindByID(ctx, pacienteID); err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}
	caras, err := s.repo.ListByPaciente(ctx, pacienteID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OdontogramaResponse{
		PacienteID: pacienteID.String(),
		Dientes:    make(map[int][]dto.CaraResponse),
	}
	for i := range caras {
		c := caraToResponse(&caras[i])
		resp.Dientes[caras[i].Diente] = append(resp.Dientes[caras[i].Diente], *c)
	}
	return resp, nil
}

func caraToResponse(dc *model.DienteCara) *dto.CaraResponse {
	resp := &dto.CaraResponse{
		Diente: dc.Diente,
		Cara:   dc.Cara,
		Estado: dc.Estado,
	}
	if dc.TratamientoID != nil {
		t := dc.TratamientoID.String()
		resp.TratamientoID = &t
	}
	return resp
}
