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

type PacienteService interface {
	Crear(ctx context.Context, req dto.CrearPacienteRequest) (*dto.PacienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPacienteRequest) (*dto.PacienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, q string, page, limit int) (*dto.PacienteListResponse, error)
	AgregarHistoria(ctx context.Context, pacienteID, registradoPor uuid.UUID, req dto.CrearHistoriaRequest) (*dto.HistoriaResponse, error)
	ListarHistoria(ctx context.Context, pacienteID uuid.UUID) ([]dto.HistoriaResponse, error)
}

type pacienteService struct {
	repo     repository.PacienteRepository
	catalogo repository.CatalogoRepository
}

func NewPacienteService(repo repository.PacienteRepository, catalogo repository.CatalogoRepository) PacienteService {
	return &pacienteService{repo: repo, catalogo: catalogo}
}

func (s *pacienteService) Crear(ctx context.Context, req dto.CrearPacienteRequest) (*dto.PacienteResponse, error) {
	if existing, err := s.repo.FindByDocumento(ctx, req.Documento); err == nil && existing != nil {
		return nil, validationf("ya existe un paciente con documento %s", req.Documento)
	}

	p := &model.Paciente{
		Documento:      req.Documento,
		Nombre:         req.Nombre,
		Apellido:       req.Apellido,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Direccion:      req.Direccion,
		NumeroAfiliado: req.NumeroAfiliado,
		Activo:         true,
	}
	if req.FechaNacimiento != nil {
		fn, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, validationf("fecha_nacimiento inválida, se espera AAAA-MM-DD")
		}
		p.FechaNacimiento = &fn
	}
	if req.ObraSocialID != nil {
		osID, err := uuid.Parse(*req.ObraSocialID)
		if err != nil {
			return nil, validationf("obra_social_id inválido: %v", err)
		}
		os, err := s.catalogo.FindObraSocial(ctx, osID)
		if err != nil || !os.Activa {
			return nil, validationf("obra social inexistente o inactiva")
		}
		p.ObraSocialID = &osID
		p.ObraSocial = os
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPacienteRequest) (*dto.PacienteResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}
	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		p.Apellido = req.Apellido
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.NumeroAfiliado != nil {
		p.NumeroAfiliado = req.NumeroAfiliado
	}
	if req.ObraSocialID != nil {
		osID, err := uuid.Parse(*req.ObraSocialID)
		if err != nil {
			return nil, validationf("obra_social_id inválido: %v", err)
		}
		os, err := s.catalogo.FindObraSocial(ctx, osID)
		if err != nil || !os.Activa {
			return nil, validationf("obra social inexistente o inactiva")
		}
		p.ObraSocialID = &osID
		p.ObraSocial = os
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return pacienteToResponse(p), nil
}

func (s *pacienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *pacienteService) Listar(ctx context.Context, q string, page, limit int) (*dto.PacienteListResponse, error) {
	pacientes, total, err := s.repo.List(ctx, q, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.PacienteListResponse{Page: page, Limit: limit, Total: total}
	for i := range pacientes {
		resp.Data = append(resp.Data, *pacienteToResponse(&pacientes[i]))
	}
	return resp, nil
}

func (s *pacienteService) AgregarHistoria(ctx context.Context, pacienteID, registradoPor uuid.UUID, req dto.CrearHistoriaRequest) (*dto.HistoriaResponse, error) {
	if !model.HistoriaTipos[req.Tipo] {
		return nil, validationf("tipo de entrada de historia inválido: %q", req.Tipo)
	}
	if _, err := s.repo.FindByID(ctx, pacienteID); err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}
	h := &model.HistoriaClinica{
		PacienteID:    pacienteID,
		Tipo:          req.Tipo,
		Detalle:       req.Detalle,
		RegistradoPor: registradoPor,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateHistoria(ctx, h); err != nil {
		return nil, err
	}
	return historiaToResponse(h), nil
}

func (s *pacienteService) ListarHistoria(ctx context.Context, pacienteID uuid.UUID) ([]dto.HistoriaResponse, error) {
	historia, err := s.repo.ListHistoria(ctx, pacienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistoriaResponse, len(historia))
	for i := range historia {
		resp[i] = *historiaToResponse(&historia[i])
	}
	return resp, nil
}

func pacienteToResponse(p *model.Paciente) *dto.PacienteResponse {
	resp := &dto.PacienteResponse{
		ID:             p.ID.String(),
		Documento:      p.Documento,
		Nombre:         p.Nombre,
		Apellido:       p.Apellido,
		Telefono:       p.Telefono,
		Email:          p.Email,
		Direccion:      p.Direccion,
		NumeroAfiliado: p.NumeroAfiliado,
		Activo:         p.Activo,
	}
	if p.FechaNacimiento != nil {
		fn := p.FechaNacimiento.Format("2006-01-02")
		resp.FechaNacimiento = &fn
	}
	if p.ObraSocial != nil {
		resp.ObraSocial = &p.ObraSocial.Nombre
	}
	return resp
}

func historiaToResponse(h *model.HistoriaClinica) *dto.HistoriaResponse {
	return &dto.HistoriaResponse{
		ID:        h.ID.String(),
		Tipo:      h.Tipo,
		Detalle:   h.Detalle,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}
}
