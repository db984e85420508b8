package service

import (
	"context"
	"fmt"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogoService manages the back-office catalogs: obras sociales with their
// coverage percentage, payment methods, and the treatment tariff.
type CatalogoService interface {
	CrearObraSocial(ctx context.Context, req dto.ObraSocialRequest) (*dto.ObraSocialResponse, error)
	ActualizarObraSocial(ctx context.Context, id uuid.UUID, req dto.ObraSocialRequest) (*dto.ObraSocialResponse, error)
	DesactivarObraSocial(ctx context.Context, id uuid.UUID) error
	ListarObrasSociales(ctx context.Context, incluirInactivas bool) ([]dto.ObraSocialResponse, error)

	CrearMetodoPago(ctx context.Context, req dto.MetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	DesactivarMetodoPago(ctx context.Context, id uuid.UUID) error
	ListarMetodosPago(ctx context.Context, incluirInactivos bool) ([]dto.MetodoPagoResponse, error)

	CrearArancel(ctx context.Context, req dto.ArancelRequest) (*dto.ArancelResponse, error)
	ActualizarArancel(ctx context.Context, id uuid.UUID, req dto.ArancelRequest) (*dto.ArancelResponse, error)
	DesactivarArancel(ctx context.Context, id uuid.UUID) error
	ListarAranceles(ctx context.Context, incluirInactivos bool) ([]dto.ArancelResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

// ── Obras sociales ────────────────────────────────────────────────────────────

func (s *catalogoService) CrearObraSocial(ctx context.Context, req dto.ObraSocialRequest) (*dto.ObraSocialResponse, error) {
	if err := validarCobertura(req.CoberturaPct); err != nil {
		return nil, err
	}
	os := &model.ObraSocial{Nombre: req.Nombre, CoberturaPct: req.CoberturaPct, Activa: true}
	if err := s.repo.CreateObraSocial(ctx, os); err != nil {
		return nil, err
	}
	return obraSocialToResponse(os), nil
}

func (s *catalogoService) ActualizarObraSocial(ctx context.Context, id uuid.UUID, req dto.ObraSocialRequest) (*dto.ObraSocialResponse, error) {
	if err := validarCobertura(req.CoberturaPct); err != nil {
		return nil, err
	}
	os, err := s.repo.FindObraSocial(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obra social no encontrada: %w", err)
	}
	os.Nombre = req.Nombre
	os.CoberturaPct = req.CoberturaPct
	if err := s.repo.UpdateObraSocial(ctx, os); err != nil {
		return nil, err
	}
	return obraSocialToResponse(os), nil
}

func (s *catalogoService) DesactivarObraSocial(ctx context.Context, id uuid.UUID) error {
	os, err := s.repo.FindObraSocial(ctx, id)
	if err != nil {
		return fmt.Errorf("obra social no encontrada: %w", err)
	}
	os.Activa = false
	return s.repo.UpdateObraSocial(ctx, os)
}

func (s *catalogoService) ListarObrasSociales(ctx context.Context, incluirInactivas bool) ([]dto.ObraSocialResponse, error) {
	obras, err := s.repo.ListObrasSociales(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ObraSocialResponse, len(obras))
	for i := range obras {
		resp[i] = *obraSocialToResponse(&obras[i])
	}
	return resp, nil
}

// ── Metodos de pago ───────────────────────────────────────────────────────────

func (s *catalogoService) CrearMetodoPago(ctx context.Context, req dto.MetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	mp := &model.MetodoPago{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CreateMetodoPago(ctx, mp); err != nil {
		return nil, err
	}
	return &dto.MetodoPagoResponse{ID: mp.ID.String(), Nombre: mp.Nombre, Activo: mp.Activo}, nil
}

func (s *catalogoService) DesactivarMetodoPago(ctx context.Context, id uuid.UUID) error {
	mp, err := s.repo.FindMetodoPago(ctx, id)
	if err != nil {
		return fmt.Errorf("método de pago no encontrado: %w", err)
	}
	mp.Activo = false
	return s.repo.UpdateMetodoPago(ctx, mp)
}

func (s *catalogoService) ListarMetodosPago(ctx context.Context, incluirInactivos bool) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.repo.ListMetodosPago(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MetodoPagoResponse, len(metodos))
	for i, mp := range metodos {
		resp[i] = dto.MetodoPagoResponse{ID: mp.ID.String(), Nombre: mp.Nombre, Activo: mp.Activo}
	}
	return resp, nil
}

// ── Aranceles ─────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearArancel(ctx context.Context, req dto.ArancelRequest) (*dto.ArancelResponse, error) {
	if req.Precio.IsNegative() {
		return nil, validationf("el precio no puede ser negativo")
	}
	a := &model.Arancel{Codigo: req.Codigo, Descripcion: req.Descripcion, Precio: req.Precio, Activo: true}
	if err := s.repo.CreateArancel(ctx, a); err != nil {
		return nil, err
	}
	return arancelToResponse(a), nil
}

func (s *catalogoService) ActualizarArancel(ctx context.Context, id uuid.UUID, req dto.ArancelRequest) (*dto.ArancelResponse, error) {
	if req.Precio.IsNegative() {
		return nil, validationf("el precio no puede ser negativo")
	}
	a, err := s.repo.FindArancel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("arancel no encontrado: %w", err)
	}
	a.Codigo = req.Codigo
	a.Descripcion = req.Descripcion
	a.Precio = req.Precio
	if err := s.repo.UpdateArancel(ctx, a); err != nil {
		return nil, err
	}
	return arancelToResponse(a), nil
}

func (s *catalogoService) DesactivarArancel(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindArancel(ctx, id)
	if err != nil {
		return fmt.Errorf("arancel no encontrado: %w", err)
	}
	a.Activo = false
	return s.repo.UpdateArancel(ctx, a)
}

func (s *catalogoService) ListarAranceles(ctx context.Context, incluirInactivos bool) ([]dto.ArancelResponse, error) {
	aranceles, err := s.repo.ListAranceles(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ArancelResponse, len(aranceles))
	for i := range aranceles {
		resp[i] = *arancelToResponse(&aranceles[i])
	}
	return resp, nil
}

func validarCobertura(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(cien) {
		return validationf("la cobertura debe estar entre 0 y 100")
	}
	return nil
}

func obraSocialToResponse(os *model.ObraSocial) *dto.ObraSocialResponse {
	return &dto.ObraSocialResponse{
		ID:           os.ID.String(),
		Nombre:       os.Nombre,
		CoberturaPct: os.CoberturaPct,
		Activa:       os.Activa,
	}
}

func arancelToResponse(a *model.Arancel) *dto.ArancelResponse {
	return &dto.ArancelResponse{
		ID:          a.ID.String(),
		Codigo:      a.Codigo,
		Descripcion: a.Descripcion,
		Precio:      a.Precio,
		Activo:      a.Activo,
	}
}
