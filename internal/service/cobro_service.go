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

type CobroService interface {
	// RegistrarPago records a patient and/or insurer payment against a cobro
	// and attributes it to an open register session.
	RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.CobroResponse, error)
	ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID) ([]dto.CobroResponse, error)
	ListarPendientes(ctx context.Context, page, limit int) (*dto.CobroListResponse, error)
}

type cobroService struct {
	repo     repository.CobroRepository
	catalogo repository.CatalogoRepository
	caja     CajaService
}

func NewCobroService(repo repository.CobroRepository, catalogo repository.CatalogoRepository, caja CajaService) CobroService {
	return &cobroService{repo: repo, catalogo: catalogo, caja: caja}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// Bounds: pagado_paciente never exceeds a_cargo_paciente and
// pagado_obra_social never exceeds cubierto_obra_social. A cobro whose total
// is zero never accepts payments (it still sums as zero in the register
// balance; the treatment was priced at zero upstream).

func (s *cobroService) RegistrarPago(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.CobroResponse, error) {
	cobroID, err := uuid.Parse(req.CobroID)
	if err != nil {
		return nil, validationf("cobro_id inválido: %v", err)
	}
	sesionID, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, validationf("sesion_caja_id inválido: %v", err)
	}
	metodoID, err := uuid.Parse(req.MetodoPagoID)
	if err != nil {
		return nil, validationf("metodo_pago_id inválido: %v", err)
	}
	if req.MontoPaciente.IsNegative() || req.MontoObraSocial.IsNegative() {
		return nil, validationf("los montos no pueden ser negativos")
	}
	if req.MontoPaciente.IsZero() && req.MontoObraSocial.IsZero() {
		return nil, validationf("debe indicar un monto mayor a cero")
	}

	cobro, err := s.repo.FindByID(ctx, cobroID)
	if err != nil {
		return nil, fmt.Errorf("cobro no encontrado: %w", err)
	}
	if cobro.MontoTotal.IsZero() {
		return nil, validationf("no se puede registrar un pago cuando el monto total es 0")
	}
	if cobro.Estado == model.CobroPagado {
		return nil, invalidStatef("el cobro ya está pagado")
	}

	// Payments are taken at the register; the session must be open.
	if err := s.caja.FindSesionAbierta(ctx, sesionID); err != nil {
		return nil, err
	}

	metodo, err := s.catalogo.FindMetodoPago(ctx, metodoID)
	if err != nil || !metodo.Activo {
		return nil, validationf("método de pago inexistente o inactivo")
	}

	nuevoPagadoPaciente := cobro.PagadoPaciente.Add(req.MontoPaciente)
	if nuevoPagadoPaciente.GreaterThan(cobro.ACargoPaciente) {
		return nil, validationf("el pago del paciente (%s) supera el monto a su cargo (%s)",
			nuevoPagadoPaciente, cobro.ACargoPaciente)
	}
	nuevoPagadoOS := cobro.PagadoObraSocial.Add(req.MontoObraSocial)
	if nuevoPagadoOS.GreaterThan(cobro.CubiertoObraSocial) {
		return nil, validationf("el pago de la obra social (%s) supera el monto cubierto (%s)",
			nuevoPagadoOS, cobro.CubiertoObraSocial)
	}

	now := time.Now()
	cobro.PagadoPaciente = nuevoPagadoPaciente
	cobro.PagadoObraSocial = nuevoPagadoOS
	cobro.SesionCajaID = &sesionID
	cobro.MetodoPagoID = &metodoID
	cobro.FechaPago = &now
	cobro.Estado = estadoCobro(cobro)

	if err := s.repo.Update(ctx, cobro); err != nil {
		return nil, err
	}
	return cobroToResponse(cobro), nil
}

func (s *cobroService) ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID) ([]dto.CobroResponse, error) {
	cobros, err := s.repo.ListByPaciente(ctx, pacienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CobroResponse, len(cobros))
	for i := range cobros {
		resp[i] = *cobroToResponse(&cobros[i])
	}
	return resp, nil
}

func (s *cobroService) ListarPendientes(ctx context.Context, page, limit int) (*dto.CobroListResponse, error) {
	cobros, total, err := s.repo.ListPendientes(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CobroListResponse{Page: page, Limit: limit, Total: total}
	for i := range cobros {
		resp.Data = append(resp.Data, *cobroToResponse(&cobros[i]))
	}
	return resp, nil
}

// estadoCobro derives the payment status from the paid/due pairs.
// A zero-total cobro counts as pagado: there is nothing left to collect.
func estadoCobro(c *model.Cobro) string {
	if c.MontoTotal.IsZero() {
		return model.CobroPagado
	}
	pacienteSaldado := c.PagadoPaciente.Equal(c.ACargoPaciente)
	osSaldada := c.PagadoObraSocial.Equal(c.CubiertoObraSocial)
	switch {
	case pacienteSaldado && osSaldada:
		return model.CobroPagado
	case c.PagadoPaciente.IsZero() && c.PagadoObraSocial.IsZero():
		return model.CobroPendiente
	default:
		return model.CobroParcial
	}
}

func cobroToResponse(c *model.Cobro) *dto.CobroResponse {
	resp := &dto.CobroResponse{
		ID:                 c.ID.String(),
		TratamientoID:      c.TratamientoID.String(),
		MontoTotal:         c.MontoTotal,
		CubiertoObraSocial: c.CubiertoObraSocial,
		ACargoPaciente:     c.ACargoPaciente,
		PagadoPaciente:     c.PagadoPaciente,
		PagadoObraSocial:   c.PagadoObraSocial,
		Estado:             c.Estado,
	}
	if c.FechaPago != nil {
		t := c.FechaPago.Format(time.RFC3339)
		resp.FechaPago = &t
	}
	return resp
}
