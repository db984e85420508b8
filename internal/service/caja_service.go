package service

import (
	"context"
	"fmt"
	"time"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"
	"dentalis/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoRequest) (*dto.MovimientoResponse, error)
	ListarMovimientos(ctx context.Context, sesionID uuid.UUID, tipo string) ([]dto.MovimientoResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	ObtenerReporte(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error)
	GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error)
	Historial(ctx context.Context, page, limit int) ([]dto.SesionCajaResponse, int64, error)
	// FindSesionAbierta is called by CobroService before attributing payments.
	FindSesionAbierta(ctx context.Context, sesionID uuid.UUID) error
}

type cajaService struct {
	repo       repository.CajaRepository
	cobros     repository.CobroRepository
	dispatcher *worker.Dispatcher // nil disables the closing-report job
	adminEmail string
}

func NewCajaService(repo repository.CajaRepository, cobros repository.CobroRepository, dispatcher *worker.Dispatcher, adminEmail string) CajaService {
	return &cajaService{repo: repo, cobros: cobros, dispatcher: dispatcher, adminEmail: adminEmail}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if req.MontoApertura.IsNegative() {
		return nil, validationf("el monto de apertura no puede ser negativo")
	}

	// Guard: one open session per usuario
	if existing, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID); err == nil && existing != nil {
		return nil, invalidStatef("ya existe una caja abierta para este usuario")
	}

	sesion := &model.SesionCaja{
		UsuarioID:     usuarioID,
		MontoApertura: req.MontoApertura,
		Estado:        model.SesionAbierta,
		Observaciones: req.Observaciones,
		AbiertaAt:     time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	return s.buildReporte(ctx, sesion)
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Ingreso / egreso manual. Movements are immutable — no Update/Delete, and the
// owning session must still be abierta.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoRequest) (*dto.MovimientoResponse, error) {
	sesionID, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, validationf("sesion_caja_id inválido: %v", err)
	}
	if req.Tipo != model.MovimientoIngreso && req.Tipo != model.MovimientoEgreso {
		return nil, validationf("tipo de movimiento inválido: %q", req.Tipo)
	}
	if !req.Monto.IsPositive() {
		return nil, validationf("el monto debe ser mayor a cero")
	}
	if err := s.FindSesionAbierta(ctx, sesionID); err != nil {
		return nil, err
	}

	mov := &model.MovimientoCaja{
		SesionCajaID: sesionID,
		Tipo:         req.Tipo,
		Monto:        req.Monto,
		Descripcion:  req.Descripcion,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	return movimientoToResponse(mov), nil
}

func (s *cajaService) ListarMovimientos(ctx context.Context, sesionID uuid.UUID, tipo string) ([]dto.MovimientoResponse, error) {
	if tipo != "" && tipo != model.MovimientoIngreso && tipo != model.MovimientoEgreso {
		return nil, validationf("tipo de movimiento inválido: %q", tipo)
	}
	movs, err := s.repo.ListMovimientos(ctx, sesionID, tipo)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimientoResponse, len(movs))
	for i := range movs {
		resp[i] = *movimientoToResponse(&movs[i])
	}
	return resp, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// One-way transition. The closing amount is the computed expected balance
// unless the cashier declares a counted amount (manual override, recorded
// verbatim). There is no reopen.

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	sesionID, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, validationf("sesion_caja_id inválido: %v", err)
	}
	if req.MontoDeclarado != nil && req.MontoDeclarado.IsNegative() {
		return nil, validationf("el monto declarado no puede ser negativo")
	}

	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, fmt.Errorf("sesión de caja no encontrada: %w", err)
	}
	if sesion.Estado != model.SesionAbierta {
		return nil, invalidStatef("la caja ya está cerrada")
	}

	balance, err := s.balance(ctx, sesion)
	if err != nil {
		return nil, err
	}

	esperado := balance.SaldoEsperado
	cierre := esperado
	if req.MontoDeclarado != nil {
		cierre = *req.MontoDeclarado
	}
	desvio := cierre.Sub(esperado)
	now := time.Now()

	sesion.SaldoEsperado = &esperado
	sesion.MontoCierre = &cierre
	sesion.Desvio = &desvio
	sesion.Estado = model.SesionCerrada
	sesion.CerradaAt = &now
	if req.Observaciones != nil {
		sesion.Observaciones = req.Observaciones
	}

	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	// Closing report is async and best-effort: a queue hiccup must not undo
	// the close.
	if s.dispatcher != nil {
		payload := worker.CierreJobPayload{SesionCajaID: sesionID.String(), ToEmail: s.adminEmail}
		if err := s.dispatcher.EnqueueCierre(ctx, payload); err != nil {
			log.Error().Err(err).Str("sesion_id", sesionID.String()).Msg("caja: no se pudo encolar el reporte de cierre")
		}
	}

	return &dto.CierreCajaResponse{
		SesionCajaID:  sesionID.String(),
		SaldoEsperado: esperado,
		MontoCierre:   cierre,
		Desvio:        desvio,
		Estado:        model.SesionCerrada,
	}, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *cajaService) ObtenerReporte(ctx context.Context, sesionID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return nil, fmt.Errorf("sesión de caja no encontrada: %w", err)
	}
	return s.buildReporte(ctx, sesion)
}

func (s *cajaService) GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaPorUsuario(ctx, usuarioID)
	if err != nil || sesion == nil {
		return nil, nil
	}
	return s.buildReporte(ctx, sesion)
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.SesionCajaResponse, int64, error) {
	sesiones, total, err := s.repo.ListSesiones(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for i := range sesiones {
		r, err := s.buildReporte(ctx, &sesiones[i])
		if err != nil {
			return nil, 0, err
		}
		resp = append(resp, *r)
	}
	return resp, total, nil
}

func (s *cajaService) FindSesionAbierta(ctx context.Context, sesionID uuid.UUID) error {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if err != nil {
		return fmt.Errorf("sesión de caja no encontrada: %w", err)
	}
	if sesion.Estado != model.SesionAbierta {
		return invalidStatef("la caja ya está cerrada")
	}
	return nil
}

// ── Balance ───────────────────────────────────────────────────────────────────
// saldo esperado = apertura + Σ ingresos − Σ egresos + Σ cobros.
// Every term is summed in decimal; insertion order is irrelevant. A float64
// shadow accumulation runs alongside purely to detect precision drift.

func (s *cajaService) balance(ctx context.Context, sesion *model.SesionCaja) (dto.BalanceCaja, error) {
	movs, err := s.repo.ListMovimientos(ctx, sesion.ID, "")
	if err != nil {
		return dto.BalanceCaja{}, err
	}
	cobros, err := s.cobros.ListBySesion(ctx, sesion.ID)
	if err != nil {
		return dto.BalanceCaja{}, err
	}

	ingresos := decimal.Zero
	egresos := decimal.Zero
	shadow := sesion.MontoApertura.InexactFloat64()
	for _, m := range movs {
		if m.Tipo == model.MovimientoIngreso {
			ingresos = ingresos.Add(m.Monto)
			shadow += m.Monto.InexactFloat64()
		} else {
			egresos = egresos.Add(m.Monto)
			shadow -= m.Monto.InexactFloat64()
		}
	}

	totalCobros := decimal.Zero
	for _, c := range cobros {
		pagado := c.PagadoPaciente.Add(c.PagadoObraSocial)
		totalCobros = totalCobros.Add(pagado)
		shadow += pagado.InexactFloat64()
	}

	saldo := sesion.MontoApertura.Add(ingresos).Sub(egresos).Add(totalCobros)
	if err := verificarPrecision(saldo, shadow); err != nil {
		return dto.BalanceCaja{}, err
	}

	return dto.BalanceCaja{
		MontoApertura: sesion.MontoApertura,
		TotalIngresos: ingresos,
		TotalEgresos:  egresos,
		TotalCobros:   totalCobros,
		SaldoEsperado: saldo,
	}, nil
}

// verificarPrecision compares the decimal result against the float64 shadow
// sum and rejects the computation when they drift beyond half a cent.
func verificarPrecision(dec decimal.Decimal, shadow float64) error {
	diff := dec.Sub(decimal.NewFromFloat(shadow)).Abs()
	if diff.GreaterThan(precisionEpsilon) {
		return &PrecisionError{Decimal: dec, Float: shadow}
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) buildReporte(ctx context.Context, sesion *model.SesionCaja) (*dto.SesionCajaResponse, error) {
	balance, err := s.balance(ctx, sesion)
	if err != nil {
		return nil, err
	}

	reporte := &dto.SesionCajaResponse{
		SesionCajaID:  sesion.ID.String(),
		Estado:        sesion.Estado,
		Balance:       balance,
		MontoCierre:   sesion.MontoCierre,
		Desvio:        sesion.Desvio,
		Observaciones: sesion.Observaciones,
		AbiertaAt:     sesion.AbiertaAt.Format(time.RFC3339),
	}
	if sesion.Usuario != nil {
		reporte.Usuario = sesion.Usuario.Nombre
	}
	if sesion.CerradaAt != nil {
		t := sesion.CerradaAt.Format(time.RFC3339)
		reporte.CerradaAt = &t
	}
	return reporte, nil
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:          m.ID.String(),
		Tipo:        m.Tipo,
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
