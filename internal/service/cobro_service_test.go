package service

import (
	"context"
	"errors"
	"testing"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory CatalogoRepository ─────────────────────────────────────────────

type fakeCatalogoRepo struct {
	obras     map[uuid.UUID]*model.ObraSocial
	metodos   map[uuid.UUID]*model.MetodoPago
	aranceles map[uuid.UUID]*model.Arancel
}

func newFakeCatalogoRepo() *fakeCatalogoRepo {
	return &fakeCatalogoRepo{
		obras:     make(map[uuid.UUID]*model.ObraSocial),
		metodos:   make(map[uuid.UUID]*model.MetodoPago),
		aranceles: make(map[uuid.UUID]*model.Arancel),
	}
}

func (r *fakeCatalogoRepo) CreateObraSocial(_ context.Context, os *model.ObraSocial) error {
	if os.ID == uuid.Nil {
		os.ID = uuid.New()
	}
	r.obras[os.ID] = os
	return nil
}

func (r *fakeCatalogoRepo) FindObraSocial(_ context.Context, id uuid.UUID) (*model.ObraSocial, error) {
	os, ok := r.obras[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return os, nil
}

func (r *fakeCatalogoRepo) UpdateObraSocial(_ context.Context, os *model.ObraSocial) error {
	r.obras[os.ID] = os
	return nil
}

func (r *fakeCatalogoRepo) ListObrasSociales(_ context.Context, incluirInactivas bool) ([]model.ObraSocial, error) {
	var result []model.ObraSocial
	for _, os := range r.obras {
		if incluirInactivas || os.Activa {
			result = append(result, *os)
		}
	}
	return result, nil
}

func (r *fakeCatalogoRepo) CreateMetodoPago(_ context.Context, mp *model.MetodoPago) error {
	if mp.ID == uuid.Nil {
		mp.ID = uuid.New()
	}
	r.metodos[mp.ID] = mp
	return nil
}

func (r *fakeCatalogoRepo) FindMetodoPago(_ context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	mp, ok := r.metodos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return mp, nil
}

func (r *fakeCatalogoRepo) UpdateMetodoPago(_ context.Context, mp *model.MetodoPago) error {
	r.metodos[mp.ID] = mp
	return nil
}

func (r *fakeCatalogoRepo) ListMetodosPago(_ context.Context, incluirInactivos bool) ([]model.MetodoPago, error) {
	var result []model.MetodoPago
	for _, mp := range r.metodos {
		if incluirInactivos || mp.Activo {
			result = append(result, *mp)
		}
	}
	return result, nil
}

func (r *fakeCatalogoRepo) CreateArancel(_ context.Context, a *model.Arancel) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.aranceles[a.ID] = a
	return nil
}

func (r *fakeCatalogoRepo) FindArancel(_ context.Context, id uuid.UUID) (*model.Arancel, error) {
	a, ok := r.aranceles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (r *fakeCatalogoRepo) FindArancelPorCodigo(_ context.Context, codigo string) (*model.Arancel, error) {
	for _, a := range r.aranceles {
		if a.Codigo == codigo {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeCatalogoRepo) UpdateArancel(_ context.Context, a *model.Arancel) error {
	r.aranceles[a.ID] = a
	return nil
}

func (r *fakeCatalogoRepo) ListAranceles(_ context.Context, incluirInactivos bool) ([]model.Arancel, error) {
	var result []model.Arancel
	for _, a := range r.aranceles {
		if incluirInactivos || a.Activo {
			result = append(result, *a)
		}
	}
	return result, nil
}

var _ repository.CatalogoRepository = (*fakeCatalogoRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type cobroFixture struct {
	cobros   *fakeCobroRepo
	catalogo *fakeCatalogoRepo
	caja     CajaService
	svc      CobroService
	sesionID string
	metodoID string
}

func newCobroFixture(t *testing.T) *cobroFixture {
	t.Helper()

	cajaRepo := newFakeCajaRepo()
	cobroRepo := newFakeCobroRepo()
	catalogoRepo := newFakeCatalogoRepo()
	cajaSvc := NewCajaService(cajaRepo, cobroRepo, nil, "")

	sesion, err := cajaSvc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoApertura: decimal.NewFromFloat(1000),
	})
	require.NoError(t, err)

	metodo := &model.MetodoPago{Nombre: "efectivo", Activo: true}
	require.NoError(t, catalogoRepo.CreateMetodoPago(context.Background(), metodo))

	return &cobroFixture{
		cobros:   cobroRepo,
		catalogo: catalogoRepo,
		caja:     cajaSvc,
		svc:      NewCobroService(cobroRepo, catalogoRepo, cajaSvc),
		sesionID: sesion.SesionCajaID,
		metodoID: metodo.ID.String(),
	}
}

// seedCobro creates a pending cobro: total = cubierto + aCargo.
func (f *cobroFixture) seedCobro(t *testing.T, aCargo, cubierto float64) *model.Cobro {
	t.Helper()
	c := &model.Cobro{
		TratamientoID:      uuid.New(),
		MontoTotal:         decimal.NewFromFloat(aCargo + cubierto),
		CubiertoObraSocial: decimal.NewFromFloat(cubierto),
		ACargoPaciente:     decimal.NewFromFloat(aCargo),
		PagadoPaciente:     decimal.Zero,
		PagadoObraSocial:   decimal.Zero,
		Estado:             model.CobroPendiente,
	}
	require.NoError(t, f.cobros.Create(context.Background(), c))
	return c
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarPago_Completo(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 700, 300)

	resp, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:         cobro.ID.String(),
		SesionCajaID:    f.sesionID,
		MetodoPagoID:    f.metodoID,
		MontoPaciente:   decimal.NewFromFloat(700),
		MontoObraSocial: decimal.NewFromFloat(300),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CobroPagado, resp.Estado)
	assert.Equal(t, "700", resp.PagadoPaciente.String())
	assert.Equal(t, "300", resp.PagadoObraSocial.String())
	require.NotNil(t, resp.FechaPago)

	stored := f.cobros.cobros[cobro.ID]
	require.NotNil(t, stored.SesionCajaID)
	assert.Equal(t, f.sesionID, stored.SesionCajaID.String())
}

func TestRegistrarPago_Parcial(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 1000, 0)

	resp, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(400),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CobroParcial, resp.Estado)

	// Second installment settles it.
	resp, err = f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(600),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CobroPagado, resp.Estado)
}

func TestRegistrarPago_ExcedeACargo(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 500, 0)

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(500.01),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "supera el monto a su cargo")

	// Rejection leaves the cobro untouched.
	stored := f.cobros.cobros[cobro.ID]
	assert.True(t, stored.PagadoPaciente.IsZero())
	assert.Equal(t, model.CobroPendiente, stored.Estado)
}

func TestRegistrarPago_ExcedeCubierto(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 500, 200)

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:         cobro.ID.String(),
		SesionCajaID:    f.sesionID,
		MetodoPagoID:    f.metodoID,
		MontoObraSocial: decimal.NewFromFloat(250),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "supera el monto cubierto")
}

func TestRegistrarPago_MontoTotalCero(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 0, 0)

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(10),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "monto total es 0")
}

func TestRegistrarPago_MontosInvalidos(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 500, 0)

	// Both zero.
	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:      cobro.ID.String(),
		SesionCajaID: f.sesionID,
		MetodoPagoID: f.metodoID,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// Negative.
	_, err = f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(-1),
	})
	require.ErrorAs(t, err, &verr)
}

func TestRegistrarPago_CobroYaPagado(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 100, 0)

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	_, err = f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(1),
	})
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "ya está pagado")
}

func TestRegistrarPago_SesionCerrada(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 100, 0)

	_, err := f.caja.Cerrar(context.Background(), dto.CerrarCajaRequest{SesionCajaID: f.sesionID})
	require.NoError(t, err)

	_, err = f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  f.metodoID,
		MontoPaciente: decimal.NewFromFloat(100),
	})
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
}

func TestRegistrarPago_MetodoInactivo(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 100, 0)

	inactivo := &model.MetodoPago{Nombre: "cheque", Activo: false}
	require.NoError(t, f.catalogo.CreateMetodoPago(context.Background(), inactivo))

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:       cobro.ID.String(),
		SesionCajaID:  f.sesionID,
		MetodoPagoID:  inactivo.ID.String(),
		MontoPaciente: decimal.NewFromFloat(100),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "método de pago")
}

func TestRegistrarPago_ImpactaBalanceDeCaja(t *testing.T) {
	f := newCobroFixture(t)
	cobro := f.seedCobro(t, 800, 200)

	_, err := f.svc.RegistrarPago(context.Background(), dto.RegistrarPagoRequest{
		CobroID:         cobro.ID.String(),
		SesionCajaID:    f.sesionID,
		MetodoPagoID:    f.metodoID,
		MontoPaciente:   decimal.NewFromFloat(800),
		MontoObraSocial: decimal.NewFromFloat(200),
	})
	require.NoError(t, err)

	reporte, err := f.caja.ObtenerReporte(context.Background(), uuid.MustParse(f.sesionID))
	require.NoError(t, err)
	// 1000 apertura + 1000 cobrado
	assert.Equal(t, "1000", reporte.Balance.TotalCobros.String())
	assert.Equal(t, "2000", reporte.Balance.SaldoEsperado.String())
}

func TestEstadoCobro(t *testing.T) {
	diez := decimal.NewFromInt(10)

	cero := &model.Cobro{MontoTotal: decimal.Zero}
	assert.Equal(t, model.CobroPagado, estadoCobro(cero))

	pendiente := &model.Cobro{
		MontoTotal:     diez,
		ACargoPaciente: diez,
		PagadoPaciente: decimal.Zero,
	}
	assert.Equal(t, model.CobroPendiente, estadoCobro(pendiente))

	parcial := &model.Cobro{
		MontoTotal:     diez,
		ACargoPaciente: diez,
		PagadoPaciente: decimal.NewFromInt(4),
	}
	assert.Equal(t, model.CobroParcial, estadoCobro(parcial))

	pagado := &model.Cobro{
		MontoTotal:         diez,
		ACargoPaciente:     decimal.NewFromInt(6),
		PagadoPaciente:     decimal.NewFromInt(6),
		CubiertoObraSocial: decimal.NewFromInt(4),
		PagadoObraSocial:   decimal.NewFromInt(4),
	}
	assert.Equal(t, model.CobroPagado, estadoCobro(pagado))
}
