package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory fakes ──────────────────────────────────────────────────────────

type fakeTratamientoRepo struct {
	tratamientos map[uuid.UUID]*model.Tratamiento
}

func newFakeTratamientoRepo() *fakeTratamientoRepo {
	return &fakeTratamientoRepo{tratamientos: make(map[uuid.UUID]*model.Tratamiento)}
}

func (r *fakeTratamientoRepo) Create(_ context.Context, t *model.Tratamiento) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tratamientos[t.ID] = t
	return nil
}

func (r *fakeTratamientoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tratamiento, error) {
	t, ok := r.tratamientos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *fakeTratamientoRepo) ListByPaciente(_ context.Context, pacienteID uuid.UUID) ([]model.Tratamiento, error) {
	var result []model.Tratamiento
	for _, t := range r.tratamientos {
		if t.PacienteID == pacienteID {
			result = append(result, *t)
		}
	}
	return result, nil
}

var _ repository.TratamientoRepository = (*fakeTratamientoRepo)(nil)

type fakePacienteRepo struct {
	pacientes map[uuid.UUID]*model.Paciente
	historias []model.HistoriaClinica
}

func newFakePacienteRepo() *fakePacienteRepo {
	return &fakePacienteRepo{pacientes: make(map[uuid.UUID]*model.Paciente)}
}

func (r *fakePacienteRepo) Create(_ context.Context, p *model.Paciente) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakePacienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Paciente, error) {
	p, ok := r.pacientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakePacienteRepo) FindByDocumento(_ context.Context, documento string) (*model.Paciente, error) {
	for _, p := range r.pacientes {
		if p.Documento == documento {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakePacienteRepo) Update(_ context.Context, p *model.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakePacienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.pacientes[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakePacienteRepo) List(_ context.Context, _ string, _, _ int) ([]model.Paciente, int64, error) {
	var result []model.Paciente
	for _, p := range r.pacientes {
		if p.Activo {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakePacienteRepo) CreateHistoria(_ context.Context, h *model.HistoriaClinica) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.historias = append(r.historias, *h)
	return nil
}

func (r *fakePacienteRepo) ListHistoria(_ context.Context, pacienteID uuid.UUID) ([]model.HistoriaClinica, error) {
	var result []model.HistoriaClinica
	for _, h := range r.historias {
		if h.PacienteID == pacienteID {
			result = append(result, h)
		}
	}
	return result, nil
}

var _ repository.PacienteRepository = (*fakePacienteRepo)(nil)

type fakeOdontogramaRepo struct {
	caras map[string]*model.DienteCara
}

func newFakeOdontogramaRepo() *fakeOdontogramaRepo {
	return &fakeOdontogramaRepo{caras: make(map[string]*model.DienteCara)}
}

func odontoKey(pacienteID uuid.UUID, diente int, cara string) string {
	return fmt.Sprintf("%s/%d/%s", pacienteID, diente, cara)
}

func (r *fakeOdontogramaRepo) UpsertCara(_ context.Context, dc *model.DienteCara) error {
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	r.caras[odontoKey(dc.PacienteID, dc.Diente, dc.Cara)] = dc
	return nil
}

func (r *fakeOdontogramaRepo) ListByPaciente(_ context.Context, pacienteID uuid.UUID) ([]model.DienteCara, error) {
	var result []model.DienteCara
	for _, dc := range r.caras {
		if dc.PacienteID == pacienteID {
			result = append(result, *dc)
		}
	}
	return result, nil
}

var _ repository.OdontogramaRepository = (*fakeOdontogramaRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type tratamientoFixture struct {
	tratamientos *fakeTratamientoRepo
	cobros       *fakeCobroRepo
	pacientes    *fakePacienteRepo
	catalogo     *fakeCatalogoRepo
	odontograma  *fakeOdontogramaRepo
	svc          TratamientoService
}

func newTratamientoFixture() *tratamientoFixture {
	f := &tratamientoFixture{
		tratamientos: newFakeTratamientoRepo(),
		cobros:       newFakeCobroRepo(),
		pacientes:    newFakePacienteRepo(),
		catalogo:     newFakeCatalogoRepo(),
		odontograma:  newFakeOdontogramaRepo(),
	}
	f.svc = NewTratamientoService(f.tratamientos, f.cobros, f.pacientes, f.catalogo, f.odontograma)
	return f
}

func (f *tratamientoFixture) seedPaciente(t *testing.T, os *model.ObraSocial) *model.Paciente {
	t.Helper()
	p := &model.Paciente{
		Documento:  uuid.NewString()[:8],
		Nombre:     "Ana",
		Apellido:   "García",
		Activo:     true,
		ObraSocial: os,
	}
	if os != nil {
		p.ObraSocialID = &os.ID
	}
	require.NoError(t, f.pacientes.Create(context.Background(), p))
	return p
}

func (f *tratamientoFixture) seedArancel(t *testing.T, codigo string, precio float64) *model.Arancel {
	t.Helper()
	a := &model.Arancel{
		Codigo:      codigo,
		Descripcion: "Consulta de diagnóstico",
		Precio:      decimal.NewFromFloat(precio),
		Activo:      true,
	}
	require.NoError(t, f.catalogo.CreateArancel(context.Background(), a))
	return a
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarTratamiento_SinObraSocial(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	f.seedArancel(t, "CONS01", 12000)

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "CONS01",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Cobro)
	assert.Equal(t, "12000", resp.Cobro.MontoTotal.String())
	assert.Equal(t, "0", resp.Cobro.CubiertoObraSocial.String())
	assert.Equal(t, "12000", resp.Cobro.ACargoPaciente.String())
	assert.Equal(t, model.CobroPendiente, resp.Cobro.Estado)
}

func TestRegistrarTratamiento_ConCobertura(t *testing.T) {
	f := newTratamientoFixture()
	os := &model.ObraSocial{Nombre: "OSDE", CoberturaPct: decimal.NewFromInt(70), Activa: true}
	require.NoError(t, f.catalogo.CreateObraSocial(context.Background(), os))
	paciente := f.seedPaciente(t, os)
	f.seedArancel(t, "ENDO01", 10000)

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "ENDO01",
	})
	require.NoError(t, err)
	assert.Equal(t, "7000", resp.Cobro.CubiertoObraSocial.String())
	assert.Equal(t, "3000", resp.Cobro.ACargoPaciente.String())
	// cubierto + aCargo always reconstructs the total exactly
	suma := resp.Cobro.CubiertoObraSocial.Add(resp.Cobro.ACargoPaciente)
	assert.True(t, suma.Equal(resp.Cobro.MontoTotal))
}

func TestRegistrarTratamiento_ObraSocialInactiva(t *testing.T) {
	f := newTratamientoFixture()
	os := &model.ObraSocial{Nombre: "Baja", CoberturaPct: decimal.NewFromInt(50), Activa: false}
	require.NoError(t, f.catalogo.CreateObraSocial(context.Background(), os))
	paciente := f.seedPaciente(t, os)
	f.seedArancel(t, "CONS02", 5000)

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "CONS02",
	})
	require.NoError(t, err)
	// Inactive insurer covers nothing.
	assert.Equal(t, "0", resp.Cobro.CubiertoObraSocial.String())
	assert.Equal(t, "5000", resp.Cobro.ACargoPaciente.String())
}

func TestRegistrarTratamiento_ArancelGratuito(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	f.seedArancel(t, "CTRL01", 0)

	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "CTRL01",
	})
	require.NoError(t, err)
	// A free treatment never goes through collection.
	assert.Equal(t, model.CobroPagado, resp.Cobro.Estado)
	assert.True(t, resp.Cobro.MontoTotal.IsZero())
}

func TestRegistrarTratamiento_ActualizaOdontograma(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	f.seedArancel(t, "REST01", 8000)

	diente, cara, estado := 26, "oclusal", "restaurado"
	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "REST01",
		Diente:        &diente,
		Cara:          &cara,
		EstadoDiente:  &estado,
	})
	require.NoError(t, err)

	caras, err := f.odontograma.ListByPaciente(context.Background(), paciente.ID)
	require.NoError(t, err)
	require.Len(t, caras, 1)
	assert.Equal(t, 26, caras[0].Diente)
	assert.Equal(t, "restaurado", caras[0].Estado)
	require.NotNil(t, caras[0].TratamientoID)
	assert.Equal(t, resp.ID, caras[0].TratamientoID.String())
}

func TestRegistrarTratamiento_DienteInvalido(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	f.seedArancel(t, "EXO01", 9000)

	diente := 49
	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "EXO01",
		Diente:        &diente,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "FDI")
	assert.Empty(t, f.tratamientos.tratamientos)
}

func TestRegistrarTratamiento_PacienteInactivo(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	paciente.Activo = false
	f.seedArancel(t, "CONS03", 4000)

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "CONS03",
	})
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
}

func TestRegistrarTratamiento_ArancelInactivo(t *testing.T) {
	f := newTratamientoFixture()
	paciente := f.seedPaciente(t, nil)
	a := f.seedArancel(t, "OLD01", 3000)
	a.Activo = false

	_, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarTratamientoRequest{
		PacienteID:    paciente.ID.String(),
		ArancelCodigo: "OLD01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "inexistente o inactivo")
}

func TestSplitCobertura_Redondeo(t *testing.T) {
	os := &model.ObraSocial{CoberturaPct: decimal.NewFromFloat(33.33), Activa: true}

	cubierto, aCargo := splitCobertura(decimal.NewFromFloat(100), os)
	assert.Equal(t, "33.33", cubierto.String())
	assert.Equal(t, "66.67", aCargo.String())
	assert.True(t, cubierto.Add(aCargo).Equal(decimal.NewFromFloat(100)))

	// Rounding never lets coverage exceed the price.
	total := &model.ObraSocial{CoberturaPct: decimal.NewFromInt(100), Activa: true}
	cubierto, aCargo = splitCobertura(decimal.NewFromFloat(0.01), total)
	assert.Equal(t, "0.01", cubierto.String())
	assert.True(t, aCargo.IsZero())
}
