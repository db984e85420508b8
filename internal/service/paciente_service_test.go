package service

import (
	"context"
	"testing"

	"dentalis/internal/dto"
	"dentalis/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPacienteFixture() (*fakePacienteRepo, *fakeCatalogoRepo, PacienteService) {
	pacienteRepo := newFakePacienteRepo()
	catalogoRepo := newFakeCatalogoRepo()
	return pacienteRepo, catalogoRepo, NewPacienteService(pacienteRepo, catalogoRepo)
}

func TestCrearPaciente(t *testing.T) {
	_, catalogo, svc := newPacienteFixture()

	os := &model.ObraSocial{Nombre: "IOMA", CoberturaPct: decimal.NewFromInt(60), Activa: true}
	require.NoError(t, catalogo.CreateObraSocial(context.Background(), os))

	fn := "1990-05-12"
	osID := os.ID.String()
	resp, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento:       "30123456",
		Nombre:          "Carla",
		Apellido:        "Suárez",
		FechaNacimiento: &fn,
		ObraSocialID:    &osID,
	})
	require.NoError(t, err)
	assert.Equal(t, "30123456", resp.Documento)
	require.NotNil(t, resp.ObraSocial)
	assert.Equal(t, "IOMA", *resp.ObraSocial)
	require.NotNil(t, resp.FechaNacimiento)
	assert.Equal(t, fn, *resp.FechaNacimiento)
}

func TestCrearPaciente_DocumentoDuplicado(t *testing.T) {
	_, _, svc := newPacienteFixture()

	_, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "28999000",
		Nombre:    "Pedro",
		Apellido:  "Molina",
	})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "28999000",
		Nombre:    "Otro",
		Apellido:  "Molina",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "ya existe un paciente")
}

func TestCrearPaciente_FechaNacimientoInvalida(t *testing.T) {
	_, _, svc := newPacienteFixture()

	fn := "12/05/1990"
	_, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento:       "31222333",
		Nombre:          "Mal",
		Apellido:        "Formato",
		FechaNacimiento: &fn,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "AAAA-MM-DD")
}

func TestCrearPaciente_ObraSocialInactiva(t *testing.T) {
	_, catalogo, svc := newPacienteFixture()

	os := &model.ObraSocial{Nombre: "Baja", CoberturaPct: decimal.NewFromInt(40), Activa: false}
	require.NoError(t, catalogo.CreateObraSocial(context.Background(), os))
	osID := os.ID.String()

	_, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento:    "32111222",
		Nombre:       "Sin",
		Apellido:     "Cobertura",
		ObraSocialID: &osID,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorContains(t, err, "inexistente o inactiva")
}

func TestActualizarPaciente_CambiosParciales(t *testing.T) {
	_, _, svc := newPacienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "27555666",
		Nombre:    "Elena",
		Apellido:  "Vera",
	})
	require.NoError(t, err)

	tel := "11-5555-0000"
	actualizado, err := svc.Actualizar(context.Background(), uuid.MustParse(creado.ID), dto.ActualizarPacienteRequest{
		Telefono: &tel,
	})
	require.NoError(t, err)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Elena", actualizado.Nombre)
	require.NotNil(t, actualizado.Telefono)
	assert.Equal(t, tel, *actualizado.Telefono)
}

func TestDesactivarPaciente(t *testing.T) {
	repo, _, svc := newPacienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "26000111",
		Nombre:    "Hugo",
		Apellido:  "Paz",
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	assert.False(t, repo.pacientes[id].Activo)

	listado, err := svc.Listar(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, listado.Data)
}

func TestAgregarHistoria(t *testing.T) {
	_, _, svc := newPacienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "25888999",
		Nombre:    "Rita",
		Apellido:  "Benítez",
	})
	require.NoError(t, err)
	id := uuid.MustParse(creado.ID)

	h, err := svc.AgregarHistoria(context.Background(), id, uuid.New(), dto.CrearHistoriaRequest{
		Tipo:    "alergia",
		Detalle: "Alergia a la penicilina",
	})
	require.NoError(t, err)
	assert.Equal(t, "alergia", h.Tipo)

	historia, err := svc.ListarHistoria(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, historia, 1)
}

func TestAgregarHistoria_TipoInvalido(t *testing.T) {
	_, _, svc := newPacienteFixture()

	creado, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Documento: "24777888",
		Nombre:    "Iván",
		Apellido:  "Sosa",
	})
	require.NoError(t, err)

	_, err = svc.AgregarHistoria(context.Background(), uuid.MustParse(creado.ID), uuid.New(), dto.CrearHistoriaRequest{
		Tipo:    "diagnostico",
		Detalle: "No es un tipo válido",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
