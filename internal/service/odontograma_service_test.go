package service

import (
	"context"
	"testing"

	"dentalis/internal/dto"
	"dentalis/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOdontogramaFixture(t *testing.T) (uuid.UUID, OdontogramaService) {
	t.Helper()
	pacienteRepo := newFakePacienteRepo()
	odontoRepo := newFakeOdontogramaRepo()
	svc := NewOdontogramaService(odontoRepo, pacienteRepo)

	p := &model.Paciente{Documento: "20111222", Nombre: "Mia", Apellido: "Ruiz", Activo: true}
	require.NoError(t, pacienteRepo.Create(context.Background(), p))
	return p.ID, svc
}

func TestActualizarCara(t *testing.T) {
	pacienteID, svc := newOdontogramaFixture(t)

	resp, err := svc.ActualizarCara(context.Background(), pacienteID, dto.ActualizarCaraRequest{
		Diente: 11,
		Cara:   "vestibular",
		Estado: "caries",
	})
	require.NoError(t, err)
	assert.Equal(t, "caries", resp.Estado)
}

func TestActualizarCara_SobrescribeEstado(t *testing.T) {
	pacienteID, svc := newOdontogramaFixture(t)

	_, err := svc.ActualizarCara(context.Background(), pacienteID, dto.ActualizarCaraRequest{
		Diente: 36, Cara: "oclusal", Estado: "caries",
	})
	require.NoError(t, err)
	_, err = svc.ActualizarCara(context.Background(), pacienteID, dto.ActualizarCaraRequest{
		Diente: 36, Cara: "oclusal", Estado: "restaurado",
	})
	require.NoError(t, err)

	chart, err := svc.Obtener(context.Background(), pacienteID)
	require.NoError(t, err)
	require.Len(t, chart.Dientes[36], 1)
	assert.Equal(t, "restaurado", chart.Dientes[36][0].Estado)
}

func TestActualizarCara_Invalida(t *testing.T) {
	pacienteID, svc := newOdontogramaFixture(t)

	cases := []dto.ActualizarCaraRequest{
		{Diente: 49, Cara: "oclusal", Estado: "sano"},   // FDI fuera de rango
		{Diente: 11, Cara: "frontal", Estado: "sano"},   // cara inexistente
		{Diente: 11, Cara: "oclusal", Estado: "picado"}, // estado inexistente
	}
	for _, req := range cases {
		_, err := svc.ActualizarCara(context.Background(), pacienteID, req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
}

func TestObtenerOdontograma_AgrupaPorDiente(t *testing.T) {
	pacienteID, svc := newOdontogramaFixture(t)

	for _, req := range []dto.ActualizarCaraRequest{
		{Diente: 11, Cara: "vestibular", Estado: "sano"},
		{Diente: 11, Cara: "mesial", Estado: "caries"},
		{Diente: 21, Cara: "oclusal", Estado: "corona"},
	} {
		_, err := svc.ActualizarCara(context.Background(), pacienteID, req)
		require.NoError(t, err)
	}

	chart, err := svc.Obtener(context.Background(), pacienteID)
	require.NoError(t, err)
	assert.Len(t, chart.Dientes, 2)
	assert.Len(t, chart.Dientes[11], 2)
	assert.Len(t, chart.Dientes[21], 1)
}
