package service

import (
	"context"
	"testing"

	"dentalis/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearObraSocial_CoberturaFueraDeRango(t *testing.T) {
	svc := NewCatalogoService(newFakeCatalogoRepo())

	for _, pct := range []float64{-1, 100.01} {
		_, err := svc.CrearObraSocial(context.Background(), dto.ObraSocialRequest{
			Nombre:       "Test",
			CoberturaPct: decimal.NewFromFloat(pct),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorContains(t, err, "entre 0 y 100")
	}
}

func TestObraSocial_CicloDeVida(t *testing.T) {
	repo := newFakeCatalogoRepo()
	svc := NewCatalogoService(repo)

	creada, err := svc.CrearObraSocial(context.Background(), dto.ObraSocialRequest{
		Nombre:       "OSDE",
		CoberturaPct: decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	assert.True(t, creada.Activa)

	id := uuid.MustParse(creada.ID)
	actualizada, err := svc.ActualizarObraSocial(context.Background(), id, dto.ObraSocialRequest{
		Nombre:       "OSDE 210",
		CoberturaPct: decimal.NewFromInt(90),
	})
	require.NoError(t, err)
	assert.Equal(t, "90", actualizada.CoberturaPct.String())

	require.NoError(t, svc.DesactivarObraSocial(context.Background(), id))

	activas, err := svc.ListarObrasSociales(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activas)

	todas, err := svc.ListarObrasSociales(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todas, 1)
}

func TestCrearArancel_PrecioNegativo(t *testing.T) {
	svc := NewCatalogoService(newFakeCatalogoRepo())

	_, err := svc.CrearArancel(context.Background(), dto.ArancelRequest{
		Codigo:      "X01",
		Descripcion: "Inválido",
		Precio:      decimal.NewFromFloat(-100),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestArancel_PrecioCero(t *testing.T) {
	// Free treatments (controls) are a valid catalog entry.
	svc := NewCatalogoService(newFakeCatalogoRepo())

	a, err := svc.CrearArancel(context.Background(), dto.ArancelRequest{
		Codigo:      "CTRL01",
		Descripcion: "Control post-operatorio",
		Precio:      decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, a.Precio.IsZero())
}

func TestDesactivarArancel(t *testing.T) {
	repo := newFakeCatalogoRepo()
	svc := NewCatalogoService(repo)

	a, err := svc.CrearArancel(context.Background(), dto.ArancelRequest{
		Codigo:      "CONS01",
		Descripcion: "Consulta",
		Precio:      decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarArancel(context.Background(), uuid.MustParse(a.ID)))
	activos, err := svc.ListarAranceles(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)
}
