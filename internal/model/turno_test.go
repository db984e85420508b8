package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnoTransiciones(t *testing.T) {
	// Terminal states never transition out.
	for _, estado := range []string{TurnoAtendido, TurnoCancelado, TurnoAusente} {
		assert.Empty(t, TurnoTransiciones[estado], "estado %s", estado)
	}
	assert.True(t, TurnoTransiciones[TurnoProgramado][TurnoConfirmado])
	assert.True(t, TurnoTransiciones[TurnoConfirmado][TurnoAtendido])
	assert.False(t, TurnoTransiciones[TurnoConfirmado][TurnoProgramado])
}
