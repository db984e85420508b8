package worker

// recordatorio_worker.go
// Processes appointment reminder jobs from QueueRecordatorio.
// Sends a plain-text reminder email to the patient via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"dentalis/internal/infra"
	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RecordatorioJobPayload is the job envelope sent to QueueRecordatorio.
type RecordatorioJobPayload struct {
	TurnoID string `json:"turno_id"`
}

// RecordatorioWorker sends appointment reminders to patients.
type RecordatorioWorker struct {
	turnoRepo repository.TurnoRepository
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	rdb       *redis.Client
}

func NewRecordatorioWorker(turnoRepo repository.TurnoRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *RecordatorioWorker {
	return &RecordatorioWorker{turnoRepo: turnoRepo, mailer: mailer, cb: cb, rdb: rdb}
}

// Process sends the reminder email for one turno.
func (w *RecordatorioWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload RecordatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recordatorio_worker: invalid payload")
		return
	}

	turnoID, err := uuid.Parse(payload.TurnoID)
	if err != nil {
		log.Error().Str("turno_id", payload.TurnoID).Msg("recordatorio_worker: invalid turno_id")
		return
	}

	turno, err := w.turnoRepo.FindByID(ctx, turnoID)
	if err != nil {
		log.Error().Err(err).Str("turno_id", payload.TurnoID).Msg("recordatorio_worker: turno not found")
		return
	}
	if turno.Paciente == nil || turno.Paciente.Email == nil || *turno.Paciente.Email == "" {
		log.Warn().Str("turno_id", payload.TurnoID).Msg("recordatorio_worker: paciente has no email — skipping")
		return
	}

	subject := "Recordatorio de turno"
	body := fmt.Sprintf(
		"Hola %s,\n\nLe recordamos su turno del %s.\nPor favor llegue 10 minutos antes.\n\nDentalis",
		turno.Paciente.Nombre,
		turno.Fecha.Format("02/01/2006 15:04"),
	)

	sendErr := withRetry(ctx, maxSendAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.Send(*turno.Paciente.Email, subject, body, "")
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("turno_id", payload.TurnoID).Msg("recordatorio_worker: email failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueRecordatorio, "recordatorio", raw, sendErr.Error(), maxSendAttempts)
		return
	}
	log.Info().Str("to", *turno.Paciente.Email).Str("turno_id", payload.TurnoID).Msg("recordatorio_worker: reminder sent")
}
