package worker

// reminder_cron.go
// Background goroutine that periodically looks for turnos starting within the
// configured window and enqueues a reminder job for each one. Uses the
// circuit breaker state to avoid filling the queue while SMTP is down.

import (
	"context"
	"time"

	"dentalis/internal/infra"
	"dentalis/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	reminderTickInterval = 5 * time.Minute
	reminderBatchSize    = 50
)

// ReminderCronConfig holds all dependencies for the reminder goroutine.
type ReminderCronConfig struct {
	TurnoRepo   repository.TurnoRepository
	Dispatcher  *Dispatcher
	CB          *infra.CircuitBreaker
	WindowHours int
}

// StartReminderCron launches a background goroutine that ticks every 5 minutes,
// queries upcoming turnos without a reminder, and enqueues reminder jobs.
// It respects the context for graceful shutdown.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	go func() {
		ticker := time.NewTicker(reminderTickInterval)
		defer ticker.Stop()

		log.Info().Int("window_hours", cfg.WindowHours).Msg("reminder_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-ticker.C:
				processReminders(ctx, cfg)
			}
		}
	}()
}

func processReminders(ctx context.Context, cfg ReminderCronConfig) {
	// If CB is open, skip entirely — reminders would only pile up in the DLQ
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("reminder_cron: circuit breaker is open, skipping tick")
		return
	}

	hasta := time.Now().Add(time.Duration(cfg.WindowHours) * time.Hour)
	turnos, err := cfg.TurnoRepo.ListParaRecordatorio(ctx, hasta, reminderBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to query upcoming turnos")
		return
	}
	if len(turnos) == 0 {
		return
	}

	log.Info().Int("count", len(turnos)).Msg("reminder_cron: enqueueing reminders")

	for i := range turnos {
		turno := &turnos[i]

		payload := RecordatorioJobPayload{TurnoID: turno.ID.String()}
		if err := cfg.Dispatcher.EnqueueRecordatorio(ctx, payload); err != nil {
			log.Error().Err(err).Str("turno_id", turno.ID.String()).Msg("reminder_cron: enqueue failed")
			continue
		}
		// Mark before the email is actually sent: a duplicate reminder is
		// worse than a lost one here.
		if err := cfg.TurnoRepo.MarcarRecordatorioEnviado(ctx, turno.ID); err != nil {
			log.Error().Err(err).Str("turno_id", turno.ID.String()).Msg("reminder_cron: failed to mark turno")
		}
	}
}
