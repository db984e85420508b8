package worker

// cierre_worker.go
// Processes register-closing jobs from QueueCierre.
// Renders the closing report PDF and emails it to the clinic administrator.
// SMTP delivery goes through the circuit breaker with exponential backoff
// (max 3 attempts); jobs that exhaust the retries land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dentalis/internal/infra"

	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxSendAttempts = 3

// CierreJobPayload is the job envelope sent to QueueCierre.
type CierreJobPayload struct {
	SesionCajaID string `json:"sesion_caja_id"`
	ToEmail      string `json:"to_email"`
}

// CierreWorker fetches the closed session with its ledger and collections,
// renders the PDF report, and mails it.
type CierreWorker struct {
	cajaRepo       repository.CajaRepository
	cobroRepo      repository.CobroRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	pdfStoragePath string
}

func NewCierreWorker(
	cajaRepo repository.CajaRepository,
	cobroRepo repository.CobroRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	pdfStoragePath string,
) *CierreWorker {
	return &CierreWorker{
		cajaRepo:       cajaRepo,
		cobroRepo:      cobroRepo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single closing-report job:
//  1. Parse CierreJobPayload from the job envelope
//  2. Fetch the SesionCaja with movimientos and cobros
//  3. Render the closing PDF
//  4. Email it to the administrator through the circuit breaker
func (w *CierreWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_worker: invalid payload")
		return
	}

	sesionID, err := uuid.Parse(payload.SesionCajaID)
	if err != nil {
		log.Error().Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: invalid sesion_caja_id")
		return
	}

	sesion, err := w.cajaRepo.FindSesionByID(ctx, sesionID)
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: sesion not found")
		return
	}

	movimientos, err := w.cajaRepo.ListMovimientos(ctx, sesionID, "")
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: failed to list movimientos")
		return
	}
	cobros, err := w.cobroRepo.ListBySesion(ctx, sesionID)
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: failed to list cobros")
		return
	}

	pdfPath, err := infra.GenerateCierreCajaPDF(sesion, movimientos, cobros, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: PDF generated")

	if payload.ToEmail == "" {
		log.Warn().Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: no admin email configured, report kept on disk")
		return
	}

	subject := fmt.Sprintf("Cierre de caja — %s", sesion.AbiertaAt.Format("02/01/2006"))
	body := fmt.Sprintf("Adjunto el reporte de cierre de la sesión de caja %s.", sesion.ID)

	sendErr := withRetry(ctx, maxSendAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.Send(payload.ToEmail, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: email failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueCierre, "cierre", raw, sendErr.Error(), maxSendAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("sesion_id", payload.SesionCajaID).Msg("cierre_worker: closing report sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
