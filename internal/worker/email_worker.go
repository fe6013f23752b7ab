package worker

// email_worker.go
// Processes notification email jobs from QueueEmail: stock-received notes
// for reps and expiry summaries for managers. Sends via SMTP behind a
// circuit breaker so a down relay does not get hammered.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abdobody2040/PharmStockHub/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
	Attempts       int    `json:"attempts,omitempty"`
}

const maxEmailAttempts = 3

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends one email. Failed jobs are re-enqueued up to maxEmailAttempts,
// then moved to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	sendErr := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.AttachmentPath)
	})
	if sendErr == nil {
		log.Info().Str("to", payload.ToEmail).Msg("email_worker: notification sent")
		return
	}

	payload.Attempts++
	if errors.Is(sendErr, infra.ErrCircuitOpen) {
		log.Warn().Str("to", payload.ToEmail).Msg("email_worker: circuit open, re-enqueueing")
	} else {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Int("attempts", payload.Attempts).Msg("email_worker: send failed")
	}

	if payload.Attempts >= maxEmailAttempts {
		data, _ := json.Marshal(payload)
		SendToDLQ(ctx, rdb, QueueEmail, jobTypeEmail, data,
			"max attempts exceeded: "+sendErr.Error(), payload.Attempts)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	job, err := json.Marshal(Job{Type: jobTypeEmail, Payload: data})
	if err != nil {
		return
	}
	if err := rdb.LPush(ctx, QueueEmail, job).Err(); err != nil {
		log.Error().Err(err).Msg("email_worker: re-enqueue failed")
	}
}
