package worker

// expiry_cron.go
// Background goroutine that periodically scans for stock items whose expiry
// date falls inside the alert window, renders the PDF summary, and enqueues
// an email job for the configured alert address.

import (
	"context"
	"fmt"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/infra"
	"github.com/abdobody2040/PharmStockHub/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const expiryTickInterval = 24 * time.Hour

// ExpiryCronConfig holds all dependencies for the expiry scan goroutine.
type ExpiryCronConfig struct {
	Items       repository.StockItemRepository
	Dispatcher  *Dispatcher
	RDB         *redis.Client
	AlertDays   int
	AlertEmail  string
	StoragePath string
}

// StartExpiryCron launches a background goroutine that scans once at startup
// and then every 24h. It respects the context for graceful shutdown.
func StartExpiryCron(ctx context.Context, cfg ExpiryCronConfig) {
	if cfg.AlertEmail == "" {
		log.Info().Msg("expiry_cron: no alert email configured, not starting")
		return
	}
	go func() {
		ticker := time.NewTicker(expiryTickInterval)
		defer ticker.Stop()

		log.Info().Int("alert_days", cfg.AlertDays).Msg("expiry_cron: started")
		scanExpiring(ctx, cfg)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("expiry_cron: shutting down")
				return
			case <-ticker.C:
				scanExpiring(ctx, cfg)
			}
		}
	}()
}

func scanExpiring(ctx context.Context, cfg ExpiryCronConfig) {
	// Dedupe across replicas: first instance to claim today's key runs the scan
	key := "expiry_cron:" + time.Now().Format("2006-01-02")
	claimed, err := cfg.RDB.SetNX(ctx, key, 1, 48*time.Hour).Result()
	if err != nil {
		log.Error().Err(err).Msg("expiry_cron: failed to claim scan lock")
		return
	}
	if !claimed {
		log.Debug().Msg("expiry_cron: scan already ran today, skipping")
		return
	}

	now := time.Now()
	items, err := cfg.Items.ListExpiring(ctx, now, now.AddDate(0, 0, cfg.AlertDays))
	if err != nil {
		log.Error().Err(err).Msg("expiry_cron: failed to query expiring items")
		return
	}
	if len(items) == 0 {
		log.Debug().Msg("expiry_cron: nothing expiring in window")
		return
	}

	pdfPath, err := infra.GenerateExpiryReportPDF(items, cfg.AlertDays, cfg.StoragePath)
	if err != nil {
		log.Error().Err(err).Msg("expiry_cron: failed to render report")
		return
	}

	payload := EmailJobPayload{
		ToEmail:        cfg.AlertEmail,
		Subject:        fmt.Sprintf("%d stock item(s) expiring within %d days", len(items), cfg.AlertDays),
		Body:           "The attached report lists stock items approaching their expiry date.",
		AttachmentPath: pdfPath,
	}
	if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("expiry_cron: failed to enqueue alert email")
		return
	}
	log.Info().Int("count", len(items)).Str("to", cfg.AlertEmail).Msg("expiry_cron: alert enqueued")
}
