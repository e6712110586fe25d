package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/infras/otel"
	calendarService "homestay/internal/domains/calendar/service"
	"homestay/shared/constant"
)

// Sweeper reclaims expired soft holds on a fixed interval for the lifetime of
// the process. It runs independently of in-flight booking operations; races
// with a concurrent confirm or extend are resolved by the row locks inside the
// availability service.
type Sweeper interface {
	Run(ctx context.Context)
	Sweep(ctx context.Context)
}

type sweeperImpl struct {
	availability calendarService.Availability
	cfg          *config.Config
	otel         otel.Otel
}

func New(availability calendarService.Availability, cfg *config.Config, otel otel.Otel) Sweeper {
	return &sweeperImpl{
		availability: availability,
		cfg:          cfg,
		otel:         otel,
	}
}

// Run blocks until ctx is cancelled.
func (s *sweeperImpl) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.Booking.SweepIntervalSeconds) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("expired hold sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("expired hold sweeper stopped")

			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single pass. Failures are logged and swallowed so one bad
// tick never kills the loop.
func (s *sweeperImpl) Sweep(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweeperScopeName, constant.OtelSweeperScopeName+".Sweep")
	defer scope.End()

	count, err := s.availability.ReleaseExpiredHolds(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("sweep failed to release expired holds")

		return
	}

	if count > 0 {
		log.Info().Int("released", count).Msg("sweep released expired holds")
	}
}
