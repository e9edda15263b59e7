package catalog

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dailyfarm/market-api/pkg/logger"
)

// Sweeper corre SweepExpired en un intervalo fijo desde el arranque del proceso.
// singleflight garantiza que nunca haya dos barridos en vuelo a la vez, aunque
// una corrida se alargue más que el intervalo.
type Sweeper struct {
	uc       *CatalogUseCase
	interval time.Duration
	log      *logger.Logger
	group    singleflight.Group
}

// NewSweeper construye el barrido periódico.
func NewSweeper(uc *CatalogUseCase, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{uc: uc, interval: interval, log: log}
}

// Start bloquea hasta que ctx se cancele; correr en su propia goroutine.
// Hace una pasada inmediata al arrancar y luego una por tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweeper detenido")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	_, err, _ := s.group.Do("sweep", func() (interface{}, error) {
		n, err := s.uc.SweepExpired(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			s.log.Info().Int("swept", n).Msg("surprise bags vencidas retiradas")
		} else {
			s.log.Debug().Msg("sin surprise bags vencidas")
		}
		return n, nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de surprise bags")
	}
}
