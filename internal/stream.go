package internal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

// FetchFunc materializa o result set completo de uma query viva.
type FetchFunc func(ctx context.Context) ([]model.RawDoc, error)

// Subscription emite snapshots completos de uma query: um na partida, depois
// a cada tick do intervalo e a cada acordada vinda do LISTEN. Erro de fetch é
// logado e o snapshot anterior continua valendo (melhor mostrar dado velho do
// que lista vazia).
type Subscription struct {
	snapshots chan []model.RawDoc
	cancel    context.CancelFunc
}

func NewSubscription(ctx context.Context, fetch FetchFunc, wake <-chan struct{}, interval time.Duration, logger *zap.SugaredLogger) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		snapshots: make(chan []model.RawDoc, 1),
		cancel:    cancel,
	}

	go func() {
		defer close(s.snapshots)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			docs, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Errorf("subscription fetch: %s", err.Error())
			} else {
				select {
				case s.snapshots <- docs:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()

	return s
}

func (s *Subscription) Snapshots() <-chan []model.RawDoc {
	return s.snapshots
}

// Cancel derruba a goroutine da assinatura. Idempotente.
func (s *Subscription) Cancel() {
	s.cancel()
}
