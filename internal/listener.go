package internal

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"
)

const canalPedidos = "pedidos_alterados"

// Listener mantém uma conexão pgx dedicada em LISTEN no canal do trigger de
// pedidos e acorda todas as assinaturas registradas a cada NOTIFY. Queda de
// conexão reconecta com espera fixa; enquanto isso os pollers seguem no
// intervalo normal, então nada para de funcionar, só fica menos imediato.
type Listener struct {
	connString string
	logger     *zap.SugaredLogger

	mu   sync.Mutex
	subs []chan struct{}
}

func NewListener(connString string, logger *zap.SugaredLogger) *Listener {
	return &Listener{connString: connString, logger: logger}
}

func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Errorf("listener: %s", err.Error())
		}

		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err = conn.Exec(ctx, "LISTEN "+canalPedidos); err != nil {
		return err
	}

	for {
		if _, err = conn.WaitForNotification(ctx); err != nil {
			return err
		}
		l.acorda()
	}
}

// Wake registra e devolve um canal acordado a cada NOTIFY. O canal tem
// buffer 1 e o envio nunca bloqueia: notificações coalescem.
func (l *Listener) Wake() <-chan struct{} {
	ch := make(chan struct{}, 1)
	l.mu.Lock()
	l.subs = append(l.subs, ch)
	l.mu.Unlock()
	return ch
}

func (l *Listener) acorda() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
