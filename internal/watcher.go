package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

// EventSink recebe os efeitos colaterais de um ciclo de merge.
type EventSink interface {
	Snapshot(estabelecimentoID string, pedidos []model.Pedido)
	NovosPedidos(estabelecimentoID string, novos []model.Pedido)
}

// Watcher é o lado vivo do painel de um estabelecimento: mantém as duas
// assinaturas (restauranteId e estabelecimentoId), o snapshot mesclado
// corrente, o anel de notificações e o slot de pedido aguardando aceite.
// As duas assinaturas nascem e morrem juntas.
type Watcher struct {
	estabelecimentoID string
	subA              *Subscription
	subB              *Subscription
	sink              EventSink
	logger            *zap.SugaredLogger

	mu           sync.RWMutex
	current      []model.Pedido
	notificacoes []model.Notificacao
	aguardando   *model.Pedido

	// seeded impede que a primeira carga conte como "tudo é novo"
	seeded bool
	done   chan struct{}
}

func NewWatcher(ctx context.Context, estabelecimentoID string, fetchA, fetchB FetchFunc, wakeA, wakeB <-chan struct{}, interval time.Duration, sink EventSink, logger *zap.SugaredLogger) *Watcher {
	w := &Watcher{
		estabelecimentoID: estabelecimentoID,
		sink:              sink,
		logger:            logger,
		done:              make(chan struct{}),
	}
	w.subA = NewSubscription(ctx, fetchA, wakeA, interval, logger)
	w.subB = NewSubscription(ctx, fetchB, wakeB, interval, logger)

	go w.run()
	return w
}

func (w *Watcher) run() {
	defer close(w.done)

	var lastA, lastB []model.RawDoc
	snapA, snapB := w.subA.Snapshots(), w.subB.Snapshots()

	for snapA != nil || snapB != nil {
		select {
		case docs, ok := <-snapA:
			if !ok {
				snapA = nil
				continue
			}
			lastA = docs
		case docs, ok := <-snapB:
			if !ok {
				snapB = nil
				continue
			}
			lastB = docs
		}
		w.merge(lastA, lastB)
	}
}

func (w *Watcher) merge(lastA, lastB []model.RawDoc) {
	now := time.Now()
	merged := MergeSnapshots(lastA, lastB, now)

	w.mu.Lock()
	var novos []model.Pedido
	if w.seeded {
		novos = DetectNew(w.current, merged)
	}
	w.seeded = true
	w.current = merged

	for _, p := range novos {
		w.notificacoes = append([]model.Notificacao{{
			ID:       uuid.NewString(),
			Tipo:     model.NotificacaoNovoPedido,
			Titulo:   "Novo pedido #" + p.NumeroPedido,
			Mensagem: fmt.Sprintf("%s — R$ %s", p.Cliente.Nome, p.Pagamento.Total.StringFixed(2)),
			Data:     now,
		}}, w.notificacoes...)
		aguardando := p
		w.aguardando = &aguardando
	}
	if len(w.notificacoes) > model.MaxNotificacoes {
		w.notificacoes = w.notificacoes[:model.MaxNotificacoes]
	}
	w.mu.Unlock()

	w.sink.Snapshot(w.estabelecimentoID, merged)
	if len(novos) > 0 {
		w.logger.Infow("novos pedidos detectados",
			"estabelecimento", w.estabelecimentoID, "quantidade", len(novos))
		w.sink.NovosPedidos(w.estabelecimentoID, novos)
	}
}

// Current devolve o snapshot mesclado corrente.
func (w *Watcher) Current() []model.Pedido {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.Pedido, len(w.current))
	copy(out, w.current)
	return out
}

func (w *Watcher) Notificacoes() []model.Notificacao {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.Notificacao, len(w.notificacoes))
	copy(out, w.notificacoes)
	return out
}

// Aguardando devolve o pedido no slot de aceite, se houver.
func (w *Watcher) Aguardando() *model.Pedido {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.aguardando == nil {
		return nil
	}
	p := *w.aguardando
	return &p
}

// LimparAguardando esvazia o slot quando o pedido em questão foi tratado.
func (w *Watcher) LimparAguardando(pedidoID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.aguardando != nil && w.aguardando.ID == pedidoID {
		w.aguardando = nil
	}
}

// Close derruba as duas assinaturas juntas e espera o loop terminar.
func (w *Watcher) Close() {
	w.subA.Cancel()
	w.subB.Cancel()
	<-w.done
}

// WatcherSet guarda um Watcher por estabelecimento.
type WatcherSet struct {
	mu       sync.Mutex
	watchers map[string]*Watcher
	factory  func(estabelecimentoID string) *Watcher
}

func NewWatcherSet(factory func(estabelecimentoID string) *Watcher) *WatcherSet {
	return &WatcherSet{
		watchers: make(map[string]*Watcher),
		factory:  factory,
	}
}

func (ws *WatcherSet) Get(estabelecimentoID string) *Watcher {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.watchers[estabelecimentoID]
	if !ok {
		w = ws.factory(estabelecimentoID)
		ws.watchers[estabelecimentoID] = w
	}
	return w
}

func (ws *WatcherSet) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for id, w := range ws.watchers {
		w.Close()
		delete(ws.watchers, id)
	}
}
