package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

const canalNovoPedido = "pedidos:novo:"

// Notifier é o EventSink dos watchers: snapshots vão direto ao hub, pedidos
// novos viram eventos gated pelas preferências do estabelecimento e são
// replicados num canal redis e num webhook, quando configurados. Falha de
// publicação é logada e seguimos em frente; o painel se recupera pelo
// próximo snapshot.
type Notifier struct {
	hub        *Hub
	repo       IRepository
	rdb        *redis.Client
	webhookURL string
	client     *http.Client
	logger     *zap.SugaredLogger
}

type eventoNovoPedido struct {
	Pedido model.Pedido `json:"pedido"`
	Som    bool         `json:"som"`
	Popup  bool         `json:"popup"`
}

type eventoStatus struct {
	PedidoID string `json:"pedidoId"`
	Status   string `json:"status"`
	Som      bool   `json:"som"`
}

func NewNotifier(hub *Hub, repo IRepository, rdb *redis.Client, webhookURL string, logger *zap.SugaredLogger) *Notifier {
	return &Notifier{
		hub:        hub,
		repo:       repo,
		rdb:        rdb,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (n *Notifier) Snapshot(estabelecimentoID string, pedidos []model.Pedido) {
	n.hub.Snapshot(estabelecimentoID, pedidos)
}

func (n *Notifier) NovosPedidos(estabelecimentoID string, novos []model.Pedido) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prefs := n.preferencias(ctx, estabelecimentoID)

	for _, p := range novos {
		evento := eventoNovoPedido{Pedido: p, Som: prefs.Som, Popup: prefs.Popup}
		n.hub.Broadcast(estabelecimentoID, model.NotificacaoNovoPedido, evento)

		if n.rdb != nil {
			raw, err := json.Marshal(evento)
			if err != nil {
				n.logger.Errorf("notifier marshal: %s", err.Error())
				continue
			}
			if err := n.rdb.Publish(ctx, canalNovoPedido+estabelecimentoID, raw).Err(); err != nil {
				n.logger.Errorf("notifier redis publish: %s", err.Error())
			}
		}

		if n.webhookURL != "" {
			n.postWebhook(ctx, evento)
		}
	}
}

// StatusAtualizado avisa os painéis que uma transição foi persistida,
// com a flag de som para o toque de confirmação.
func (n *Notifier) StatusAtualizado(estabelecimentoID, pedidoID, status string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prefs := n.preferencias(ctx, estabelecimentoID)
	n.hub.Broadcast(estabelecimentoID, model.NotificacaoStatusAtualizado, eventoStatus{
		PedidoID: pedidoID,
		Status:   status,
		Som:      prefs.Som,
	})
}

func (n *Notifier) preferencias(ctx context.Context, estabelecimentoID string) model.Preferencias {
	prefs, err := n.repo.GetPreferencias(ctx, estabelecimentoID)
	if err != nil {
		n.logger.Warnf("preferências de %s indisponíveis: %s", estabelecimentoID, err.Error())
		return model.PreferenciasPadrao()
	}
	return prefs
}

func (n *Notifier) postWebhook(ctx context.Context, evento eventoNovoPedido) {
	raw, err := json.Marshal(evento)
	if err != nil {
		n.logger.Errorf("webhook marshal: %s", err.Error())
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(raw))
	if err != nil {
		n.logger.Errorf("webhook request: %s", err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		n.logger.Errorf("webhook post: %s", err.Error())
		return
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		n.logger.Warnf("webhook respondeu %d", res.StatusCode)
	}
}
