package internal

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

type HubClient struct {
	ID                string
	EstabelecimentoID string
	Send              chan []byte
}

// Hub distribui snapshots e eventos do merge para os painéis conectados de
// cada estabelecimento. Envio nunca bloqueia: cliente lento perde mensagem,
// o próximo snapshot corrige.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*HubClient
	logger  *zap.SugaredLogger
}

type hubMessage struct {
	Tipo    string      `json:"tipo"`
	Payload interface{} `json:"payload"`
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{clients: make(map[string]*HubClient), logger: logger}
}

func (h *Hub) Register(client *HubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *Hub) Unregister(client *HubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) Broadcast(estabelecimentoID, tipo string, payload interface{}) {
	raw, err := json.Marshal(hubMessage{Tipo: tipo, Payload: payload})
	if err != nil {
		h.logger.Errorf("hub marshal: %s", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.EstabelecimentoID != estabelecimentoID {
			continue
		}
		select {
		case client.Send <- raw:
		default:
			h.logger.Warnf("mensagem descartada para cliente %s", client.ID)
		}
	}
}

// Snapshot envia a lista mesclada inteira aos painéis do estabelecimento.
func (h *Hub) Snapshot(estabelecimentoID string, pedidos []model.Pedido) {
	h.Broadcast(estabelecimentoID, "snapshot", pedidos)
}
