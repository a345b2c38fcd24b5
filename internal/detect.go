package internal

import "github.com/brpedidos/pedidos/internal/model"

// DetectNew devolve os pedidos pendentes de curr cujo id não existia em prev,
// na ordem em que aparecem em curr. Estado anterior entra como argumento; quem
// chama decide quando a primeira carga já aconteceu (ver Watcher.seeded).
func DetectNew(prev, curr []model.Pedido) []model.Pedido {
	conhecidos := make(map[string]struct{}, len(prev))
	for _, p := range prev {
		conhecidos[p.ID] = struct{}{}
	}

	var novos []model.Pedido
	for _, p := range curr {
		if p.Status != model.StatusPendente {
			continue
		}
		if _, ok := conhecidos[p.ID]; ok {
			continue
		}
		novos = append(novos, p)
	}
	return novos
}
