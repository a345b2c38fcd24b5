package internal

import (
	"sort"
	"time"

	"github.com/brpedidos/pedidos/internal/model"
)

// MergeSnapshots reconcilia os dois result sets vivos (restauranteId e
// estabelecimentoId) numa coleção única. Id presente nos dois resolve para a
// cópia de b: o snapshot de estabelecimentoId é aplicado por último, mesmo
// desempate do painel original. A saída sai normalizada e ordenada por
// dataCriacao decrescente; datas inválidas viram zero e afundam para o fim.
func MergeSnapshots(a, b []model.RawDoc, now time.Time) []model.Pedido {
	byID := make(map[string]model.RawDoc, len(a)+len(b))
	for _, doc := range a {
		byID[doc.ID] = doc
	}
	for _, doc := range b {
		byID[doc.ID] = doc
	}

	pedidos := make([]model.Pedido, 0, len(byID))
	for _, doc := range byID {
		pedidos = append(pedidos, Normalize(doc, now))
	}

	sort.Slice(pedidos, func(i, j int) bool {
		if !pedidos[i].DataCriacao.Equal(pedidos[j].DataCriacao) {
			return pedidos[i].DataCriacao.After(pedidos[j].DataCriacao)
		}
		// desempate por id para manter o merge determinístico
		return pedidos[i].ID < pedidos[j].ID
	})
	return pedidos
}
