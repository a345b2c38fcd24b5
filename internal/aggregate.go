package internal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brpedidos/pedidos/internal/model"
)

const TabHistorico = "historico"

// Filtro é o estado de filtragem do painel. Inicio/Fim nulos significam
// sem restrição de data.
type Filtro struct {
	Busca  string
	Inicio *time.Time
	Fim    *time.Time
	Tab    string
}

type Estatisticas struct {
	Pendentes  int `json:"pendentes"`
	EmPreparo  int `json:"emPreparo"`
	EmEntrega  int `json:"emEntrega"`
	Entregues  int `json:"entregues"`
	Cancelados int `json:"cancelados"`

	PorTab map[string]int `json:"porTab"`

	ValorHoje decimal.Decimal `json:"valorHoje"`
	Total1    decimal.Decimal `json:"total1"`
	Total7    decimal.Decimal `json:"total7"`
	Total15   decimal.Decimal `json:"total15"`
	Total30   decimal.Decimal `json:"total30"`
}

// FiltraBase aplica busca textual e intervalo de datas, sem o recorte de tab.
// As estatísticas são calculadas sobre este conjunto.
func FiltraBase(pedidos []model.Pedido, f Filtro) []model.Pedido {
	busca := strings.ToLower(strings.TrimSpace(f.Busca))
	temData := f.Inicio != nil || f.Fim != nil

	out := make([]model.Pedido, 0, len(pedidos))
	for _, p := range pedidos {
		if busca != "" && !correspondeBusca(p, busca) {
			continue
		}
		if temData {
			if p.DataCriacao.IsZero() {
				// sem data não dá pra saber se cai no intervalo
				continue
			}
			if f.Inicio != nil && p.DataCriacao.Before(inicioDoDia(*f.Inicio)) {
				continue
			}
			if f.Fim != nil && p.DataCriacao.After(fimDoDia(*f.Fim)) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// AplicaTab recorta por status. A tab "historico" junta os status finais;
// as demais casam por igualdade. Tab vazia não recorta.
func AplicaTab(pedidos []model.Pedido, tab string) []model.Pedido {
	if tab == "" {
		return pedidos
	}
	out := make([]model.Pedido, 0, len(pedidos))
	for _, p := range pedidos {
		if tab == TabHistorico {
			if model.StatusFinal(p.Status) {
				out = append(out, p)
			}
			continue
		}
		if p.Status == tab {
			out = append(out, p)
		}
	}
	return out
}

// Filtra é o pipeline completo da listagem: base + tab.
func Filtra(pedidos []model.Pedido, f Filtro) []model.Pedido {
	return AplicaTab(FiltraBase(pedidos, f), f.Tab)
}

// CalculaEstatisticas agrega contagens por status e faturamento por janela
// sobre o conjunto base-filtrado. Função pura de (pedidos, now). Receita conta
// só pedidos entregues (concluido incluso) e lê pagamento.total, com zero
// quando o campo não parseia.
func CalculaEstatisticas(pedidos []model.Pedido, now time.Time) Estatisticas {
	st := Estatisticas{
		PorTab:    map[string]int{model.StatusPendente: 0, model.StatusPreparo: 0, model.StatusEntrega: 0, TabHistorico: 0},
		ValorHoje: decimal.Zero,
		Total1:    decimal.Zero,
		Total7:    decimal.Zero,
		Total15:   decimal.Zero,
		Total30:   decimal.Zero,
	}

	hoje := inicioDoDia(now)
	for _, p := range pedidos {
		switch p.Status {
		case model.StatusPendente:
			st.Pendentes++
			st.PorTab[model.StatusPendente]++
		case model.StatusPreparo:
			st.EmPreparo++
			st.PorTab[model.StatusPreparo]++
		case model.StatusEntrega:
			st.EmEntrega++
			st.PorTab[model.StatusEntrega]++
		case model.StatusEntregue, model.StatusConcluido:
			st.Entregues++
			st.PorTab[TabHistorico]++
		case model.StatusCancelado:
			st.Cancelados++
			st.PorTab[TabHistorico]++
		}

		if p.Status != model.StatusEntregue && p.Status != model.StatusConcluido {
			continue
		}
		if p.DataCriacao.IsZero() {
			continue
		}

		total := p.Pagamento.Total
		dias := int(hoje.Sub(inicioDoDia(p.DataCriacao)).Hours() / 24)
		if dias < 0 {
			continue
		}
		if dias == 0 {
			st.ValorHoje = st.ValorHoje.Add(total)
		}
		if dias < 1 {
			st.Total1 = st.Total1.Add(total)
		}
		if dias < 7 {
			st.Total7 = st.Total7.Add(total)
		}
		if dias < 15 {
			st.Total15 = st.Total15.Add(total)
		}
		if dias < 30 {
			st.Total30 = st.Total30.Add(total)
		}
	}
	return st
}

func correspondeBusca(p model.Pedido, busca string) bool {
	return strings.Contains(strings.ToLower(p.Cliente.Nome), busca) ||
		strings.Contains(strings.ToLower(p.NumeroPedido), busca) ||
		strings.Contains(strings.ToLower(p.Cliente.Telefone), busca)
}

func inicioDoDia(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func fimDoDia(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
