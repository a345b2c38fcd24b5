package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brpedidos/pedidos/internal/model"
)

// Normalize transforma um documento cru num Pedido completo. Nunca falha:
// campo ausente ou malformado vira o valor padrão, para que o consumidor
// nunca precise checar nil. Dados legados chegam bem esparsos.
func Normalize(doc model.RawDoc, now time.Time) model.Pedido {
	data := doc.Data
	if data == nil {
		data = map[string]interface{}{}
	}

	p := model.Pedido{
		ID:            doc.ID,
		NumeroPedido:  asString(data["numeroPedido"]),
		Status:        asString(data["status"]),
		DataCriacao:   asTime(data["dataCriacao"]),
		AtualizadoEm:  asTime(data["atualizadoEm"]),
		AtualizadoPor: asString(data["atualizadoPor"]),
		Cliente:       normalizeCliente(asMap(data["cliente"])),
		Pagamento:     normalizePagamento(asMap(data["pagamento"])),
		Itens:         normalizeItens(data["itens"]),
		Historico:     normalizeHistorico(asMap(data["historico"])),
	}

	if p.Status == "" {
		p.Status = model.StatusPendente
	}
	if p.NumeroPedido == "" {
		p.NumeroPedido = numeroFromID(doc.ID)
	}

	p.EhHoje = ehHoje(p.DataCriacao, now)
	p.TempoDecorrido = TempoDecorrido(p.DataCriacao, now)
	return p
}

// AtualizaDerivados recalcula os campos derivados de tempo sobre um
// snapshot, que pode ter sido mesclado bem antes da leitura.
func AtualizaDerivados(pedidos []model.Pedido, now time.Time) []model.Pedido {
	out := make([]model.Pedido, len(pedidos))
	for i, p := range pedidos {
		p.EhHoje = ehHoje(p.DataCriacao, now)
		p.TempoDecorrido = TempoDecorrido(p.DataCriacao, now)
		out[i] = p
	}
	return out
}

func numeroFromID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

func ehHoje(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := now.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TempoDecorrido formata o tempo desde a criação em faixas grossas,
// do jeito que o painel exibe: "42s", "5min", "3h", "2d".
func TempoDecorrido(criado, now time.Time) string {
	if criado.IsZero() || now.Before(criado) {
		return ""
	}
	d := now.Sub(criado)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dmin", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func normalizeCliente(m map[string]interface{}) model.Cliente {
	return model.Cliente{
		Nome:        asString(m["nome"]),
		Telefone:    asString(m["telefone"]),
		Rua:         asString(m["rua"]),
		Numero:      asString(m["numero"]),
		Bairro:      asString(m["bairro"]),
		Complemento: asString(m["complemento"]),
		Cidade:      asString(m["cidade"]),
		Estado:      asString(m["estado"]),
		CEP:         asString(m["cep"]),
	}
}

func normalizePagamento(m map[string]interface{}) model.Pagamento {
	pg := model.Pagamento{
		Metodo:      asString(m["metodo"]),
		Subtotal:    asDecimal(m["subtotal"]),
		TaxaEntrega: asDecimal(m["taxaEntrega"]),
		Total:       asDecimal(m["total"]),
		ValorPago:   asDecimal(m["valorPago"]),
	}
	// troco derivado do valor em dinheiro, nunca negativo
	if pg.ValorPago.GreaterThan(pg.Total) {
		pg.Troco = pg.ValorPago.Sub(pg.Total)
	}
	return pg
}

func normalizeItens(v interface{}) []model.ItemPedido {
	list, ok := v.([]interface{})
	if !ok {
		return []model.ItemPedido{}
	}
	itens := make([]model.ItemPedido, 0, len(list))
	for _, raw := range list {
		m := asMap(raw)
		item := model.ItemPedido{
			Nome:           asString(m["nome"]),
			Quantidade:     asInt(m["quantidade"]),
			PrecoBase:      asDecimal(m["precoBase"]),
			PrecoAdicional: asDecimal(m["precoAdicional"]),
			Adicionais:     asString(m["adicionais"]),
		}
		if item.Quantidade == 0 {
			item.Quantidade = 1
		}
		item.PrecoFinal = item.PrecoBase.Add(item.PrecoAdicional)
		item.TotalLinha = item.PrecoFinal.Mul(decimal.NewFromInt(int64(item.Quantidade)))
		itens = append(itens, item)
	}
	return itens
}

func normalizeHistorico(m map[string]interface{}) map[string]model.Transicao {
	if len(m) == 0 {
		return nil
	}
	hist := make(map[string]model.Transicao, len(m))
	for k, raw := range m {
		e := asMap(raw)
		hist[k] = model.Transicao{
			De:   asString(e["de"]),
			Para: asString(e["para"]),
			Por:  asString(e["por"]),
			Em:   asTime(e["em"]),
		}
	}
	return hist
}

func asMap(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return m
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func asDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.Zero
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case float64:
		// epoch em milissegundos, como o cliente web grava
		if t > 1e12 {
			return time.UnixMilli(int64(t))
		}
		if t > 0 {
			return time.Unix(int64(t), 0)
		}
	}
	return time.Time{}
}
