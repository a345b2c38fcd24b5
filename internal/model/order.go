package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPendente  = "pendente"
	StatusPreparo   = "preparo"
	StatusEntrega   = "entrega"
	StatusEntregue  = "entregue"
	StatusCancelado = "cancelado"
	StatusConcluido = "concluido" // legado, contado como entregue nas agregações
)

// Fluxo estritamente para frente. Pendente pode ser cancelado
// antes do preparo; os demais só avançam.
var transicoes = map[string][]string{
	StatusPendente: {StatusPreparo, StatusCancelado},
	StatusPreparo:  {StatusEntrega},
	StatusEntrega:  {StatusEntregue},
}

func StatusConhecido(s string) bool {
	switch s {
	case StatusPendente, StatusPreparo, StatusEntrega, StatusEntregue, StatusCancelado, StatusConcluido:
		return true
	}
	return false
}

func TransicaoValida(de, para string) bool {
	allowed, ok := transicoes[de]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == para {
			return true
		}
	}
	return false
}

// StatusFinal indica que o pedido saiu do fluxo ativo.
func StatusFinal(s string) bool {
	return s == StatusEntregue || s == StatusCancelado || s == StatusConcluido
}

type Cliente struct {
	Nome        string `json:"nome"`
	Telefone    string `json:"telefone"`
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Bairro      string `json:"bairro"`
	Complemento string `json:"complemento"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`
}

type Pagamento struct {
	Metodo      string          `json:"metodo"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxaEntrega decimal.Decimal `json:"taxaEntrega"`
	Total       decimal.Decimal `json:"total"`
	ValorPago   decimal.Decimal `json:"valorPago"`
	Troco       decimal.Decimal `json:"troco"`
}

type ItemPedido struct {
	Nome           string          `json:"nome"`
	Quantidade     int             `json:"quantidade"`
	PrecoBase      decimal.Decimal `json:"precoBase"`
	PrecoAdicional decimal.Decimal `json:"precoAdicional"`
	PrecoFinal     decimal.Decimal `json:"precoFinal"`
	TotalLinha     decimal.Decimal `json:"totalLinha"`
	Adicionais     string          `json:"adicionais,omitempty"`
}

type Transicao struct {
	De   string    `json:"de"`
	Para string    `json:"para"`
	Por  string    `json:"por"`
	Em   time.Time `json:"em"`
}

type Pedido struct {
	ID             string               `json:"id"`
	NumeroPedido   string               `json:"numeroPedido"`
	Status         string               `json:"status"`
	DataCriacao    time.Time            `json:"dataCriacao"`
	AtualizadoEm   time.Time            `json:"atualizadoEm,omitempty"`
	AtualizadoPor  string               `json:"atualizadoPor,omitempty"`
	Cliente        Cliente              `json:"cliente"`
	Pagamento      Pagamento            `json:"pagamento"`
	Itens          []ItemPedido         `json:"itens"`
	Historico      map[string]Transicao `json:"historico,omitempty"`
	EhHoje         bool                 `json:"ehHoje"`
	TempoDecorrido string               `json:"tempoDecorrido"`
}

// RawDoc é um documento como vem do armazenamento: esparso e sem tipo garantido.
type RawDoc struct {
	ID   string
	Data map[string]interface{}
}
