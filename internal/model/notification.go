package model

import "time"

const (
	NotificacaoNovoPedido       = "novo_pedido"
	NotificacaoStatusAtualizado = "status_atualizado"
)

// MaxNotificacoes limita o anel de notificações por estabelecimento.
const MaxNotificacoes = 10

type Notificacao struct {
	ID       string    `json:"id"`
	Tipo     string    `json:"tipo"`
	Titulo   string    `json:"titulo"`
	Mensagem string    `json:"mensagem"`
	Data     time.Time `json:"data"`
	Lida     bool      `json:"lida"`
}

// Preferencias controlam os efeitos colaterais de notificação do painel.
type Preferencias struct {
	Som   bool `json:"som"`
	Popup bool `json:"popup"`
}

// PreferenciasPadrao: ambos os alertas ligados até o lojista dizer o contrário.
func PreferenciasPadrao() Preferencias {
	return Preferencias{Som: true, Popup: true}
}

type Estabelecimento struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type LoginInput struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}
