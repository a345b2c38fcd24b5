package internal

import "errors"

var (
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")

	ErrEstabelecimentoNaoResolvido = errors.New("estabelecimento não resolvido para a sessão")
	ErrPedidoNaoEncontrado         = errors.New("pedido não encontrado")
	ErrSemRegistros                = errors.New("sem registros")

	ErrStatusDesconhecido = errors.New("status desconhecido")
	ErrTransicaoInvalida  = errors.New("transição de status não permitida")
)
