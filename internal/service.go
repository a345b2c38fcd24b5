package internal

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

// Sessao é a identidade autenticada extraída do token.
type Sessao struct {
	ID    string
	Email string
}

// PainelNotificacoes é o que o painel consome de uma vez: o anel de
// notificações e o pedido aguardando aceite, se houver.
type PainelNotificacoes struct {
	Notificacoes []model.Notificacao `json:"notificacoes"`
	Aguardando   *model.Pedido       `json:"aguardando,omitempty"`
}

type IService interface {
	Login(context.Context, string, string) (string, error)
	ResolverEstabelecimento(context.Context, Sessao) (string, error)
	Pedidos(context.Context, Sessao, Filtro) ([]model.Pedido, error)
	Estatisticas(context.Context, Sessao, Filtro) (Estatisticas, error)
	MudarStatus(ctx context.Context, s Sessao, pedidoID, novoStatus string) error
	Notificacoes(context.Context, Sessao) (PainelNotificacoes, error)
	Preferencias(context.Context, Sessao) (model.Preferencias, error)
	SalvarPreferencias(context.Context, Sessao, model.Preferencias) error
	GetJWTToken(id, email string) (string, error)
}

type Service struct {
	Repository IRepository
	watchers   *WatcherSet
	notifier   *Notifier
	secret     string
	logger     *zap.SugaredLogger
}

func NewService(repository IRepository, watchers *WatcherSet, notifier *Notifier, secret string, logger *zap.SugaredLogger) *Service {
	return &Service{
		Repository: repository,
		watchers:   watchers,
		notifier:   notifier,
		secret:     secret,
		logger:     logger,
	}
}

func (s Service) Login(ctx context.Context, email, senha string) (string, error) {
	id, err := s.Repository.CheckCredentials(ctx, email, GetHash(senha))
	if err != nil {
		return "", err
	}
	return s.GetJWTToken(id, email)
}

// ResolverEstabelecimento segue a cadeia do painel original: id explícito da
// sessão primeiro, depois lookup por e-mail nos nomes de campo legados, na
// ordem, parando no primeiro que casar.
func (s Service) ResolverEstabelecimento(ctx context.Context, sess Sessao) (string, error) {
	if sess.ID != "" {
		exist, err := s.Repository.EstabelecimentoExiste(ctx, sess.ID)
		if err != nil {
			return "", err
		}
		if exist {
			return sess.ID, nil
		}
	}

	if sess.Email != "" {
		for _, campo := range CamposEmail {
			id, err := s.Repository.LookupEstabelecimento(ctx, campo, sess.Email)
			if errors.Is(err, ErrSemRegistros) {
				continue
			}
			if err != nil {
				return "", err
			}
			return id, nil
		}
	}

	return "", ErrEstabelecimentoNaoResolvido
}

func (s Service) Pedidos(ctx context.Context, sess Sessao, f Filtro) ([]model.Pedido, error) {
	id, err := s.ResolverEstabelecimento(ctx, sess)
	if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
		// degrada para lista vazia, painel sem estabelecimento não tem pedidos
		s.logger.Warnf("sessão sem estabelecimento resolvido (email=%s)", sess.Email)
		return []model.Pedido{}, nil
	}
	if err != nil {
		return nil, err
	}

	atualizados := AtualizaDerivados(s.watchers.Get(id).Current(), time.Now())
	return Filtra(atualizados, f), nil
}

func (s Service) Estatisticas(ctx context.Context, sess Sessao, f Filtro) (Estatisticas, error) {
	id, err := s.ResolverEstabelecimento(ctx, sess)
	if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
		s.logger.Warnf("sessão sem estabelecimento resolvido (email=%s)", sess.Email)
		return CalculaEstatisticas(nil, time.Now()), nil
	}
	if err != nil {
		return Estatisticas{}, err
	}

	base := FiltraBase(s.watchers.Get(id).Current(), f)
	return CalculaEstatisticas(base, time.Now()), nil
}

func (s Service) MudarStatus(ctx context.Context, sess Sessao, pedidoID, novoStatus string) error {
	if !model.StatusConhecido(novoStatus) {
		return ErrStatusDesconhecido
	}

	id, err := s.ResolverEstabelecimento(ctx, sess)
	if err != nil {
		return err
	}

	doc, err := s.Repository.PedidoPorID(ctx, pedidoID)
	if err != nil {
		return err
	}
	if dono(doc) != id {
		// pedido de outro estabelecimento: mesmo erro de não encontrado
		return ErrPedidoNaoEncontrado
	}

	atual := Normalize(doc, time.Now())
	if !model.TransicaoValida(atual.Status, novoStatus) {
		return ErrTransicaoInvalida
	}

	ator := sess.Email
	if ator == "" {
		ator = "painel"
	}

	if err = s.Repository.UpdateStatus(ctx, pedidoID, atual.Status, novoStatus, ator, uuid.NewString()); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.StatusAtualizado(id, pedidoID, novoStatus)
	}
	s.watchers.Get(id).LimparAguardando(pedidoID)
	return nil
}

func (s Service) Notificacoes(ctx context.Context, sess Sessao) (PainelNotificacoes, error) {
	id, err := s.ResolverEstabelecimento(ctx, sess)
	if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
		return PainelNotificacoes{Notificacoes: []model.Notificacao{}}, nil
	}
	if err != nil {
		return PainelNotificacoes{}, err
	}

	w := s.watchers.Get(id)
	return PainelNotificacoes{
		Notificacoes: w.Notificacoes(),
		Aguardando:   w.Aguardando(),
	}, nil
}

func (s Service) Preferencias(ctx context.Context, sess Sessao) (model.Preferencias, error) {
	id, err := s.ResolverEstabelecimento(ctx, sess)
	if err != nil {
		return model.Preferencias{}, err
	}
	return s.Repository.GetPreferencias(ctx, id)
}

func (s Service) SalvarPreferencias(ctx context.Context, sess Sessao, prefs model.Preferencias) error {
	id, err := s.ResolverEstabelecimento(ctx, sess)
	if err != nil {
		return err
	}
	return s.Repository.SavePreferencias(ctx, id, prefs)
}

func (s Service) GetJWTToken(id, email string) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"exp":   time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", err
	}
	return t, nil
}

// dono extrai a associação de estabelecimento do doc, nos dois campos legados.
func dono(doc model.RawDoc) string {
	if doc.Data == nil {
		return ""
	}
	if id := asString(doc.Data[CampoRestaurante]); id != "" {
		return id
	}
	return asString(doc.Data[CampoEstabelecimento])
}

func GetHash(s string) string {
	h := sha256.New()
	ph := h.Sum([]byte(s))
	return base64.StdEncoding.EncodeToString(ph)
}
