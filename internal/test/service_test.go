package test

import (
	"context"
	"errors"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/brpedidos/pedidos/internal"
	mock_internal "github.com/brpedidos/pedidos/internal/mock"
	"github.com/brpedidos/pedidos/internal/model"
)

type sinkNulo struct{}

func (sinkNulo) Snapshot(string, []model.Pedido)     {}
func (sinkNulo) NovosPedidos(string, []model.Pedido) {}

func watchersDeTeste() *internal.WatcherSet {
	return internal.NewWatcherSet(func(id string) *internal.Watcher {
		fetch := func(context.Context) ([]model.RawDoc, error) { return nil, nil }
		return internal.NewWatcher(context.Background(), id, fetch, fetch,
			make(chan struct{}), make(chan struct{}), time.Hour, sinkNulo{}, zap.NewNop().Sugar())
	})
}

var _ = Describe("Service", func() {
	var (
		srv      internal.IService
		rep      *mock_internal.MockIRepository
		watchers *internal.WatcherSet
	)
	BeforeEach(func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		logger, err := zap.NewDevelopment()
		Expect(err).ShouldNot(HaveOccurred())

		rep = mock_internal.NewMockIRepository(ctrl)
		watchers = watchersDeTeste()

		srv = internal.NewService(rep, watchers, nil, "secret", logger.Sugar())
	})
	AfterEach(func() {
		watchers.Close()
	})
	Context("Service tests", func() {
		It("Login without error", func() {
			ctx := context.Background()
			e, s := "loja@exemplo.com", "senha"
			h := internal.GetHash(s)

			rep.EXPECT().CheckCredentials(ctx, e, h).Return("est-1", nil)

			token, err := srv.Login(ctx, e, s)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(token).ShouldNot(BeEmpty())
		})
		It("Login with invalid credentials", func() {
			ctx := context.Background()
			e, s := "loja@exemplo.com", "senha"
			h := internal.GetHash(s)

			rep.EXPECT().CheckCredentials(ctx, e, h).Return("", internal.ErrCredenciaisInvalidas)

			_, err := srv.Login(ctx, e, s)
			Expect(err).Should(Equal(internal.ErrCredenciaisInvalidas))
		})
		It("ResolverEstabelecimento by session id", func() {
			ctx := context.Background()

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)

			id, err := srv.ResolverEstabelecimento(ctx, internal.Sessao{ID: "est-1"})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(id).Should(Equal("est-1"))
		})
		It("ResolverEstabelecimento falls back through email fields", func() {
			ctx := context.Background()
			sess := internal.Sessao{ID: "desconhecido", Email: "loja@exemplo.com"}

			rep.EXPECT().EstabelecimentoExiste(ctx, "desconhecido").Return(false, nil)
			gomock.InOrder(
				rep.EXPECT().LookupEstabelecimento(ctx, "email", sess.Email).Return("", internal.ErrSemRegistros),
				rep.EXPECT().LookupEstabelecimento(ctx, "emailUsuario", sess.Email).Return("est-2", nil),
			)

			id, err := srv.ResolverEstabelecimento(ctx, sess)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(id).Should(Equal("est-2"))
		})
		It("ResolverEstabelecimento exhausts every field", func() {
			ctx := context.Background()
			sess := internal.Sessao{Email: "ninguem@exemplo.com"}

			for _, campo := range internal.CamposEmail {
				rep.EXPECT().LookupEstabelecimento(ctx, campo, sess.Email).Return("", internal.ErrSemRegistros)
			}

			_, err := srv.ResolverEstabelecimento(ctx, sess)
			Expect(err).Should(Equal(internal.ErrEstabelecimentoNaoResolvido))
		})
		It("Pedidos degrades to empty list when unresolved", func() {
			ctx := context.Background()

			pedidos, err := srv.Pedidos(ctx, internal.Sessao{}, internal.Filtro{})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(pedidos).Should(BeEmpty())
		})
		It("MudarStatus applies a valid transition with audit", func() {
			ctx := context.Background()
			sess := internal.Sessao{ID: "est-1", Email: "loja@exemplo.com"}
			doc := model.RawDoc{ID: "p1", Data: map[string]interface{}{
				"restauranteId": "est-1",
				"status":        "pendente",
			}}

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)
			rep.EXPECT().PedidoPorID(ctx, "p1").Return(doc, nil)
			rep.EXPECT().UpdateStatus(ctx, "p1", "pendente", "preparo", sess.Email, gomock.Any()).Return(nil)

			err := srv.MudarStatus(ctx, sess, "p1", "preparo")
			Expect(err).ShouldNot(HaveOccurred())
		})
		It("MudarStatus rejects an illegal transition", func() {
			ctx := context.Background()
			sess := internal.Sessao{ID: "est-1"}
			doc := model.RawDoc{ID: "p1", Data: map[string]interface{}{
				"restauranteId": "est-1",
				"status":        "entregue",
			}}

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)
			rep.EXPECT().PedidoPorID(ctx, "p1").Return(doc, nil)

			err := srv.MudarStatus(ctx, sess, "p1", "preparo")
			Expect(err).Should(Equal(internal.ErrTransicaoInvalida))
		})
		It("MudarStatus rejects an unknown status", func() {
			ctx := context.Background()

			err := srv.MudarStatus(ctx, internal.Sessao{ID: "est-1"}, "p1", "voando")
			Expect(err).Should(Equal(internal.ErrStatusDesconhecido))
		})
		It("MudarStatus hides orders of other establishments", func() {
			ctx := context.Background()
			sess := internal.Sessao{ID: "est-1"}
			doc := model.RawDoc{ID: "p1", Data: map[string]interface{}{
				"estabelecimentoId": "est-9",
				"status":            "pendente",
			}}

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)
			rep.EXPECT().PedidoPorID(ctx, "p1").Return(doc, nil)

			err := srv.MudarStatus(ctx, sess, "p1", "preparo")
			Expect(err).Should(Equal(internal.ErrPedidoNaoEncontrado))
		})
		It("MudarStatus surfaces persistence failures", func() {
			ctx := context.Background()
			sess := internal.Sessao{ID: "est-1"}
			doc := model.RawDoc{ID: "p1", Data: map[string]interface{}{
				"restauranteId": "est-1",
				"status":        "preparo",
			}}

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)
			rep.EXPECT().PedidoPorID(ctx, "p1").Return(doc, nil)
			rep.EXPECT().UpdateStatus(ctx, "p1", "preparo", "entrega", "painel", gomock.Any()).
				Return(errors.New("some error"))

			err := srv.MudarStatus(ctx, sess, "p1", "entrega")
			Expect(err).Should(HaveOccurred())
		})
		It("SalvarPreferencias persists through the repository", func() {
			ctx := context.Background()
			prefs := model.Preferencias{Som: false, Popup: true}

			rep.EXPECT().EstabelecimentoExiste(ctx, "est-1").Return(true, nil)
			rep.EXPECT().SavePreferencias(ctx, "est-1", prefs).Return(nil)

			err := srv.SalvarPreferencias(ctx, internal.Sessao{ID: "est-1"}, prefs)
			Expect(err).ShouldNot(HaveOccurred())
		})
	})
})
