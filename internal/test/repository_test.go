package test

import (
	"context"

	"go.uber.org/zap"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/brpedidos/pedidos/internal"
	"github.com/brpedidos/pedidos/internal/model"
)

var _ = Describe("Repository", func() {
	var (
		repo internal.Repository
		mock sqlmock.Sqlmock
	)
	BeforeEach(func() {
		db, m, err := sqlmock.New()
		Expect(err).ShouldNot(HaveOccurred())

		mock = m
		logger, err := zap.NewDevelopment()
		Expect(err).ShouldNot(HaveOccurred())

		repo = internal.Repository{
			Conn:   db,
			Logger: logger.Sugar(),
		}
	})
	AfterEach(func() {
		err := mock.ExpectationsWereMet()
		Expect(err).ShouldNot(HaveOccurred())
	})
	Context("Repository tests", func() {
		It("PedidosPorCampo parses docs", func() {
			expectedRows := sqlmock.NewRows([]string{"id", "doc"}).
				AddRow("p1", []byte(`{"status":"pendente","restauranteId":"est-1"}`)).
				AddRow("p2", []byte(`{"status":"preparo","restauranteId":"est-1"}`))

			mock.ExpectQuery("SELECT id, doc FROM pedidos WHERE doc->>'restauranteId' = \\$1").
				WithArgs("est-1").WillReturnRows(expectedRows).RowsWillBeClosed()

			docs, err := repo.PedidosPorCampo(context.Background(), internal.CampoRestaurante, "est-1")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(docs).Should(HaveLen(2))
			Expect(docs[0].Data["status"]).Should(Equal("pendente"))
		})
		It("PedidosPorCampo rejects unexpected field names", func() {
			_, err := repo.PedidosPorCampo(context.Background(), "campo'; DROP TABLE pedidos; --", "est-1")
			Expect(err).Should(Equal(internal.ErrSemRegistros))
		})
		It("PedidoPorID without rows", func() {
			mock.ExpectQuery("SELECT id, doc FROM pedidos WHERE id = \\$1").
				WithArgs("nada").WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}))

			_, err := repo.PedidoPorID(context.Background(), "nada")
			Expect(err).Should(Equal(internal.ErrPedidoNaoEncontrado))
		})
		It("PedidoPorID tolerates a corrupt doc", func() {
			rows := sqlmock.NewRows([]string{"id", "doc"}).AddRow("p1", []byte(`{{{`))

			mock.ExpectQuery("SELECT id, doc FROM pedidos WHERE id = \\$1").
				WithArgs("p1").WillReturnRows(rows)

			doc, err := repo.PedidoPorID(context.Background(), "p1")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(doc.Data).Should(BeEmpty())
		})
		It("UpdateStatus stamps audit fields", func() {
			mock.ExpectExec("UPDATE pedidos SET doc = jsonb_set").
				WithArgs("p1", "preparo", "loja@exemplo.com", "audit-1", "pendente").
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdateStatus(context.Background(), "p1", "pendente", "preparo", "loja@exemplo.com", "audit-1")
			Expect(err).ShouldNot(HaveOccurred())
		})
		It("UpdateStatus seeds historico before writing the audit entry", func() {
			mock.ExpectExec("'historico', COALESCE\\(doc->'historico', '\\{\\}'::jsonb\\)").
				WithArgs("p1", "preparo", "loja@exemplo.com", "audit-1", "pendente").
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdateStatus(context.Background(), "p1", "pendente", "preparo", "loja@exemplo.com", "audit-1")
			Expect(err).ShouldNot(HaveOccurred())
		})
		It("UpdateStatus counts a missing status field as pendente", func() {
			mock.ExpectExec("doc->>'status' IS NULL AND \\$5 = 'pendente'").
				WithArgs("doc-sem-status", "preparo", "loja@exemplo.com", "audit-2", "pendente").
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpdateStatus(context.Background(), "doc-sem-status", "pendente", "preparo", "loja@exemplo.com", "audit-2")
			Expect(err).ShouldNot(HaveOccurred())
		})
		It("UpdateStatus loses the race when source status changed", func() {
			mock.ExpectExec("UPDATE pedidos SET doc = jsonb_set").
				WithArgs("p1", "preparo", "loja@exemplo.com", "audit-1", "pendente").
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UpdateStatus(context.Background(), "p1", "pendente", "preparo", "loja@exemplo.com", "audit-1")
			Expect(err).Should(Equal(internal.ErrTransicaoInvalida))
		})
		It("CheckCredentials without rows", func() {
			mock.ExpectQuery("SELECT id FROM estabelecimentos WHERE doc->>'email' = \\$1 AND doc->>'senha' = \\$2").
				WithArgs("loja@exemplo.com", "hash").
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			_, err := repo.CheckCredentials(context.Background(), "loja@exemplo.com", "hash")
			Expect(err).Should(Equal(internal.ErrCredenciaisInvalidas))
		})
		It("LookupEstabelecimento first match wins", func() {
			rows := sqlmock.NewRows([]string{"id"}).AddRow("est-7")

			mock.ExpectQuery("SELECT id FROM estabelecimentos WHERE doc->>'emailUsuario' = \\$1 LIMIT 1").
				WithArgs("loja@exemplo.com").WillReturnRows(rows)

			id, err := repo.LookupEstabelecimento(context.Background(), "emailUsuario", "loja@exemplo.com")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(id).Should(Equal("est-7"))
		})
		It("GetPreferencias defaults when absent", func() {
			mock.ExpectQuery("SELECT som, popup FROM preferencias_notificacao WHERE estabelecimento_id = \\$1").
				WithArgs("est-1").WillReturnRows(sqlmock.NewRows([]string{"som", "popup"}))

			prefs, err := repo.GetPreferencias(context.Background(), "est-1")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(prefs).Should(Equal(model.PreferenciasPadrao()))
		})
		It("SavePreferencias upserts", func() {
			mock.ExpectExec("INSERT INTO preferencias_notificacao").
				WithArgs("est-1", false, true).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.SavePreferencias(context.Background(), "est-1", model.Preferencias{Som: false, Popup: true})
			Expect(err).ShouldNot(HaveOccurred())
		})
	})
})
