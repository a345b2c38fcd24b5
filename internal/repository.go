package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/migrations"
	"github.com/brpedidos/pedidos/internal/model"
)

const (
	CampoRestaurante     = "restauranteId"
	CampoEstabelecimento = "estabelecimentoId"
)

// CamposEmail são os nomes de campo tentados, em ordem, na resolução do
// estabelecimento por e-mail. Legado do cadastro antigo, que gravou o
// e-mail sob nomes diferentes conforme a época.
var CamposEmail = []string{"email", "emailUsuario", "usuarioEmail", "loginUsuario"}

// campos aceitos em consultas doc->>campo; o nome entra concatenado no SQL
var camposConsulta = map[string]bool{
	CampoRestaurante:     true,
	CampoEstabelecimento: true,
	"email":              true,
	"emailUsuario":       true,
	"usuarioEmail":       true,
	"loginUsuario":       true,
}

type IRepository interface {
	CheckCredentials(context.Context, string, string) (string, error)
	EstabelecimentoExiste(context.Context, string) (bool, error)
	LookupEstabelecimento(context.Context, string, string) (string, error)
	PedidosPorCampo(context.Context, string, string) ([]model.RawDoc, error)
	PedidoPorID(context.Context, string) (model.RawDoc, error)
	UpdateStatus(ctx context.Context, id, de, para, por, chaveAudit string) error
	GetPreferencias(context.Context, string) (model.Preferencias, error)
	SavePreferencias(context.Context, string, model.Preferencias) error
}

type Repository struct {
	Conn   *sql.DB
	Logger *zap.SugaredLogger
}

func NewRepository(connString string, logger *zap.SugaredLogger) (*Repository, error) {
	conn, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	if err = migrate(conn); err != nil {
		return nil, err
	}

	return &Repository{Conn: conn, Logger: logger}, nil
}

func migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(conn, ".")
}

func (r Repository) CheckCredentials(ctx context.Context, email, senhaHash string) (string, error) {
	var id string
	row := r.Conn.QueryRowContext(ctx,
		"SELECT id FROM estabelecimentos WHERE doc->>'email' = $1 AND doc->>'senha' = $2", email, senhaHash)

	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCredenciaisInvalidas
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r Repository) EstabelecimentoExiste(ctx context.Context, id string) (bool, error) {
	exist := false
	row := r.Conn.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM estabelecimentos WHERE id = $1)", id)
	if err := row.Scan(&exist); err != nil {
		return false, err
	}
	return exist, nil
}

func (r Repository) LookupEstabelecimento(ctx context.Context, campo, valor string) (string, error) {
	if !camposConsulta[campo] {
		return "", ErrSemRegistros
	}

	var id string
	row := r.Conn.QueryRowContext(ctx,
		"SELECT id FROM estabelecimentos WHERE doc->>'"+campo+"' = $1 LIMIT 1", valor)

	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSemRegistros
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r Repository) PedidosPorCampo(ctx context.Context, campo, estabelecimentoID string) ([]model.RawDoc, error) {
	if !camposConsulta[campo] {
		return nil, ErrSemRegistros
	}

	rows, err := r.Conn.QueryContext(ctx,
		"SELECT id, doc FROM pedidos WHERE doc->>'"+campo+"' = $1", estabelecimentoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.RawDoc
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r Repository) PedidoPorID(ctx context.Context, id string) (model.RawDoc, error) {
	row := r.Conn.QueryRowContext(ctx, "SELECT id, doc FROM pedidos WHERE id = $1", id)

	var doc model.RawDoc
	var raw []byte
	err := row.Scan(&doc.ID, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RawDoc{}, ErrPedidoNaoEncontrado
	}
	if err != nil {
		return model.RawDoc{}, err
	}
	if err = json.Unmarshal(raw, &doc.Data); err != nil {
		// doc corrompido degrada para vazio, o Normalize preenche o resto
		r.Logger.Warnf("doc ilegível para pedido %s: %s", doc.ID, err.Error())
		doc.Data = map[string]interface{}{}
	}
	return doc, nil
}

// UpdateStatus persiste a transição com carimbo do relógio do servidor e
// acrescenta a entrada de auditoria sob historico.<chaveAudit>. O objeto
// historico é semeado antes do jsonb_set: com caminho inexistente o jsonb_set
// devolve o alvo intacto e a entrada sumiria. O WHERE confere o status de
// origem (campo ausente conta como pendente, igual ao Normalize): transição
// concorrente perde e recebe ErrTransicaoInvalida.
func (r Repository) UpdateStatus(ctx context.Context, id, de, para, por, chaveAudit string) error {
	res, err := r.Conn.ExecContext(ctx,
		`UPDATE pedidos SET doc = jsonb_set(
			doc || jsonb_build_object(
				'status', $2::text, 'atualizadoEm', now(), 'atualizadoPor', $3::text,
				'historico', COALESCE(doc->'historico', '{}'::jsonb)),
			ARRAY['historico', $4::text],
			jsonb_build_object('de', COALESCE(doc->>'status', 'pendente'), 'para', $2::text, 'por', $3::text, 'em', now()),
			true
		) WHERE id = $1 AND (doc->>'status' = $5 OR (doc->>'status' IS NULL AND $5 = 'pendente'))`,
		id, para, por, chaveAudit, de)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransicaoInvalida
	}
	return nil
}

func (r Repository) GetPreferencias(ctx context.Context, estabelecimentoID string) (model.Preferencias, error) {
	var prefs model.Preferencias
	row := r.Conn.QueryRowContext(ctx,
		"SELECT som, popup FROM preferencias_notificacao WHERE estabelecimento_id = $1", estabelecimentoID)

	err := row.Scan(&prefs.Som, &prefs.Popup)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PreferenciasPadrao(), nil
	}
	if err != nil {
		return model.Preferencias{}, err
	}
	return prefs, nil
}

func (r Repository) SavePreferencias(ctx context.Context, estabelecimentoID string, prefs model.Preferencias) error {
	_, err := r.Conn.ExecContext(ctx,
		`INSERT INTO preferencias_notificacao (estabelecimento_id, som, popup) VALUES ($1, $2, $3)
		 ON CONFLICT (estabelecimento_id) DO UPDATE SET som = $2, popup = $3`,
		estabelecimentoID, prefs.Som, prefs.Popup)
	return err
}

func scanDoc(rows *sql.Rows) (model.RawDoc, error) {
	var doc model.RawDoc
	var raw []byte
	if err := rows.Scan(&doc.ID, &raw); err != nil {
		return model.RawDoc{}, err
	}
	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		doc.Data = map[string]interface{}{}
	}
	return doc, nil
}
