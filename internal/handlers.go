package internal

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brpedidos/pedidos/internal/model"
)

type Handlers struct {
	Service IService
	hub     *Hub
	secret  string
	logger  *zap.SugaredLogger
}

func NewHandlers(service IService, hub *Hub, secret string, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{Service: service, hub: hub, secret: secret, logger: logger}
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	var i model.LoginInput

	if err := c.BodyParser(&i); err != nil {
		h.logger.Errorf("Error on login request: %s", err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	t, err := h.Service.Login(c.Context(), i.Email, i.Senha)
	if err != nil {
		h.logger.Errorf("Error on login request: %s", err.Error())
		if errors.Is(err, ErrCredenciaisInvalidas) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	setAuthCookie(c, t)
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) GetPedidos(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	pedidos, err := h.Service.Pedidos(c.Context(), sess, filtroDaQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on list orders request", "data": err})
	}

	return c.Status(fiber.StatusOK).JSON(pedidos)
}

func (h *Handlers) GetEstatisticas(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	st, err := h.Service.Estatisticas(c.Context(), sess, filtroDaQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on stats request", "data": err})
	}

	return c.Status(fiber.StatusOK).JSON(st)
}

func (h *Handlers) MudarStatus(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = c.BodyParser(&body); err != nil || body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on status request", "data": err})
	}

	err = h.Service.MudarStatus(c.Context(), sess, c.Params("id"), body.Status)
	if err != nil {
		h.logger.Errorf("Error on status request: %s", err.Error())
		if errors.Is(err, ErrStatusDesconhecido) {
			return c.SendStatus(fiber.StatusUnprocessableEntity)
		}
		if errors.Is(err, ErrTransicaoInvalida) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Error on status request", "data": err})
		}
		if errors.Is(err, ErrPedidoNaoEncontrado) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on status request", "data": err})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) GetNotificacoes(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	painel, err := h.Service.Notificacoes(c.Context(), sess)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(painel)
}

func (h *Handlers) GetPreferencias(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	prefs, err := h.Service.Preferencias(c.Context(), sess)
	if err != nil {
		if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *Handlers) SalvarPreferencias(c *fiber.Ctx) error {
	sess, err := h.sessaoDoToken(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var prefs model.Preferencias
	if err = c.BodyParser(&prefs); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err = h.Service.SalvarPreferencias(c.Context(), sess, prefs); err != nil {
		if errors.Is(err, ErrEstabelecimentoNaoResolvido) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

// UpgradeWS barra a rota /ws para quem não veio negociar websocket.
func (h *Handlers) UpgradeWS(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Live é o feed vivo do painel: snapshot completo na conexão e a cada merge,
// mais os eventos de pedido novo e status.
func (h *Handlers) Live(conn *websocket.Conn) {
	defer conn.Close()

	sess, err := h.sessaoDoCookie(conn.Cookies("token"))
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pedidos, err := h.Service.Pedidos(ctx, sess, Filtro{})
	cancel()
	if err != nil {
		h.logger.Errorf("live feed inicial: %s", err.Error())
		return
	}

	estID, err := h.Service.ResolverEstabelecimento(context.Background(), sess)
	if err != nil {
		// sessão sem estabelecimento: conexão aceita mas muda nada
		estID = ""
	}

	client := &HubClient{
		ID:                uuid.NewString(),
		EstabelecimentoID: estID,
		Send:              make(chan []byte, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err = conn.WriteJSON(fiber.Map{"tipo": "snapshot", "payload": pedidos}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func filtroDaQuery(c *fiber.Ctx) Filtro {
	f := Filtro{
		Busca: c.Query("busca"),
		Tab:   c.Query("tab"),
	}
	// data malformada é ignorada, igual ao painel original
	if raw := c.Query("inicio"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			f.Inicio = &t
		}
	}
	if raw := c.Query("fim"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			f.Fim = &t
		}
	}
	return f
}

func setAuthCookie(c *fiber.Ctx, token string) {
	cookie := &fiber.Cookie{
		Name:    "token",
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	}

	c.Cookie(cookie)
}

func (h *Handlers) sessaoDoToken(c *fiber.Ctx) (Sessao, error) {
	return h.sessaoDoCookie(c.Cookies("token"))
}

func (h *Handlers) sessaoDoCookie(tokenString string) (Sessao, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.secret), nil
	})
	if err != nil {
		return Sessao{}, err
	}

	sess := Sessao{}
	if id, ok := claims["id"].(string); ok {
		sess.ID = id
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	return sess, nil
}
