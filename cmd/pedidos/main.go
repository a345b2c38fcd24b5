package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/brpedidos/pedidos/internal"
	"github.com/brpedidos/pedidos/internal/model"
)

func main() {
	//decimals at json as string
	//https://github.com/shopspring/decimal/issues/21
	decimal.MarshalJSONWithoutQuotes = true

	cfg := NewConfig()
	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	sugaredLogger := z.Sugar()

	repository, err := NewRepository(cfg.DatabaseURI, sugaredLogger)
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(cfg.DatabaseURI, sugaredLogger)
	go listener.Run(ctx)

	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		if err = rdb.Ping(ctx).Err(); err != nil {
			sugaredLogger.Warnf("redis indisponível, eventos só via websocket: %s", err.Error())
			rdb = nil
		}
	}

	hub := NewHub(sugaredLogger)
	notifier := NewNotifier(hub, repository, rdb, cfg.WebhookURL, sugaredLogger)

	watchers := NewWatcherSet(func(estabelecimentoID string) *Watcher {
		fetchA := func(ctx context.Context) ([]model.RawDoc, error) {
			return repository.PedidosPorCampo(ctx, CampoRestaurante, estabelecimentoID)
		}
		fetchB := func(ctx context.Context) ([]model.RawDoc, error) {
			return repository.PedidosPorCampo(ctx, CampoEstabelecimento, estabelecimentoID)
		}
		return NewWatcher(ctx, estabelecimentoID, fetchA, fetchB,
			listener.Wake(), listener.Wake(), cfg.PollInterval, notifier, sugaredLogger)
	})
	defer watchers.Close()

	service := NewService(repository, watchers, notifier, cfg.JWTSecret, sugaredLogger)
	handlers := NewHandlers(service, hub, cfg.JWTSecret, sugaredLogger)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")

	api.Post("/login", handlers.Login)

	api.Get("/pedidos", handlers.GetPedidos)
	api.Get("/pedidos/stats", handlers.GetEstatisticas)
	api.Put("/pedidos/:id/status", handlers.MudarStatus)

	api.Get("/notificacoes", handlers.GetNotificacoes)
	api.Get("/notificacoes/preferencias", handlers.GetPreferencias)
	api.Put("/notificacoes/preferencias", handlers.SalvarPreferencias)

	app.Use("/ws", handlers.UpgradeWS)
	app.Get("/ws", websocket.New(handlers.Live))

	go func() {
		if err := app.Listen(cfg.RunAddress); err != nil {
			sugaredLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("Shutting down service...")

	cancel()
	if err := app.Shutdown(); err != nil {
		sugaredLogger.Errorf("shutdown: %s", err.Error())
	}
}
