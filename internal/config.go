package internal

import (
	"flag"
	"fmt"
	"os"
	"time"
)

var c *config

const (
	RunAddress   = "RUN_ADDRESS"
	DatabaseURI  = "DATABASE_URI"
	RedisAddress = "REDIS_ADDRESS"
	WebhookURL   = "WEBHOOK_URL"
	JWTSecret    = "JWT_SECRET"
	PollInterval = "POLL_INTERVAL"
)

const (
	defaultRunAddress   = "localhost:8080"
	defaultPollInterval = 5 * time.Second
	defaultJWTSecret    = "secret" // sobrescrever em produção via JWT_SECRET
)

const (
	host     = "localhost"
	port     = 5432
	user     = "postgres"
	password = "12345"
)

type config struct {
	RunAddress   string
	DatabaseURI  string
	RedisAddress string
	WebhookURL   string
	JWTSecret    string
	PollInterval time.Duration
}

func NewConfig() *config {
	c = new(config)

	defaultConn := fmt.Sprintf("host=%s port=%d user=%s "+
		"password=%s sslmode=disable", // database=pedidos
		host, port, user, password)

	flag.StringVar(&c.RunAddress, "a", setEnvOrDefault(RunAddress, defaultRunAddress), "host to listen on")
	flag.StringVar(&c.DatabaseURI, "d", setEnvOrDefault(DatabaseURI, defaultConn), "postgres connection path")
	flag.StringVar(&c.RedisAddress, "r", setEnvOrDefault(RedisAddress, ""), "redis address for event publishing (optional)")
	flag.StringVar(&c.WebhookURL, "w", setEnvOrDefault(WebhookURL, ""), "webhook URL for new-order events (optional)")
	flag.StringVar(&c.JWTSecret, "s", setEnvOrDefault(JWTSecret, defaultJWTSecret), "JWT signing secret")
	flag.DurationVar(&c.PollInterval, "p", envDurationOrDefault(PollInterval, defaultPollInterval), "order poll interval")

	flag.Parse()
	return c
}

func setEnvOrDefault(env, def string) string {
	res, e := os.LookupEnv(env)
	if !e {
		res = def
	}
	return res
}

func envDurationOrDefault(env string, def time.Duration) time.Duration {
	raw, e := os.LookupEnv(env)
	if !e {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
