package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"registros-gateway/internal/adapters/backend"
	"registros-gateway/internal/adapters/handler/http"
	"registros-gateway/internal/adapters/storage/memory"
	"registros-gateway/internal/adapters/storage/redis"
	"registros-gateway/internal/config"
	"registros-gateway/internal/core/ports"
	"registros-gateway/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	kv := openKeyValue(cfg)
	tokens := services.NewTokenService(kv, cfg.TokenTTL)

	client := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout, tokens)
	authAPI := services.NewAuthService(client)
	registros := services.NewRegistrosService(client)
	session := services.NewSessionService(authAPI, tokens)

	// Resolve the session from whatever tokens survived the last run.
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	session.Init(initCtx)
	cancelInit()

	handler := http.NewHandler(session, registros, tokens, cfg.LoginRedirect)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("registros gateway listening on %s (backend %s)", cfg.HTTPAddr, cfg.BackendBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// openKeyValue connects to redis, falling back to the in-process store when
// no instance is reachable (tokens then live only for this run).
func openKeyValue(cfg config.Config) ports.KeyValue {
	client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, keeping tokens in memory: %v", cfg.RedisAddr, err)
		return memory.New()
	}
	return redis.New(client, cfg.RedisPrefix)
}
