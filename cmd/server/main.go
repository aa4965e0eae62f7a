package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/feds201/pickup-scheduler/internal/api"
	"github.com/feds201/pickup-scheduler/internal/config"
	"github.com/feds201/pickup-scheduler/internal/notifier"
	"github.com/feds201/pickup-scheduler/internal/scheduler"
	"github.com/feds201/pickup-scheduler/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("[Server] Failed to load config: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("[Server] DATABASE_URL is required")
	}
	db, err := store.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("[Server] Failed to connect to database: %v", err)
	}
	defer db.Close()
	st := store.NewPostgresStore(db)

	sender, err := buildSender(cfg)
	if err != nil {
		log.Fatalf("[Server] Failed to build email sender: %v", err)
	}
	mailer, err := notifier.NewMailer(sender, notifier.Address{
		Name:  cfg.Email.FromName,
		Email: cfg.Email.FromEmail,
	})
	if err != nil {
		log.Fatalf("[Server] Failed to build mailer: %v", err)
	}

	scheduleCfg, err := cfg.Schedule.Pickup()
	if err != nil {
		log.Fatalf("[Server] Invalid schedule config: %v", err)
	}
	configs := scheduler.NewConfigStore(scheduleCfg)

	var ledger *scheduler.DispatchLedger
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Server] Redis unavailable, dispatch ledger disabled: %v", err)
		} else {
			ledger = scheduler.NewDispatchLedger(client)
			log.Printf("[Server] Dispatch ledger enabled (redis %s)", cfg.Redis.Addr)
		}
		cancel()
		defer client.Close()
	}

	job := scheduler.NewJob(configs, st, mailer, ledger)

	worker := scheduler.NewWorker(job, cfg.Schedule.SendHour)
	if err := worker.Start(); err != nil {
		log.Fatalf("[Server] Failed to start scheduler: %v", err)
	}
	defer worker.Stop()

	handlers := api.NewHandlers(st, job, configs, mailer)
	server := api.NewServer(handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	go func() {
		log.Printf("[Server] Listening on %s (provider %s)", addr, cfg.Email.Provider)
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Server] HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
	log.Println("[Server] Stopped")
}

// buildSender picks the outbound email transport from config. "log" keeps
// development runs from sending real email.
func buildSender(cfg *config.Config) (notifier.Sender, error) {
	switch cfg.Email.Provider {
	case "ses":
		if !cfg.SES.Enabled && cfg.SES.AccessKey == "" {
			return nil, fmt.Errorf("ses provider selected but not configured")
		}
		return notifier.NewSESSender(context.Background(), cfg.SES)
	case "mailgun":
		if cfg.Mailgun.APIKey == "" || cfg.Mailgun.Domain == "" {
			return nil, fmt.Errorf("mailgun provider selected but not configured")
		}
		return notifier.NewMailgunSender(cfg.Mailgun), nil
	case "log", "":
		return notifier.NewLogSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
