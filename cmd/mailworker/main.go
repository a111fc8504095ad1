package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mailgun "github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/mail"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/mail"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.LoadWorker()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		zapLog.Warn("MAILGUN_DOMAIN or MAILGUN_API_KEY is empty, deliveries will be rejected")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zapLog.Fatal("parse REDIS_URL", zap.Error(err))
	}
	redisCli := redis.NewClient(redisOpts)
	defer redisCli.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	sender := mailgun.NewMailgunSender(mailgun.MailgunConfig{
		BaseURL:  cfg.MailgunBaseURL,
		Domain:   cfg.MailgunDomain,
		APIKey:   cfg.MailgunAPIKey,
		FromName: cfg.MailFromName,
		Timeout:  cfg.MailTimeout,
	}, zapLog)
	dispatcher := mail.NewDispatcher(sender, zapLog, m)
	queue := myRedisRepo.NewRedisMailQueue(redisCli, cfg.MailQueue)
	worker := mail.NewWorker(queue, dispatcher, cfg.MailWorkers, zapLog)
	metrics.RegisterQueueDepth(reg, cfg.MailQueue, func() (int64, error) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return queue.Len(ctx)
	})

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLog.Info("mail worker started",
			zap.String("queue", cfg.MailQueue),
			zap.Int("consumers", cfg.MailWorkers),
		)
		return worker.Run(ctx)
	})

	if cfg.MetricsAddress != "" {
		g.Go(func() error {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(ctxShutdown)
		})
	}

	if err := g.Wait(); err != nil {
		zapLog.Error("mail worker terminated", zap.Error(err))
	}
	zapLog.Info("mail worker stopped")
}
