package main

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	devicehandler "github.com/plannerd/reminderd/internal/api/handlers/device"
	reminderhandler "github.com/plannerd/reminderd/internal/api/handlers/reminder"
	"github.com/plannerd/reminderd/internal/api/router"
	"github.com/plannerd/reminderd/internal/api/server"
	"github.com/plannerd/reminderd/internal/config"
	"github.com/plannerd/reminderd/internal/delivery"
	"github.com/plannerd/reminderd/internal/firing"
	"github.com/plannerd/reminderd/internal/idempotency"
	"github.com/plannerd/reminderd/internal/metrics"
	"github.com/plannerd/reminderd/internal/model"
	deliveryrepo "github.com/plannerd/reminderd/internal/repository/delivery"
	devicerepo "github.com/plannerd/reminderd/internal/repository/device"
	reminderrepo "github.com/plannerd/reminderd/internal/repository/reminder"
	"github.com/plannerd/reminderd/internal/scheduler"
	devicesvc "github.com/plannerd/reminderd/internal/service/device"
	remindersvc "github.com/plannerd/reminderd/internal/service/reminder"
	"github.com/plannerd/reminderd/pkg/email"
	"github.com/plannerd/reminderd/pkg/push"
	"github.com/plannerd/reminderd/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	// A durable store that is unreachable at startup aborts the process:
	// running with an empty schedule would silently drop reminders.
	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	reminders := reminderrepo.NewRepository(db)
	devices := devicerepo.NewRepository(db)
	attempts := deliveryrepo.NewRepository(db)

	recorder := metrics.NewRecorder()

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	transports := map[string]delivery.Transport{
		model.ChannelPush: push.NewClient(cfg.Push.AuthToken),
		model.ChannelEmail: email.NewClient(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		),
		model.ChannelTelegram: telegram.NewClient(cfg.Telegram.Token),
	}

	manager := delivery.NewManager(attempts, reminders, transports, cfg.Delivery, recorder)
	pipeline := firing.NewPipeline(reminders, devices, manager, rdb, cfg.Retry, recorder)
	sched := scheduler.New(reminders, pipeline.Fire)

	if err := sched.Rehydrate(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to rehydrate scheduler from store")
	}

	go sched.Run(ctx, cfg.Scheduler.Workers)

	ledger := idempotency.NewLedger(db, cfg.Idempotency.TTL)
	reminderService := remindersvc.NewService(reminders, attempts, ledger, sched, rdb, recorder)
	deviceService := devicesvc.NewService(devices, []string{
		model.ChannelPush, model.ChannelEmail, model.ChannelTelegram,
	})

	reminderHandler := reminderhandler.NewHandler(reminderService, val, cfg)
	deviceHandler := devicehandler.NewHandler(deviceService, val)

	r := router.New(reminderHandler, deviceHandler, recorder.Handler())
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}
}
