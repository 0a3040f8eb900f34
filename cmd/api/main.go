package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "igia-backend/internal/adapter/http"
	"igia-backend/internal/adapter/middleware"
	"igia-backend/internal/adapter/repository/mysql"
	"igia-backend/internal/config"
	"igia-backend/internal/infrastructure/auth"
	"igia-backend/internal/infrastructure/cache"
	"igia-backend/internal/infrastructure/db"
	"igia-backend/internal/infrastructure/logging"
	"igia-backend/internal/infrastructure/mail"
	"igia-backend/internal/jobs"
	"igia-backend/internal/usecase/account"
	"igia-backend/internal/usecase/campaign"
	"igia-backend/internal/usecase/contribution"
	"igia-backend/internal/usecase/message"
	"igia-backend/internal/usecase/notification"
	"igia-backend/internal/usecase/payment"
	"igia-backend/internal/usecase/project"
	"igia-backend/internal/usecase/withdrawal"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), logger)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	if err := mysql.Migrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiry)
	tx := mysql.NewGormUoW(gdb)
	repos := mysql.NewRepos(gdb)

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatal("sql handle", zap.Error(err))
	}
	h := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Pinger{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Accounts:      httpadp.NewAccountHandler(account.NewUsecase(tx, repos.Users, repos.Profiles, repos.Reference, tokens)),
		Projects:      httpadp.NewProjectHandler(project.NewUsecase(tx)),
		Campaigns:     httpadp.NewCampaignHandler(campaign.NewUsecase(tx)),
		Contributions: httpadp.NewContributionHandler(contribution.NewUsecase(tx)),
		Notifications: httpadp.NewNotificationHandler(notification.NewUsecase(repos.Users, repos.Notifications)),
		Messages:      httpadp.NewMessageHandler(message.NewUsecase(tx)),
		Payments:      httpadp.NewPaymentHandler(payment.NewUsecase(tx)),
		Withdrawals:   httpadp.NewWithdrawalHandler(withdrawal.NewUsecase(tx)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestLogger(logger), echomw.Recover())
	httpadp.RegisterRoutes(e, h,
		middleware.Auth(tokens),
		middleware.IdempotencyMiddleware(middleware.NewIdempotencyStore(rdb, cfg.IdempotencyTTL()), logger),
	)

	sched := jobs.NewScheduler(logger, time.UTC)
	reminder := jobs.NewInactiveReminder(repos.Users, mail.NewOutbox(rdb, cfg.MailFrom), logger)
	if err := sched.Add(cfg.ReminderSchedule, "inactive-reminder", reminder.Job); err != nil {
		logger.Fatal("schedule", zap.Error(err))
	}
	sched.Start(ctx)

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
