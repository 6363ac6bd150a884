package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-dashboard/internal/api"
	"github.com/iliyamo/cinema-admin-dashboard/internal/config"
	"github.com/iliyamo/cinema-admin-dashboard/internal/handler"
	"github.com/iliyamo/cinema-admin-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/queue"
	"github.com/iliyamo/cinema-admin-dashboard/internal/router"
	"github.com/iliyamo/cinema-admin-dashboard/internal/seating"
	"github.com/iliyamo/cinema-admin-dashboard/internal/service"
	"github.com/iliyamo/cinema-admin-dashboard/internal/session"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.Env == "prod" || cfg.Env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionPrefix, cfg.SessionTTL)
	} else {
		log.Warn("redis unavailable: sessions kept in memory, login rate limiting disabled")
		store = session.NewMemoryStore()
	}

	client := api.New(cfg.UpstreamURL, cfg.UpstreamTimeout, log.WithField("component", "upstream"))
	gate := session.NewGate(store, client, log.WithField("component", "session"))

	var publisher service.EventPublisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL, log.WithField("component", "publisher"))
	}

	filter := seating.IncludeAllStatuses
	if cfg.OccupancyExcludeCancelled {
		filter = seating.ExcludeCancelled
	}
	room := model.Room{Rows: cfg.SeatRows, SeatsPerRow: cfg.SeatsPerRow}

	rooms := service.NewRoomService(client, room, filter, cfg.ViewerIdleTTL, log.WithField("component", "rooms"))
	bookings := service.NewBookingService(client, publisher, log.WithField("component", "bookings"))
	catalog := service.NewCatalogService(client, cfg.BcryptCost, log.WithField("component", "catalog"))

	cookie := handler.CookieConfig{Name: cfg.SessionCookie, Secret: cfg.JWTSecret, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}
	e := router.NewServer(router.Deps{
		Gate:         gate,
		Cookie:       cookie,
		Auth:         handler.NewAuthHandler(gate, rooms, cookie, log),
		Catalog:      handler.NewCatalogHandler(catalog, log),
		Bookings:     handler.NewBookingHandler(bookings, rooms, log),
		LoginLimiter: middleware.LoginThrottle(config.LoadRateLimitConfig(), rdb, log),
		Log:          log,
	})

	sched, err := rooms.StartEviction(cfg.ViewerSweepInterval)
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.WithError(err).Warn("scheduler shutdown failed")
		}
	}()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		audit := queue.NewAuditLog(cfg.AuditLogPath)
		g.Go(func() error {
			return queue.RunBookingStatusConsumer(ctx, cfg.AMQPURL, audit, log)
		})
	}

	g.Go(func() error {
		addr := ":" + cfg.Port
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "upstream": cfg.UpstreamURL}).Info("starting HTTP server")
		err := e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down HTTP server")
		return shutdown(e)
	})

	return g.Wait()
}

func shutdown(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
