package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"careportal-reminders/internal/channel"
	"careportal-reminders/internal/common/config"
	"careportal-reminders/internal/common/database"
	"careportal-reminders/internal/common/logger"
	"careportal-reminders/internal/notify"
	appointmentreminder "careportal-reminders/internal/scanners/appointment-reminder"
	medicationreminder "careportal-reminders/internal/scanners/medication-reminder"
	"careportal-reminders/internal/scheduler"
	"careportal-reminders/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger).WithFields(map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		log.Error("postgres setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		log.Error("redis setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer rdb.Close()

	stateStore := store.NewPostgres(pg.DB, log)
	markers := store.NewRedisMarkers(rdb.Client)

	var ch channel.Channel
	switch cfg.Notifications.Channel {
	case "sms":
		ch, err = channel.NewSMS(ctx, cfg.Notifications)
		if err != nil {
			log.Error("sns setup failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	default:
		ch = channel.NewWhatsApp(cfg.Notifications)
	}
	if !ch.Configured() {
		// The daemon still runs its scans so the gap is visible in logs and
		// metrics; every dispatch fails fast and writes no markers.
		log.Warn("message channel credentials missing, reminders will not be delivered", map[string]interface{}{
			"channel": cfg.Notifications.Channel,
		})
	}

	dispatcher := notify.NewDispatcher(stateStore, ch, cfg.Notifications.CountryCode, log)

	scanners := []scheduler.Scanner{
		appointmentreminder.New(stateStore, dispatcher, log),
		medicationreminder.New(stateStore, markers, dispatcher, log),
	}

	sched := scheduler.New(cfg.Scheduler.Interval, stateStore, scanners, log)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.App.MetricsAddress, mux); err != nil {
			log.Warn("metrics endpoint stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	sched.Start(ctx)
	log.Info("reminder daemon shut down", nil)
}
