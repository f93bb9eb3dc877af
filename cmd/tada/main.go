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

	"github.com/robfig/cron/v3"

	"github.com/avsivakumar/tada/internal/auth"
	"github.com/avsivakumar/tada/internal/config"
	"github.com/avsivakumar/tada/internal/repository"
	"github.com/avsivakumar/tada/internal/server"
	"github.com/avsivakumar/tada/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	authSvc := auth.NewService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	taskSvc := service.NewTaskService(taskRepo)
	noteSvc := service.NewNoteService(noteRepo)
	reminderSvc := service.NewReminderService(taskRepo)
	backupSvc := service.NewBackupService(taskRepo, noteRepo)

	scheduler := service.NewScheduler(time.Local)

	materialize := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := taskSvc.Materialize(jobCtx, time.Now())
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("materialize: %v", err)
			return
		}
		if n > 0 {
			log.Printf("materialized %d recurring instance(s)", n)
		}
	}

	refreshReminders := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := reminderSvc.Refresh(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("reminders: %v", err)
		}
	}

	// Generation pass on start, then on the hourly cadence, plus a daily
	// catch-up shortly after midnight so the new day's instances appear even
	// when the hourly tick lands late. The reminder check first fires a
	// full interval after start, which doubles as the warm-up delay against
	// a reminder flash on freshly created tasks.
	materialize()
	var entries []cron.EntryID
	id, err := scheduler.ScheduleRepeating(cfg.MaterializeInterval, materialize)
	if err != nil {
		log.Fatalf("schedule materialization: %v", err)
	}
	entries = append(entries, id)
	id, err = scheduler.ScheduleDaily(cfg.CatchupTime, materialize)
	if err != nil {
		log.Fatalf("schedule daily catch-up: %v", err)
	}
	entries = append(entries, id)
	id, err = scheduler.ScheduleRepeating(cfg.ReminderInterval, refreshReminders)
	if err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}
	entries = append(entries, id)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(authSvc, taskSvc, noteSvc, reminderSvc, backupSvc),
	}

	go func() {
		log.Printf("tada listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	// Stop new job runs before draining HTTP; Stop then waits out any job
	// still in flight.
	for _, id := range entries {
		scheduler.Cancel(id)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
