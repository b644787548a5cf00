package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vessel_briefing_bot/internal/domain/dispatch"
	"vessel_briefing_bot/internal/infra/config"
	idb "vessel_briefing_bot/internal/infra/database"
	"vessel_briefing_bot/internal/infra/lockfile"
	"vessel_briefing_bot/internal/infra/logger"
	"vessel_briefing_bot/internal/infra/scheduler"
)

func main() {
	fmt.Println("Briefing Dispatch Scheduler starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.LoadScheduler()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load scheduler configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)
	mainLogger.Printf("INFO: Configuration loaded. Dispatch endpoint: %s, Timezone: %s", cfg.DispatchBaseURL, cfg.ReportTimezone)

	location, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		mainLogger.Fatalf("FATAL: Invalid REPORT_TIMEZONE %q: %v", cfg.ReportTimezone, err)
	}

	var lockStore dispatch.Store
	if cfg.LockDatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.LockDatabaseURL)
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not connect to lock database: %v", err)
		}
		defer db.Close()
		lockStore = idb.NewPostgresLockRepository(db)
		mainLogger.Println("INFO: Postgres dispatch-lock store initialized.")
	} else {
		lockStore = lockfile.NewFileStore(cfg.LockFilePath)
		mainLogger.Printf("INFO: File dispatch-lock store initialized at %s.", cfg.LockFilePath)
	}

	schedulerLogger := log.New(os.Stdout, "SCHEDULER: ", log.LstdFlags|log.Lshortfile)
	dispatchScheduler := scheduler.NewDispatchScheduler(
		lockStore,
		&http.Client{Timeout: 90 * time.Second},
		cfg.DispatchBaseURL,
		cfg.CronSpecAM,
		cfg.CronSpecPM,
		location,
		schedulerLogger,
	)
	dispatchScheduler.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Println("INFO: Shutting down scheduler...")
	dispatchScheduler.Stop()
	mainLogger.Println("INFO: Scheduler shut down gracefully.")
}
