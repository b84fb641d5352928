package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-transcript-notes-be/internal/bootstrap"
	"ai-transcript-notes-be/internal/config"
	"ai-transcript-notes-be/internal/model"
	"ai-transcript-notes-be/internal/server"
	"ai-transcript-notes-be/internal/tracer"
	"ai-transcript-notes-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing.Enabled)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.App.AutoMigrate {
		if err := model.AutoMigrate(gormDB); err != nil {
			log.Panicf("Unable to migrate schema: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if container.ActivityService != nil {
		if err := container.ActivityService.Start(ctx); err != nil {
			log.Printf("Background Activity Listener Error: %v", err)
		}
	}

	// 6. Initialize and Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
