package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authdemo.org/internal/auth"
	"authdemo.org/internal/config"
	"authdemo.org/internal/directory"
	"authdemo.org/internal/httpapi"
	"authdemo.org/internal/obs"
)

var version = "1.0.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version)

	cfg := config.Load()
	if cfg.UsingDefaultSecret() {
		log.Printf("warning: JWT_SECRET not set, signing with the insecure default key")
	}

	codec, err := auth.NewCodec(cfg.SigningSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	api := httpapi.New(directory.Fixed(), codec, cfg, version)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting auth-api %s on %s (%s)", version, srv.Addr, cfg.Environment)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
