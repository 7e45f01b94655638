package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/signup/internal/adapters/handler/http"
	"github.com/vncsmyrnk/signup/internal/adapters/signupapi"
	"github.com/vncsmyrnk/signup/internal/adapters/view"
	"github.com/vncsmyrnk/signup/internal/config"
	"github.com/vncsmyrnk/signup/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	renderer, err := view.New(cfg.ViewOptions()...)
	if err != nil {
		log.Fatal(err)
	}

	signupAPI := signupapi.NewClient(cfg.APIURL, cfg.APITimeout)
	signupService := services.NewSignupService(signupAPI)
	signupHandler := http.NewSignupHandler(signupService, renderer)

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           http.NewHandler(signupHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s, relaying signups to %s", cfg.HTTPAddr, cfg.APIURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
