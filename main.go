package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"restqueue/backend"
	"restqueue/config"
	"restqueue/handler"
	"restqueue/logging"
	"restqueue/queue"
)

var version = "dev"

func main() {
	if err := config.ParseArgs(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if config.CliArgs.Help {
		return
	}
	if config.CliArgs.Version {
		fmt.Println(version)
		return
	}
	if config.CliArgs.ConfigFile == "" {
		fmt.Fprintln(os.Stderr, "--config is required")
		os.Exit(2)
	}

	log := logging.GetLogger()
	cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if config.CliArgs.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logging.ParseLevel(cfg.LogLevel))
	}

	// Without a client no request can ever be dispatched.
	httpsClient, err := backend.NewHTTPSClient(backend.TLSConfig{
		CACertFile: cfg.CACert,
		ServerName: cfg.ServerName,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTPS client: %v", err)
	}

	// Initialize the request queue
	submitter, dispatcher := queue.Start(httpsClient, queue.Config{
		MonitorInterval: cfg.MonitorInterval,
	})

	// Initialize the HTTP handler with the backend client
	httpHandler := handler.NewHTTPHandler(backend.NewBackendClient(cfg.APIRoot, submitter))

	// Define the server
	server := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: httpHandler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Infoln("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown: %v", err)
		}
	}()

	log.Infof("Starting server on %s, forwarding to %s", cfg.ListenAddress, cfg.APIRoot)
	// Start listening and serving
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}

	// Dropping the last handle lets the dispatcher drain and stop.
	submitter.Close()
	<-dispatcher.Done()
}
