package main

import (
	"context"
	log "github.com/sirupsen/logrus"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/config"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/forwarder"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/jobs"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/logging"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/server"
	"os/signal"
	"syscall"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Fatal("Could not load settings")
	}

	logFile := logging.Setup(log.StandardLogger(), settings.LogLevel, settings.LogFolder)
	defer logFile.Close()

	// The routes file is read once; a broken file means we cannot serve anything.
	routes, err := config.LoadRoutes(settings.ConfigFile)
	if err != nil {
		log.WithFields(log.Fields{"path": settings.ConfigFile, "error": err.Error()}).Fatal("Could not load the routes file")
	}
	log.WithFields(log.Fields{"path": settings.ConfigFile, "routes": len(routes.Keys())}).Info("Loaded routes")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s := server.New(routes, settings, forwarder.New(settings.ForwardTimeout), &jobs.DeliveryStats{})
	if err := s.Run(ctx); err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("Server - Stopped with an error")
		return
	}

	log.Info("Server - Stopped")
}
