package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/alertmanager"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/generic"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/auth"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/card"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/config"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/forwarder"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/jobs"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/utils"
	"golang.org/x/sync/errgroup"
	"io"
	"net/http"
	"strings"
	"time"
)

type Forwarder interface {
	Forward(ctx context.Context, url string, message card.Message) (*forwarder.Result, error)
}

type Server struct {
	routes    *config.Routes
	settings  *config.Settings
	forwarder Forwarder
	stats     *jobs.DeliveryStats
	statsJob  jobs.StatsJob
}

// delivery is one card to send, with the fields identifying it in logs.
type delivery struct {
	message card.Message
	fields  log.Fields
}

func New(routes *config.Routes, settings *config.Settings, fwd Forwarder, stats *jobs.DeliveryStats) *Server {
	return &Server{
		routes:    routes,
		settings:  settings,
		forwarder: fwd,
		stats:     stats,
		statsJob:  jobs.NewStatsJob(stats),
	}
}

// Handler returns the router wrapped in access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ping", s.ping).Methods(http.MethodGet)
	router.HandleFunc("/{routeKey}", s.webhook).Methods(http.MethodPost)

	logger := log.StandardLogger()
	handler := handlers.LoggingHandler(logger.Writer(), router)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(logger), handlers.PrintRecoveryStack(true))(handler)
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	s.stats.Request()

	routeKey := mux.Vars(r)["routeKey"]
	fields := log.Fields{"route": routeKey}

	if err := s.handle(r, routeKey, fields); err != nil {
		s.writeError(w, err, fields)
		return
	}

	log.WithFields(fields).Info("Server - Webhook forwarded to Teams")
	s.writeResponse(w, http.StatusOK, utils.Response{Message: utils.SuccessMessage})
}

func (s *Server) handle(r *http.Request, routeKey string, fields log.Fields) *requestError {
	route, ok := s.routes.Lookup(routeKey)
	if !ok {
		s.stats.Rejected()
		return newRequestError(http.StatusNotFound, "webhook not found")
	}

	if err := auth.Authorize(route, r.Header.Get("Authorization")); err != nil {
		s.stats.Rejected()
		return &requestError{status: http.StatusUnauthorized, err: err}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.stats.Rejected()
		return newRequestError(http.StatusBadRequest, "failed to read request body: %w", err)
	}

	format := s.settings.FormatFor(route)
	fields["format"] = format

	deliveries, err := buildDeliveries(format, body, fields)
	if err != nil {
		s.stats.Rejected()
		return &requestError{status: http.StatusBadRequest, err: err}
	}

	return s.deliver(r.Context(), route, deliveries, fields)
}

func buildDeliveries(format string, body []byte, fields log.Fields) ([]delivery, error) {
	switch format {
	case config.FormatAlertmanager:
		data, err := alertmanager.Decode(body)
		if err != nil {
			return nil, err
		}

		groupFields := log.Fields{"groupKeyHash": utils.Hash(data.GroupKey), "status": data.Status, "receiver": data.Receiver}
		log.WithFields(fields).WithFields(groupFields).WithField("alerts", len(data.Alerts)).Info("Server - Received alert group")

		messages := card.FromAlertmanagerData(*data)
		deliveries := make([]delivery, 0, len(messages))
		for i, message := range messages {
			alert := data.Alerts[i]
			fingerprint := alert.Fingerprint
			if fingerprint == "" {
				fingerprint = utils.Fingerprint(alert.Labels)
			}
			deliveries = append(deliveries, delivery{
				message: message,
				fields:  log.Fields{"alert": i + 1, "fingerprint": fingerprint, "alertStatus": alert.Status},
			})
		}
		return deliveries, nil

	default:
		alert, err := generic.Decode(body)
		if err != nil {
			return nil, err
		}

		log.WithFields(fields).WithFields(log.Fields{"title": alert.Title, "severity": alert.Severity}).Info("Server - Received alert")
		return []delivery{{message: card.FromGenericAlert(*alert), fields: log.Fields{"alert": 1}}}, nil
	}
}

// deliver sends the cards one by one and stops at the first failure. Cards sent
// before the failure are not recalled.
func (s *Server) deliver(ctx context.Context, route config.Route, deliveries []delivery, fields log.Fields) *requestError {
	for i, d := range deliveries {
		_, err := s.forwarder.Forward(ctx, route.TeamsURL, d.message)
		if err != nil {
			s.stats.Failed()
			log.WithFields(fields).WithFields(d.fields).WithFields(log.Fields{
				"delivered": i,
				"skipped":   len(deliveries) - i - 1,
				"error":     err.Error(),
			}).Error("Server - Could not forward the card to Teams")

			var deliveryErr *forwarder.DeliveryError
			if errors.As(err, &deliveryErr) {
				return newRequestError(deliveryErr.StatusCode, "failed to send Teams webhook: %s", deliveryErr.Body)
			}
			return newRequestError(http.StatusInternalServerError, "failed to send Teams webhook: %w", err)
		}

		s.stats.Delivered()
		log.WithFields(fields).WithFields(d.fields).Debug("Server - Card forwarded to Teams")
	}

	return nil
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("Server - Failed to write ping response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, reqErr *requestError, fields log.Fields) {
	message := reqErr.Error()
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}

	entry := log.WithFields(fields).WithFields(log.Fields{"status": reqErr.status, "error": message})
	if reqErr.status < 500 {
		entry.Info("Server - Request failed")
	} else {
		entry.Error("Server - Request failed")
	}

	s.writeResponse(w, reqErr.status, utils.Response{Error: true, Message: message})
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, resp utils.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithFields(log.Fields{"error": err.Error()}).Error("Server - Failed to write response")
	}
}

// Run serves HTTP and runs the stats job until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	c := cron.New()
	if err := s.statsJob.Schedule(c, s.settings.StatsSchedule); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	listenAddress := fmt.Sprintf(":%s", s.settings.Port)
	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.WithFields(log.Fields{"listenAddress": listenAddress, "routes": s.routes.Keys(), "format": s.settings.PayloadFormat}).Info("Server - Starting webhook")

	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	errg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithFields(log.Fields{"error": err.Error()}).Error("Server - Failed to shut down http server")
		}
		return nil
	})

	return errg.Wait()
}
