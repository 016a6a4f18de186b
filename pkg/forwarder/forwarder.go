package forwarder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/card"
	neturl "net/url"
	"time"
)

// Result is what the destination answered.
type Result struct {
	StatusCode int
	Body       string
}

// DeliveryError is returned when the destination answers with a status >= 400.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("destination returned status %d: %s", e.StatusCode, e.Body)
}

// Forwarder posts cards to Teams incoming webhooks. It sends each card exactly once.
type Forwarder struct {
	client *resty.Client
}

// New returns a Forwarder. A zero timeout leaves the transport default in place.
func New(timeout time.Duration) *Forwarder {
	client := resty.New().
		SetRetryCount(0).
		SetTimeout(timeout).
		SetLogger(&restyLogger{entry: log.WithFields(log.Fields{"component": "forwarder"})})

	return &Forwarder{client: client}
}

func (f *Forwarder) Forward(ctx context.Context, url string, message card.Message) (*Result, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal card: %w", err)
	}

	response, err := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		// url.Error carries the destination URL, which holds the webhook credentials
		var urlErr *neturl.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("POST failed with error: %w", err)
	}

	result := &Result{
		StatusCode: response.StatusCode(),
		Body:       response.String(),
	}
	log.WithFields(log.Fields{"status": result.StatusCode, "duration": response.Time().String()}).Debug("Forwarder - Destination response")

	if result.StatusCode >= 400 {
		return result, &DeliveryError{StatusCode: result.StatusCode, Body: result.Body}
	}

	return result, nil
}
