package alertmanager

import (
	"encoding/json"
	"fmt"
	"github.com/prometheus/alertmanager/template"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/utils"
)

// Data is the alert group Alertmanager posts to webhook receivers.
type Data struct {
	Version         string          `json:"version"`
	GroupKey        string          `json:"groupKey"`
	TruncatedAlerts int             `json:"truncatedAlerts"`
	Receiver        string          `json:"receiver"`
	Status          string          `json:"status"`
	Alerts          template.Alerts `json:"alerts"`

	GroupLabels       template.KV `json:"groupLabels"`
	CommonLabels      template.KV `json:"commonLabels"`
	CommonAnnotations template.KV `json:"commonAnnotations"`

	ExternalURL string `json:"externalURL"`
}

var (
	requiredGroupFields = []string{"receiver", "status", "alerts", "externalURL", "version", "groupKey"}
	requiredAlertFields = []string{"status", "labels", "annotations", "startsAt", "endsAt"}
)

// Decode parses body into Data, rejecting groups or alerts with missing or mistyped fields.
func Decode(body []byte) (*Data, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("could not parse the request body: %w", err)
	}

	if err := utils.RequireKeys(fields, "", requiredGroupFields...); err != nil {
		return nil, err
	}

	rawAlerts := []map[string]json.RawMessage{}
	if err := json.Unmarshal(fields["alerts"], &rawAlerts); err != nil {
		return nil, fmt.Errorf("alerts must be a list of objects: %w", err)
	}

	for i, rawAlert := range rawAlerts {
		if err := utils.RequireKeys(rawAlert, fmt.Sprintf("alerts[%d].", i), requiredAlertFields...); err != nil {
			return nil, err
		}
	}

	data := Data{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("could not parse the request body: %w", err)
	}

	return &data, nil
}
