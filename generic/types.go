package generic

import (
	"encoding/json"
	"fmt"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/utils"
)

// Alert is the flat payload sent by generic alerting clients.
type Alert struct {
	Title      string `json:"title"`
	Severity   string `json:"severity"`
	Instance   string `json:"instance"`
	RunbookURL string `json:"runbook_url"`
}

var requiredFields = []string{"title", "severity", "instance", "runbook_url"}

// Decode parses body into an Alert. All four fields must be present and be strings.
func Decode(body []byte) (*Alert, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("could not parse the request body: %w", err)
	}

	if err := utils.RequireKeys(fields, "", requiredFields...); err != nil {
		return nil, err
	}

	alert := Alert{}
	if err := json.Unmarshal(body, &alert); err != nil {
		return nil, fmt.Errorf("could not parse the request body: %w", err)
	}

	return &alert, nil
}
