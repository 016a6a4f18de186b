package card

import (
	"fmt"
	"github.com/prometheus/alertmanager/template"
	"github.com/prometheus/common/model"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/alertmanager"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/utils"
	"strings"
	"time"
)

const timeFormat = "2006-01-02 15:04:05 MST"

// Fallbacks for labels and annotations an alert does not carry.
const (
	DefaultAlertName   = "unknown"
	DefaultSeverity    = "unknown"
	DefaultInstance    = "unknown"
	DefaultJob         = "unknown"
	DefaultCluster     = "N/A"
	DefaultEnvironment = "N/A"
	DefaultHost        = "unknown"
	DefaultSummary     = "No summary"
	DefaultDescription = "No description"
)

// FromAlertmanagerData builds one card per alert, in input order.
func FromAlertmanagerData(data alertmanager.Data) []Message {
	messages := make([]Message, 0, len(data.Alerts))
	for _, alert := range data.Alerts {
		messages = append(messages, FromAlertmanagerAlert(alert, data.ExternalURL))
	}
	return messages
}

// FromAlertmanagerAlert builds the card of a single alert. The link points at the
// alert's generator, or at externalURL when the alert has none.
func FromAlertmanagerAlert(alert template.Alert, externalURL string) Message {
	labels := alert.Labels
	annotations := alert.Annotations

	link := alert.GeneratorURL
	if link == "" {
		link = externalURL
	}

	status := model.AlertStatus(alert.Status)
	emoji, color := "🚨", colorAttention
	if status == model.AlertResolved {
		emoji, color = "✅", colorGood
	}

	header := textBlock(fmt.Sprintf("%s [%s] %s", emoji, strings.ToUpper(alert.Status), utils.ValueOrDefault(labels, "alertname", DefaultAlertName)))
	header.Size = sizeLarge
	header.Weight = weightBolder
	header.Color = color
	header.Wrap = true

	facts := []Fact{
		{Title: "Severity", Value: utils.ValueOrDefault(labels, "severity", DefaultSeverity)},
		{Title: "Instance", Value: utils.ValueOrDefault(labels, "instance", DefaultInstance)},
		{Title: "Job", Value: utils.ValueOrDefault(labels, "job", DefaultJob)},
		{Title: "Cluster", Value: utils.ValueOrDefault(labels, "cluster", DefaultCluster)},
		{Title: "Environment", Value: utils.ValueOrDefault(labels, "environment", DefaultEnvironment)},
		{Title: "Host", Value: utils.ValueOrDefault(labels, "host", DefaultHost)},
		{Title: "Started", Value: formatTime(alert.StartsAt)},
	}
	if status == model.AlertResolved && !alert.EndsAt.IsZero() {
		facts = append(facts, Fact{Title: "Ended", Value: formatTime(alert.EndsAt)})
	}

	summary := textBlock(fmt.Sprintf("📝 %s", utils.ValueOrDefault(annotations, "summary", DefaultSummary)))
	summary.Weight = weightBolder
	summary.Wrap = true

	description := textBlock(utils.ValueOrDefault(annotations, "description", DefaultDescription))
	description.Wrap = true

	return newMessage(
		header,
		Element{Type: FactSetType, Facts: facts},
		summary,
		description,
		textBlock(fmt.Sprintf("🔗 [View Alert](%s)", link)),
	)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(timeFormat)
}
