package card

import (
	"fmt"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/generic"
)

// FromGenericAlert renders title, severity, instance and runbook link, in that order.
func FromGenericAlert(alert generic.Alert) Message {
	title := textBlock(fmt.Sprintf("🚨 Alert: %s", alert.Title))
	title.Size = sizeLarge
	title.Weight = weightBolder

	return newMessage(
		title,
		textBlock(fmt.Sprintf("📌 Severity: %s", alert.Severity)),
		textBlock(fmt.Sprintf("🖥️ Instance: %s", alert.Instance)),
		textBlock(fmt.Sprintf("🔗 [View Runbook](%s)", alert.RunbookURL)),
	)
}
