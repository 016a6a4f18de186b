package alertmanager

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

const groupBody = `{
  "version": "4",
  "groupKey": "{}:{alertname=\"DiskFull\"}",
  "truncatedAlerts": 0,
  "status": "firing",
  "receiver": "teams",
  "groupLabels": {"alertname": "DiskFull"},
  "commonLabels": {"alertname": "DiskFull"},
  "commonAnnotations": {},
  "externalURL": "http://alertmanager:9093",
  "alerts": [
    {
      "status": "firing",
      "labels": {"alertname": "DiskFull", "severity": "critical", "instance": "db-1"},
      "annotations": {"summary": "Disk is full"},
      "startsAt": "2021-03-18T23:27:45.720Z",
      "endsAt": "0001-01-01T00:00:00Z",
      "generatorURL": "http://prometheus/graph?g0.expr=disk",
      "fingerprint": "c0ffee"
    },
    {
      "status": "resolved",
      "labels": {"alertname": "DiskFull", "instance": "db-2"},
      "annotations": {},
      "startsAt": "2021-03-18T23:27:45.720Z",
      "endsAt": "2021-03-18T23:37:45.720Z"
    }
  ]
}`

func TestDecode(t *testing.T) {
	data, err := Decode([]byte(groupBody))
	require.NoError(t, err)

	assert.Equal(t, "4", data.Version)
	assert.Equal(t, "teams", data.Receiver)
	assert.Equal(t, "firing", data.Status)
	assert.Equal(t, "http://alertmanager:9093", data.ExternalURL)
	assert.Equal(t, "DiskFull", data.GroupLabels["alertname"])
	require.Len(t, data.Alerts, 2)

	first := data.Alerts[0]
	assert.Equal(t, "critical", first.Labels["severity"])
	assert.Equal(t, "Disk is full", first.Annotations["summary"])
	assert.Equal(t, "http://prometheus/graph?g0.expr=disk", first.GeneratorURL)
	assert.Equal(t, time.Date(2021, 3, 18, 23, 27, 45, 720000000, time.UTC), first.StartsAt.UTC())

	second := data.Alerts[1]
	assert.Equal(t, "resolved", second.Status)
	assert.Empty(t, second.GeneratorURL)
}

func TestDecodeEmptyAlertList(t *testing.T) {
	data, err := Decode([]byte(`{"version":"4","groupKey":"k","status":"firing","receiver":"r","externalURL":"http://am","alerts":[]}`))
	require.NoError(t, err)
	assert.Empty(t, data.Alerts)
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]struct {
		body string
		msg  string
	}{
		"not json": {
			body: `{"version":`,
		},
		"missing group key": {
			body: `{"version":"4","status":"firing","receiver":"r","externalURL":"http://am","alerts":[]}`,
			msg:  "groupKey",
		},
		"alerts not a list": {
			body: `{"version":"4","groupKey":"k","status":"firing","receiver":"r","externalURL":"http://am","alerts":{}}`,
			msg:  "alerts must be a list",
		},
		"alert missing labels": {
			body: `{"version":"4","groupKey":"k","status":"firing","receiver":"r","externalURL":"http://am","alerts":[{"status":"firing","annotations":{},"startsAt":"2021-03-18T23:27:45Z","endsAt":"0001-01-01T00:00:00Z"}]}`,
			msg:  "alerts[0].labels",
		},
		"label not a string": {
			body: `{"version":"4","groupKey":"k","status":"firing","receiver":"r","externalURL":"http://am","alerts":[{"status":"firing","labels":{"port":9100},"annotations":{},"startsAt":"2021-03-18T23:27:45Z","endsAt":"0001-01-01T00:00:00Z"}]}`,
		},
		"bad start time": {
			body: `{"version":"4","groupKey":"k","status":"firing","receiver":"r","externalURL":"http://am","alerts":[{"status":"firing","labels":{},"annotations":{},"startsAt":"yesterday","endsAt":"0001-01-01T00:00:00Z"}]}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			require.Error(t, err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}
