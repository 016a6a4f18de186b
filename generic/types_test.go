package generic

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDecode(t *testing.T) {
	alert, err := Decode([]byte(`{"title":"Disk Full","severity":"Critical","instance":"db-1","runbook_url":"http://x/runbook","extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, Alert{Title: "Disk Full", Severity: "Critical", Instance: "db-1", RunbookURL: "http://x/runbook"}, *alert)
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"not json":        `title=Disk Full`,
		"not an object":   `["Disk Full"]`,
		"missing field":   `{"title":"Disk Full","severity":"Critical","instance":"db-1"}`,
		"null field":      `{"title":"Disk Full","severity":null,"instance":"db-1","runbook_url":"http://x"}`,
		"mistyped field":  `{"title":"Disk Full","severity":3,"instance":"db-1","runbook_url":"http://x"}`,
		"empty object":    `{}`,
		"nested instance": `{"title":"Disk Full","severity":"Critical","instance":{"name":"db-1"},"runbook_url":"http://x"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			assert.Error(t, err)
		})
	}
}
