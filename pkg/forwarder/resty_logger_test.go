package forwarder

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRestyLoggerRedactsURLs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := &restyLogger{entry: logrus.NewEntry(logger)}

	l.Errorf("%v, Attempt %v", `Post "https://example.webhook.office.com/webhookb2/SECRET": dial tcp: refused`, 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, `Post "[redacted-url]": dial tcp: refused, Attempt 1`, hook.LastEntry().Message)

	l.Debugf("sending to %s", "http://127.0.0.1:9393/hook")
	assert.Equal(t, "sending to [redacted-url]", hook.LastEntry().Message)
}
