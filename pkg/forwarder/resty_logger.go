package forwarder

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"regexp"
)

// webhook URLs embed their credentials, so they never reach the log.
var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

type restyLogger struct {
	entry *log.Entry
}

func redact(format string, args ...interface{}) string {
	return urlPattern.ReplaceAllString(fmt.Sprintf(format, args...), "[redacted-url]")
}

func (l *restyLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debug(redact(format, args...))
}

func (l *restyLogger) Warnf(format string, args ...interface{}) {
	l.entry.Info(redact(format, args...))
}

// Errorf is logged as info, the caller decides whether a failed delivery is an error.
func (l *restyLogger) Errorf(format string, args ...interface{}) {
	l.entry.Info(redact(format, args...))
}
