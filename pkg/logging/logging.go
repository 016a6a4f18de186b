package logging

import (
	"github.com/sirupsen/logrus"
	"github.com/tfindley/prometheus-teams-webhook-forwarder/pkg/utils"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
	"path/filepath"
)

const (
	LogFileName     = "teams-forwarder.log"
	timestampFormat = "2006-01-02 15:04:05.000"
)

// Setup configures logger. With an empty folder it writes to stdout through the
// prefixed formatter; otherwise to a rotating file in folder.
func Setup(logger *logrus.Logger, level logrus.Level, folder string) io.Closer {
	logger.SetLevel(level)

	if folder == "" {
		logger.SetFormatter(&prefixed.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
		logger.SetOutput(os.Stdout)
		return nopCloser{}
	}

	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(utils.GetLogDir(folder), LogFileName),
		MaxSize:    5,
		MaxBackups: 5,
	}
	logger.SetOutput(logFile)

	return logFile
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
