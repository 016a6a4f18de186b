package utils

import (
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/twmb/murmur3"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const LogFolderName = "teams-forwarder"

// GetLogDir returns the folder log files are written to, creating it when needed.
func GetLogDir(folder string) string {
	logDir := filepath.Join(os.TempDir(), LogFolderName)
	if folder != "" {
		logDir = folder
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		log.WithFields(log.Fields{"path": logDir}).Info("Creating log directory")
		err := os.MkdirAll(logDir, os.ModePerm)
		if err != nil {
			panic(err)
		}
	}

	return logDir
}

// Hash returns a short murmur3 hash of data, used to correlate log lines.
func Hash(data string) string {
	h1, _ := murmur3.SeedSum128(0, 0, []byte(data))
	return fmt.Sprintf("%016x", h1)
}

// Fingerprint hashes a label set independently of map order.
func Fingerprint(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(0xff)
		b.WriteString(labels[k])
		b.WriteByte(0xff)
	}
	return Hash(b.String())
}

// RequireKeys fails when any of keys is absent from fields or explicitly null.
func RequireKeys(fields map[string]json.RawMessage, prefix string, keys ...string) error {
	var missing []string
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || string(value) == "null" {
			missing = append(missing, prefix+key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValueOrDefault returns values[key], or fallback when the key is absent.
func ValueOrDefault(values map[string]string, key string, fallback string) string {
	if v, ok := values[key]; ok {
		return v
	}
	return fallback
}
