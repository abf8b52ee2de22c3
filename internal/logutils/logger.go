package logutils

import (
	"github.com/sirupsen/logrus"
)

// Log is the logger used across the service.
var Log = logrus.New()

// Fields is the type of logrus.Fields.
type Fields = logrus.Fields

//nolint:gochecknoinits // This is the only place where the formatter is set.
func init() {
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	Log.SetReportCaller(true)
}

// SetLevel parses level and applies it. Unknown levels leave the current
// level in place and are reported.
func SetLevel(level string) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithError(err).Warn("unknown log level, keeping ", Log.GetLevel())
		return
	}
	Log.SetLevel(lvl)
}
