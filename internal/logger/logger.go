package logger

import (
	"os"

	"github.com/Domenick1991/sporthub/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger from cfg and returns it.
func Setup(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.WithError(err).Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
