package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EnvDebug turns on debug logging without the --debug flag.
const EnvDebug = "DELETER_DEBUG"

// Setup points the standard logrus logger at w. Only warnings and errors
// are shown unless debug is set.
func Setup(w io.Writer, debug bool) {
	if w == nil {
		w = os.Stderr
	}
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    true,
	})

	level := logrus.WarnLevel
	if debug || os.Getenv(EnvDebug) != "" {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}
