package log

import (
	"os"

	"github.com/newsdeck/newsdeck/utils/dotenv"
	"github.com/newsdeck/newsdeck/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// JSON in prod so log collectors can parse fields, plain text elsewhere
	// for readability.
	if os.Getenv("NEWSDECK_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": os.Getenv("NEWSDECK_ENV") != dotenv.ProdEnv},
	)
}
