package test

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

// LogHandler is the log handler for the unittests; the logs are discarded
// unless `TALLY_LOG_HANDLER=stdout` is set.
func LogHandler() logging.Handler {
	handlers := map[string]func() logging.Handler{
		"null": logging.DiscardHandler,
		"stdout": func() logging.Handler {
			return logging.CallerStackHandler("%+v", logging.StdoutHandler)
		},
	}

	handler := handlers["null"]
	if h, ok := handlers[os.Getenv("TALLY_LOG_HANDLER")]; ok {
		handler = h
	}

	return handler()
}
