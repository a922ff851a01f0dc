package testutil

import (
	"fmt"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// SetupLogger sends the standard logger to file at debug level so that skipped rows and
// filter trees end up there instead of in the test output. If COLFILTER_TEST_LOG is set, it
// names the file to use; "stderr" leaves logging on standard error.
func SetupLogger(file string) *log.Logger {
	if env := os.Getenv("COLFILTER_TEST_LOG"); env == "stderr" {
		file = ""
	} else if env != "" {
		file = env
	}

	if file != "" {
		w, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			panic(err)
		}
		fmt.Fprintln(w)
		log.SetOutput(w)
	}
	log.SetLevel(log.DebugLevel)

	log.WithField("pid", os.Getpid()).Info("colfilter tests starting")
	return log.StandardLogger()
}

// RecordLog records the entries logged to the standard logger until t finishes.
func RecordLog(t *testing.T) *test.Hook {
	t.Helper()

	logger := log.StandardLogger()
	hooks := log.LevelHooks{}
	for lvl, hs := range logger.Hooks {
		hooks[lvl] = append([]log.Hook(nil), hs...)
	}
	lvl := logger.GetLevel()

	hook := test.NewLocal(logger)
	logger.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		logger.ReplaceHooks(hooks)
		logger.SetLevel(lvl)
	})
	return hook
}

// Entries returns the recorded entries with the message msg.
func Entries(hook *test.Hook, msg string) []*log.Entry {
	var entries []*log.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == msg {
			entries = append(entries, e)
		}
	}
	return entries
}
