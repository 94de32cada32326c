package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the process logger. RECIPEHUB_ENV=production selects the JSON
// production config; anything else gets the console development config.
func Init() {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("RECIPEHUB_ENV") == "production" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		log = l
		zap.ReplaceGlobals(l)
	})
}

// L returns the process logger, initializing it on first use.
func L() *zap.Logger {
	Init()
	return log
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are
// ignored.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
