// Package logging holds the process-wide zap logger.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu         sync.RWMutex
	log        *zap.SugaredLogger
	baseLogger *zap.Logger
)

// Init builds a production logger, or a development one when debug is set.
func Init(debug bool) error {
	var (
		zapLogger *zap.Logger
		err       error
	)
	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	Set(zapLogger)
	return nil
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = l
	log = l.Sugar()
}

func Get() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}
	// not initialised yet
	fallback, err := zap.NewProduction()
	if err != nil {
		fallback = zap.NewNop()
	}
	Set(fallback)
	return fallback.Sugar()
}

func Zap() *zap.Logger {
	Get()
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger
}

func Sync() {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
