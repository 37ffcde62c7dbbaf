package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	once  sync.Once
	sugar *zap.SugaredLogger
)

func build() {
	var base *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		base = zap.NewNop()
	}
	sugar = base.Sugar()
}

// S returns the process-wide sugared logger.
func S() *zap.SugaredLogger {
	once.Do(build)
	return sugar
}

// SW returns a sugared logger with extra key-value context attached.
func SW(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

func Sync() {
	_ = S().Sync()
}
