package main

import (
	"testing"

	"abeg-fix/config"
	"abeg-fix/libs"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun_StartupFailureIsReturned(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.Config{
		AppEnv:   "production",
		Store:    config.StoreMemory,
		RedisURL: "not-a-redis-url",
	}

	err := run(cfg, zap.New(core))

	assert.ErrorIs(t, err, libs.ErrSMTPNotConfigured)
	assert.ErrorContains(t, err, "start application")
	assert.Zero(t, logs.FilterMessage("Server starting").Len())
}
