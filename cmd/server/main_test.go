package main

import (
	"bytes"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// recordingSyncer captures log output and whether it was flushed
type recordingSyncer struct {
	bytes.Buffer
	synced bool
}

func (r *recordingSyncer) Sync() error {
	r.synced = true
	return nil
}

func newRecordingLogger() (*zap.Logger, *recordingSyncer) {
	sink := &recordingSyncer{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.InfoLevel)
	return zap.New(core), sink
}

func TestFinish(t *testing.T) {
	t.Run("error is logged and flushed", func(t *testing.T) {
		logger, sink := newRecordingLogger()

		code := finish(logger, errors.New("listen: address already in use"))

		assert.Equal(t, 1, code)
		assert.True(t, sink.synced, "logger must be synced before exit")
		assert.Contains(t, sink.String(), "Server stopped with error")
		assert.Contains(t, sink.String(), "address already in use")
	})

	t.Run("clean shutdown", func(t *testing.T) {
		logger, sink := newRecordingLogger()

		code := finish(logger, nil)

		assert.Equal(t, 0, code)
		assert.True(t, sink.synced)
		assert.Empty(t, sink.String())
	})
}
