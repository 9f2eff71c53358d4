package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTMLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	tm := NewTMLogger(logger).With("module", "ledger")
	tm.Info("Commit synced", "height", int64(3), "hash", "ABCD")
	tm.Error("Delivery failed", "err", errors.New("boom"), "dangling")
	tm.Debug("debug")

	require.Len(t, hook.Entries, 3)

	info := hook.Entries[0]
	assert.Equal(t, logrus.InfoLevel, info.Level)
	assert.Equal(t, "Commit synced", info.Message)
	assert.Equal(t, logrus.Fields{"module": "ledger", "height": int64(3), "hash": "ABCD"}, info.Data)

	failed := hook.Entries[1]
	assert.Equal(t, logrus.ErrorLevel, failed.Level)
	assert.Equal(t, "boom", failed.Data["err"])
	v, ok := failed.Data["dangling"]
	assert.True(t, ok)
	assert.Nil(t, v)

	assert.Equal(t, logrus.DebugLevel, hook.Entries[2].Level)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = New(&buf, "loud")
	assert.Error(t, err)
}
