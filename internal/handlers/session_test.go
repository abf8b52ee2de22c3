package handlers

import (
	"errors"
	"testing"

	"project-tracker/internal/logutils"

	"github.com/gin-contrib/sessions"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSession struct {
	sessions.Session
	err error
}

func (s failingSession) Save() error { return s.err }

func TestSaveSessionLogsFailure(t *testing.T) {
	hook := test.NewLocal(logutils.Log)
	t.Cleanup(hook.Reset)

	errStore := errors.New("cookie too large")
	saveSession(failingSession{err: errStore}, 7)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "failed to save session", entry.Message)
	assert.Equal(t, errStore, entry.Data[logrus.ErrorKey])
	assert.Equal(t, uint(7), entry.Data["user_id"])

	hook.Reset()
	saveSession(failingSession{}, 7)
	assert.Nil(t, hook.LastEntry())
}
