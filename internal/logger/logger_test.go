package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	WithError(errors.New("boom")).Info("something happened", "job_id", "42")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "something happened", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "42", entry["job_id"])
}

func TestInitWithWriter_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestHTTPLog_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	HTTPLog("GET", "/api/v1/applications", 500, 12*time.Millisecond, 10, "127.0.0.1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, float64(500), entry["status"])
	assert.Equal(t, "/api/v1/applications", entry["path"])
}
