package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var prod bytes.Buffer
	NewWithWriter("prod", &prod).Info("charged", "user_id", 1)
	NewWithWriter("prod", &prod).Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(prod.Bytes(), &line))
	assert.Equal(t, "charged", line["msg"])
	assert.Equal(t, float64(1), line["user_id"])

	var dev bytes.Buffer
	NewWithWriter("dev", &dev).Debug("visible", "k", "v")
	assert.Contains(t, dev.String(), "msg=visible")
	assert.Contains(t, dev.String(), "k=v")
}
