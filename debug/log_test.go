package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEveryCountsPerMessage(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 6; i++ {
		LogEvery(3, "every", "port %s", "a")
	}
	LogEvery(3, "every", "port %s", "b")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "port a"))
	assert.Contains(t, out, "port a (count=6)")
	assert.NotContains(t, out, "port b")
}

func TestDisabledLogsNothing(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	LogEvery(1, "off", "dropped")
	Log("off", "dropped")
}
