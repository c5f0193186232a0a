package midi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"apc-control/debug"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	debug.EnableWriter(&buf)
	t.Cleanup(debug.Disable)
	return &buf
}

func TestPortSendEncodesAndCounts(t *testing.T) {
	logs := captureLog(t)
	var sent []gomidi.Message
	p := &Port{name: "send-count", send: func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	}}

	require.NoError(t, p.Send(NoteOnEvent(56, uint8(Red))))
	require.NoError(t, p.Send(CCEvent(19, 64)))
	assert.Equal(t, []byte{NoteOn, 56, 3}, sent[0].Bytes())
	assert.Equal(t, []byte{CC, 19, 64}, sent[1].Bytes())
	assert.NotContains(t, logs.String(), "send-count")

	for i := 2; i < 500; i++ {
		require.NoError(t, p.Send(NoteOnEvent(0, 0)))
	}
	assert.Contains(t, logs.String(), "send-count (count=500)")
}

func TestPortCloseBlanksAndReportsFailure(t *testing.T) {
	logs := captureLog(t)
	gone := errors.New("device gone")
	var blanked []uint8
	p := &Port{name: "APC MINI", send: func(msg gomidi.Message) error {
		raw := msg.Bytes()
		blanked = append(blanked, raw[1])
		if raw[1] >= 10 {
			return gone
		}
		return nil
	}}

	err := p.Close()
	assert.ErrorIs(t, err, gone)
	assert.Len(t, blanked, ButtonShift+1, "keeps blanking after a failed write")
	assert.Contains(t, logs.String(), "APC MINI: blank LEDs")
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("blank LEDs")))

	ok := &Port{name: "ok", send: func(gomidi.Message) error { return nil }}
	assert.NoError(t, ok.Close())
}
