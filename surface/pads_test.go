package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/midi"
)

type recorder struct {
	sent []midi.Event
	err  error
}

func (r *recorder) Send(ev midi.Event) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, ev)
	return nil
}

func TestActivateClearsOwnedRanges(t *testing.T) {
	rec := &recorder{}
	p := New(rec, ModeRanges(8)...)
	p.Activate()

	pending := p.Pending()
	require.Len(t, pending, 64+8+8)
	for _, ev := range pending {
		assert.Equal(t, midi.NoteOn, ev.Status)
		assert.Equal(t, uint8(midi.Off), ev.Data2)
	}
	assert.Equal(t, uint8(0), pending[0].Data1)
	assert.Equal(t, uint8(64), pending[64].Data1)
	assert.Equal(t, uint8(82), pending[72].Data1)
}

func TestActivateThenDeactivateLeavesQueueEmpty(t *testing.T) {
	rec := &recorder{}
	p := New(rec, ModeRanges(8)...)
	p.Activate()
	p.Deactivate()

	assert.Empty(t, p.Pending())
	require.NoError(t, p.Flush())
	assert.Empty(t, rec.sent)
}

func TestRenderWhileInactiveIsDropped(t *testing.T) {
	rec := &recorder{}
	p := New(rec)
	p.Render(10, midi.Green)
	assert.Empty(t, p.Pending())

	p.Activate()
	p.Render(10, midi.Green)
	p.RenderOnOff(11, true)
	p.RenderOnOff(12, false)
	assert.Equal(t, []midi.Event{
		midi.NoteOnEvent(10, uint8(midi.Green)),
		midi.NoteOnEvent(11, uint8(midi.Green)),
		midi.NoteOnEvent(12, uint8(midi.Off)),
	}, p.Pending())
}

func TestFlushIsIdempotent(t *testing.T) {
	rec := &recorder{}
	p := New(rec)
	p.Activate()
	p.Render(1, midi.Red)
	p.Render(2, midi.Orange)

	require.NoError(t, p.Flush())
	require.Len(t, rec.sent, 2)
	assert.Equal(t, uint8(1), rec.sent[0].Data1)
	assert.Equal(t, uint8(2), rec.sent[1].Data1)

	require.NoError(t, p.Flush())
	assert.Len(t, rec.sent, 2)
}

func TestFlushErrorDropsBatch(t *testing.T) {
	rec := &recorder{err: errors.New("unplugged")}
	p := New(rec)
	p.Activate()
	p.Render(1, midi.Red)

	assert.Error(t, p.Flush())
	assert.Empty(t, p.Pending())
}

func TestShiftIsPlainFlag(t *testing.T) {
	p := New(&recorder{})
	p.Activate()
	before := len(p.Pending())
	p.SetShift(true)
	assert.True(t, p.Shift())
	assert.Len(t, p.Pending(), before)
}
