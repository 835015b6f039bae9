package spinner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerDisabledOffTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(buf)

	assert.False(t, s.Enabled())

	s.Start("exporting")
	s.Update("12 rows")
	s.Stop()
	s.Stop()

	assert.Empty(t, buf.String())
}
