package ops

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpNames(t *testing.T) {
	want := []string{"pa", "pb", "sa", "sb", "ss", "ra", "rb", "rr", "rra", "rrb", "rrr"}
	require.Len(t, All, len(want))
	for i, op := range All {
		assert.Equal(t, want[i], op.String())
		parsed, err := Parse(want[i])
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
	assert.Equal(t, "Op(42)", Op(42).String())
	assert.False(t, Op(42).Valid())
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("PA")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOp))
}

func TestInverseIsInvolution(t *testing.T) {
	for _, op := range All {
		assert.Equal(t, op, op.Inverse().Inverse(), op.String())
		a, b := op.Touches()
		ia, ib := op.Inverse().Touches()
		assert.Equal(t, a, ia, op.String())
		assert.Equal(t, b, ib, op.String())
	}
	assert.Equal(t, RRA, RA.Inverse())
	assert.Equal(t, PB, PA.Inverse())
	assert.Equal(t, SS, SS.Inverse())
}

func TestWriteRead(t *testing.T) {
	log := []Op{PB, PB, RA, RRA, SA, PA, PA}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, log))
	assert.Equal(t, "pb\npb\nra\nrra\nsa\npa\npa\n", buf.String())

	got, err := Read(strings.NewReader("pb\n  pb \n\nra\nrra\nsa\npa\npa"))
	require.NoError(t, err)
	assert.Equal(t, log, got)
	assert.Equal(t, "pb pb ra rra sa pa pa", Format(log, " "))
}

func TestReadReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("pa\nswap\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.True(t, errors.Is(err, ErrUnknownOp))
}

func TestTextMarshaling(t *testing.T) {
	text, err := RRR.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rrr", string(text))

	var op Op
	require.NoError(t, op.UnmarshalText([]byte("sb")))
	assert.Equal(t, SB, op)
	assert.Error(t, op.UnmarshalText([]byte("xx")))
	_, err = Op(99).MarshalText()
	assert.Error(t, err)
}
