package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestPrintln(t *testing.T) {
	u, out, errOut := newTestUI()
	u.Println("Environment:", "testing")
	assert.Equal(t, "Environment: testing\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWarning(t *testing.T) {
	u, out, errOut := newTestUI()
	u.Warning("skipped %s", "testing-2024-03-vbeta")
	assert.Contains(t, errOut.String(), "skipped testing-2024-03-vbeta")
	assert.Empty(t, out.String())
}

func TestFailure(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Failure(errors.New("push rejected"))
	assert.Contains(t, errOut.String(), "Command failed:")
	assert.Contains(t, errOut.String(), "push rejected")
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Tag", "Sequence"})
	require.NoError(t, table.Append([]string{"testing-2024-03-v2", "2"}))
	require.NoError(t, table.Render())
	assert.Contains(t, out.String(), "testing-2024-03-v2")
}
