package file_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpbank/check_fcswitch/transport/file"
)

func newBuf(t *testing.T) (*bytes.Buffer, *file.WriterTransport) {
	t.Helper()
	var buf bytes.Buffer
	tr := file.New(file.Config{Writer: &buf}, nil)
	return &buf, tr
}

func TestSend_WritesLineAndNewline(t *testing.T) {
	buf, tr := newBuf(t)

	require.NoError(t, tr.Send([]byte("FCSWITCH OK - Switch is healthy.")))
	assert.Equal(t, "FCSWITCH OK - Switch is healthy.\n", buf.String())
}

func TestSend_OnlyOnce(t *testing.T) {
	buf, tr := newBuf(t)

	require.NoError(t, tr.Send([]byte("first")))
	assert.ErrorIs(t, tr.Send([]byte("second")), file.ErrAlreadySent)
	assert.Equal(t, "first\n", buf.String())
}

func TestSend_CustomNewline(t *testing.T) {
	var buf bytes.Buffer
	tr := file.New(file.Config{Writer: &buf, Newline: "\r\n"}, nil)

	require.NoError(t, tr.Send([]byte("line")))
	assert.Equal(t, "line\r\n", buf.String())
}

// countingWriter records how many Write calls it received.
type countingWriter struct {
	bytes.Buffer
	calls int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.Buffer.Write(p)
}

func TestSend_SingleWrite(t *testing.T) {
	var w countingWriter
	tr := file.New(file.Config{Writer: &w}, nil)

	require.NoError(t, tr.Send([]byte("line")))
	assert.Equal(t, 1, w.calls)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestSend_WriteError(t *testing.T) {
	tr := file.New(file.Config{Writer: failWriter{}}, nil)

	err := tr.Send([]byte("line"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestNew_DefaultWriterIsStdout(t *testing.T) {
	assert.NotNil(t, file.New(file.Config{}, nil))
}

func TestClose_ReturnsNil(t *testing.T) {
	_, tr := newBuf(t)
	assert.NoError(t, tr.Close())
}
