package sse_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waferscale/cerebras-go/sse"
)

func drain(t *testing.T, d *sse.Decoder) []string {
	t.Helper()
	var out []string
	for {
		data, err := d.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, data)
	}
}

func TestDecoder_SingleEvent(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("data: hello\n\n"))
	assert.Equal(t, []string{"hello"}, drain(t, d))
}

func TestDecoder_MultipleEvents(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("data: one\n\ndata: two\n\ndata: three\n\n"))
	assert.Equal(t, []string{"one", "two", "three"}, drain(t, d))
}

func TestDecoder_MultiDataFieldsJoinedWithNewline(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("data: line1\ndata: line2\n\n"))
	assert.Equal(t, []string{"line1\nline2"}, drain(t, d))
}

func TestDecoder_CRLFLineEndings(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("data: hello\r\n\r\ndata: world\r\n\r\n"))
	assert.Equal(t, []string{"hello", "world"}, drain(t, d))
}

func TestDecoder_SkipsComments(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader(": keep-alive\n\ndata: payload\n\n: another\n\n"))
	assert.Equal(t, []string{"payload"}, drain(t, d))
}

func TestDecoder_IgnoresNonDataFields(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("event: message\nid: 42\nretry: 1000\ndata: payload\n\n"))
	assert.Equal(t, []string{"payload"}, drain(t, d))
}

func TestDecoder_NoSpaceAfterColon(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("data:payload\n\n"))
	assert.Equal(t, []string{"payload"}, drain(t, d))
}

func TestDecoder_PreservesInteriorSpaces(t *testing.T) {
	// Only the single space after the colon is stripped.
	d := sse.NewDecoder(strings.NewReader("data:  padded\n\n"))
	assert.Equal(t, []string{" padded"}, drain(t, d))
}

func TestDecoder_UnterminatedFinalEvent(t *testing.T) {
	// Stream ends without a trailing blank line; the in-progress event is
	// still yielded before EOF.
	d := sse.NewDecoder(strings.NewReader("data: first\n\ndata: last"))
	assert.Equal(t, []string{"first", "last"}, drain(t, d))
}

func TestDecoder_EmptyStream(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader(""))
	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDecoder_BlankLinesOnly(t *testing.T) {
	d := sse.NewDecoder(strings.NewReader("\n\n\n"))
	_, err := d.Next()
	assert.Equal(t, io.EOF, err)
}

type failingReader struct {
	r   io.Reader
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, f.err
	}
	return n, err
}

func TestDecoder_PropagatesReadError(t *testing.T) {
	boom := io.ErrUnexpectedEOF
	d := sse.NewDecoder(&failingReader{r: strings.NewReader("data: ok\n\n"), err: boom})

	data, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "ok", data)

	_, err = d.Next()
	assert.Equal(t, boom, err)
}
