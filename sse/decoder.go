// Package sse decodes server-sent event streams into per-event data payloads.
//
// The decoder recognizes the framing conventions used by streaming inference
// APIs (a "data:" field per line, events terminated by a blank line, ":"
// comment lines used as keep-alives) and hands each event's payload to the
// caller as an opaque string. Interpreting the payload, including the "[DONE]"
// terminator, belongs to the caller.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// Decoder reads SSE events from an underlying reader one at a time.
// It is forward-only and not safe for concurrent use.
type Decoder struct {
	r    *bufio.Reader
	data []string
}

// NewDecoder wraps r in an event decoder. The reader is typically a streaming
// HTTP response body; the decoder does not close it.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the data payload of the next event. Multiple data fields within
// one event are joined with "\n" per the SSE specification. Events carrying no
// data field (comments, bare "event:" or "id:" lines) are skipped. Next
// returns io.EOF once the underlying reader is exhausted; any other error is a
// framing or transport fault and the decoder must not be used afterwards.
func (d *Decoder) Next() (string, error) {
	for {
		line, err := d.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}

		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			// Blank line terminates the current event.
			if len(d.data) > 0 {
				out := strings.Join(d.data, "\n")
				d.data = d.data[:0]
				return out, nil
			}

		case strings.HasPrefix(line, ":"):
			// Comment / keep-alive line.

		case strings.HasPrefix(line, "data:"):
			d.data = append(d.data, trimFieldValue(line[len("data:"):]))

			// Other fields ("event:", "id:", "retry:") carry no payload for
			// our purposes and are ignored.
		}

		if err == io.EOF {
			// Stream ended without a trailing blank line: yield the
			// in-progress event before reporting EOF.
			if len(d.data) > 0 {
				out := strings.Join(d.data, "\n")
				d.data = d.data[:0]
				return out, nil
			}
			return "", io.EOF
		}
	}
}

// trimFieldValue strips the single optional space after the field colon.
func trimFieldValue(v string) string {
	return strings.TrimPrefix(v, " ")
}
