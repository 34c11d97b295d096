package cerebras

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/waferscale/cerebras-go/sse"
)

// sentinel is the event payload marking clean end-of-stream. It is matched
// before JSON decoding and never surfaces to the caller.
const sentinel = "[DONE]"

// chunk is the fragment-extraction capability both streaming wire shapes
// implement. It is what lets one aggregator serve chat deltas and plain-text
// completion deltas without duplicating the fold.
type chunk interface {
	header() (id string, created int64, model string)
	fragments() []fragment
	tokenUsage() *Usage
}

// fragment is one slot's contribution from a single chunk. Nil fields mean
// the chunk carried no new information for that slot.
type fragment struct {
	index  int
	text   *string
	finish *FinishReason
}

// chunkPtr constrains C to a pointer to a decodable chunk type.
type chunkPtr[T any] interface {
	*T
	chunk
}

// stream is the generic pull-based chunk sequence underlying
// ChatCompletionStream and CompletionStream. Single consumer, no internal
// goroutines: every Recv performs one synchronous read from the response
// body, so chunks are delivered in exact wire arrival order.
type stream[T any, C chunkPtr[T]] struct {
	body   io.ReadCloser
	dec    *sse.Decoder
	err    error // sticky terminal state: io.EOF or a transport/framing error
	closed bool
}

func newStream[T any, C chunkPtr[T]](body io.ReadCloser) stream[T, C] {
	return stream[T, C]{body: body, dec: sse.NewDecoder(body)}
}

// Recv returns the next decoded chunk. It returns io.EOF after the terminal
// sentinel or when the stream is closed. Transport and framing failures are
// terminal: once returned, every later Recv repeats them. A decode failure of
// a single payload is not terminal; it is returned for that item only, and
// the caller may keep pulling or stop.
func (s *stream[T, C]) Recv() (C, error) {
	if s.err != nil {
		return nil, s.err
	}

	payload, err := s.dec.Next()
	if err == io.EOF {
		// Server closed without the sentinel. Still a clean end from the
		// caller's perspective; the transport owns truncation detection.
		s.terminate(io.EOF)
		return nil, io.EOF
	}
	if err != nil {
		s.terminate(&Error{
			Op:      "stream",
			Message: "event stream failed",
			Err:     fmt.Errorf("%w: %v", ErrStream, err),
		})
		return nil, s.err
	}

	if strings.TrimSpace(payload) == sentinel {
		s.terminate(io.EOF)
		return nil, io.EOF
	}

	var t T
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return nil, &Error{
			Op:      "stream",
			Message: "malformed chunk payload",
			Err:     fmt.Errorf("%w: %v", ErrDecode, err),
		}
	}
	return C(&t), nil
}

// Close releases the underlying response body. It is safe to call multiple
// times and after exhaustion; the body is closed exactly once on every exit
// path, including early abandonment.
func (s *stream[T, C]) Close() error {
	if s.closed {
		return nil
	}
	if s.err == nil {
		s.err = io.EOF
	}
	s.closed = true
	return s.body.Close()
}

// terminate records the sticky terminal state and releases the body.
func (s *stream[T, C]) terminate(err error) {
	s.err = err
	if !s.closed {
		s.closed = true
		s.body.Close()
	}
}

// aggregate is the fold state shared by both Collect variants.
type aggregate struct {
	id      string
	created int64
	model   string
	parts   []string
	finish  *FinishReason
	usage   *Usage
}

// collect drains the stream and folds every chunk into one aggregate.
// Identifier, timestamp and model are first-writer-wins; text fragments are
// appended in arrival order; the finish reason is last-writer-wins. Any error
// item, decode included, aborts the fold with no partial result.
func (s *stream[T, C]) collect() (*aggregate, error) {
	defer s.Close()

	agg := &aggregate{}
	for {
		c, err := s.Recv()
		if err == io.EOF {
			return agg, nil
		}
		if err != nil {
			return nil, err
		}

		id, created, model := c.header()
		if agg.id == "" {
			agg.id = id
		}
		if agg.created == 0 {
			agg.created = created
		}
		if agg.model == "" {
			agg.model = model
		}
		for _, f := range c.fragments() {
			if f.text != nil {
				agg.parts = append(agg.parts, *f.text)
			}
			if f.finish != nil {
				r := *f.finish
				agg.finish = &r
			}
		}
		if u := c.tokenUsage(); u != nil {
			agg.usage = u
		}
	}
}

func (a *aggregate) text() string {
	return strings.Join(a.parts, "")
}

// ChatCompletionStream delivers chat completion chunks as they arrive.
// Callers either pull chunks with Recv for progressive display, or call
// Collect once to fold the whole stream into a ChatCompletion. Close must be
// called when abandoning the stream before exhaustion.
type ChatCompletionStream struct {
	stream[ChatCompletionChunk, *ChatCompletionChunk]
}

func newChatCompletionStream(body io.ReadCloser) *ChatCompletionStream {
	return &ChatCompletionStream{newStream[ChatCompletionChunk, *ChatCompletionChunk](body)}
}

// Collect drains the stream into a complete ChatCompletion. All-or-nothing:
// a transport, framing or decode failure aborts with no partial result. The
// stream is closed when Collect returns.
func (s *ChatCompletionStream) Collect() (*ChatCompletion, error) {
	agg, err := s.collect()
	if err != nil {
		return nil, err
	}

	choice := ChatChoice{
		Index:   0,
		Message: ChatMessage{Role: RoleAssistant, Content: agg.text()},
	}
	if agg.finish != nil {
		choice.FinishReason = *agg.finish
	}

	return &ChatCompletion{
		ID:      agg.id,
		Object:  "chat.completion",
		Created: agg.created,
		Model:   agg.model,
		Choices: []ChatChoice{choice},
		Usage:   agg.usage,
	}, nil
}

// CompletionStream delivers text completion chunks as they arrive. Same
// contract as ChatCompletionStream with the plain-text wire shape.
type CompletionStream struct {
	stream[CompletionChunk, *CompletionChunk]
}

func newCompletionStream(body io.ReadCloser) *CompletionStream {
	return &CompletionStream{newStream[CompletionChunk, *CompletionChunk](body)}
}

// Collect drains the stream into a complete Completion. All-or-nothing: a
// transport, framing or decode failure aborts with no partial result. The
// stream is closed when Collect returns.
func (s *CompletionStream) Collect() (*Completion, error) {
	agg, err := s.collect()
	if err != nil {
		return nil, err
	}

	choice := CompletionChoice{Index: 0, Text: agg.text()}
	if agg.finish != nil {
		r, err := agg.finish.Text()
		if err != nil {
			return nil, &Error{
				Op:      "stream",
				Message: "finish reason outside text completion vocabulary",
				Err:     fmt.Errorf("%w: %v", ErrDecode, err),
			}
		}
		choice.FinishReason = r
	}

	return &Completion{
		ID:      agg.id,
		Object:  "text_completion",
		Created: agg.created,
		Model:   agg.model,
		Choices: []CompletionChoice{choice},
		Usage:   agg.usage,
	}, nil
}
