package stream

import (
	"bytes"
	"io"

	"github.com/sasha-s/go-deadlock"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

// Reader decorates an io.Reader with a transducer: source bytes are read in
// chunks, stepped through the transformation one by one, and the output it
// emits is what Read serves. When the source is exhausted or the
// transformation terminates the reduction, the transformation is completed
// exactly once and its trailing output is served before io.EOF.
type Reader struct {
	mu      deadlock.Mutex
	source  io.Reader
	rf      transduce.Reducer
	result  any
	pending *bytes.Buffer
	buffer  []byte
	done    bool
	err     error
}

// NewReader returns a Reader threading the bytes of src through the
// transducer.
func NewReader(src io.Reader, xf transduce.Transducer) (*Reader, error) {
	if src == nil {
		return nil, commonerrors.UndefinedParameter("no source reader")
	}
	if xf == nil {
		return nil, commonerrors.UndefinedParameter("no transducer provided")
	}
	pending := &bytes.Buffer{}
	rf := xf(transduce.WriterReducer(pending))
	return &Reader{
		source:  src,
		rf:      rf,
		result:  rf.Init(),
		pending: pending,
		buffer:  make([]byte, sequence.DefaultChunkSize),
	}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.pending.Len() == 0 {
		if r.err != nil {
			return 0, r.err
		}
		if r.done {
			return 0, io.EOF
		}
		r.fill()
	}
	return r.pending.Read(p)
}

// fill pulls one chunk from the source and steps it through the
// transformation. It may produce no output, for instance when every byte of
// the chunk is filtered out.
func (r *Reader) fill() {
	n, readErr := r.source.Read(r.buffer)
	for i := 0; i < n; i++ {
		var err error
		r.result, err = r.rf.Step(r.result, r.buffer[i])
		if err != nil {
			r.err = ConvertIOError(err)
			return
		}
		if transduce.IsReduced(r.result) {
			r.result = transduce.Unreduced(r.result)
			r.complete()
			return
		}
	}
	if readErr != nil {
		if converted := ConvertIOError(readErr); commonerrors.Any(converted, commonerrors.ErrEOF) {
			r.complete()
		} else {
			r.err = converted
		}
	}
}

// complete finalises the transformation, leaving its trailing output in the
// pending buffer.
func (r *Reader) complete() {
	r.done = true
	if _, err := r.rf.Complete(r.result); err != nil {
		r.err = ConvertIOError(err)
	}
}

// Close completes the transformation without consuming more of the source,
// which stays open. Trailing output flushed by the completion stays readable
// until io.EOF. Closing an exhausted or aborted Reader reports nothing.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil || r.done {
		return nil
	}
	r.complete()
	return r.err
}
