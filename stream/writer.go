package stream

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sasha-s/go-deadlock"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

// Writer decorates an io.Writer with a transducer: every written byte is
// stepped through the transformation and whatever it emits reaches the
// underlying writer immediately. Closing the Writer completes the
// transformation exactly once, flushing any trailing buffered output; the
// underlying writer is left open.
type Writer struct {
	mu     deadlock.Mutex
	rf     transduce.Reducer
	result any
	done   bool
	failed bool
	closed bool
}

// NewWriter returns a Writer threading written bytes through the transducer
// into w.
func NewWriter(w io.Writer, xf transduce.Transducer) (*Writer, error) {
	if w == nil {
		return nil, commonerrors.UndefinedParameter("no destination writer")
	}
	if xf == nil {
		return nil, commonerrors.UndefinedParameter("no transducer provided")
	}
	rf := xf(transduce.WriterReducer(w))
	return &Writer{rf: rf, result: rf.Init()}, nil
}

// Write threads every byte of p through the transformation. When the
// transformation terminates the reduction mid-buffer, the remaining bytes
// are discarded and the write still reports full consumption; later writes
// fail with ErrEOF. A step failure aborts the transformation for good.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		err = commonerrors.New(commonerrors.ErrConflict, "the filter is closed")
		return
	}
	if w.failed {
		err = commonerrors.New(commonerrors.ErrUnexpected, "the transformation already failed")
		return
	}
	if w.done {
		err = commonerrors.New(commonerrors.ErrEOF, "the transformation terminated the stream")
		return
	}
	for _, b := range p {
		w.result, err = w.rf.Step(w.result, b)
		if err != nil {
			w.failed = true
			err = ConvertIOError(err)
			return
		}
		n++
		if transduce.IsReduced(w.result) {
			w.result = transduce.Unreduced(w.result)
			w.done = true
			n = len(p)
			return
		}
	}
	return
}

// Done reports whether the transformation terminated the reduction, in which
// case feeding more bytes is pointless.
func (w *Writer) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Close completes the transformation, flushing trailing output to the
// underlying writer, which stays open. Only the first Close acts; later
// calls report nothing. An aborted transformation is not completed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.failed {
		return nil
	}
	var errs *multierror.Error
	if _, err := w.rf.Complete(transduce.Unreduced(w.result)); err != nil {
		errs = multierror.Append(errs, ConvertIOError(err))
	}
	return errs.ErrorOrNil()
}
