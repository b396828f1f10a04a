// Package stream applies transducers to byte streams. Writer and Reader
// decorate an io.Writer or io.Reader so that every byte crossing them is
// threaded through a transformation, and Pump drives a whole
// source-to-destination copy through one with context control.
//
// The decorators never close the stream they wrap: closing them only
// finalises the transformation, flushing whatever trailing output it was
// still holding.
package stream

import (
	"context"
	"io"

	"github.com/dolmen-go/contextio"
	"github.com/hashicorp/go-multierror"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

// Pump copies src to dst with every byte threaded through the transducer,
// until the source is exhausted, the transformation terminates the reduction
// or the context is done. The transformation is completed before returning,
// so trailing output always reaches dst. It returns the number of bytes
// written to dst.
func Pump(ctx context.Context, dst io.Writer, src io.Reader, xf transduce.Transducer) (written int64, err error) {
	if dst == nil {
		err = commonerrors.UndefinedParameter("no destination writer")
		return
	}
	if src == nil {
		err = commonerrors.UndefinedParameter("no source reader")
		return
	}
	err = commonerrors.DetermineContextError(ctx)
	if err != nil {
		return
	}
	counted := &meteredWriter{writer: contextio.NewWriter(ctx, dst)}
	filter, err := NewWriter(counted, xf)
	if err != nil {
		return
	}
	source := contextio.NewReader(ctx, src)
	buffer := make([]byte, sequence.DefaultChunkSize)
	for !filter.Done() {
		n, readErr := source.Read(buffer)
		if n > 0 {
			if _, writeErr := filter.Write(buffer[:n]); writeErr != nil {
				err = writeErr
				break
			}
		}
		if readErr != nil {
			if converted := ConvertIOError(readErr); !commonerrors.Any(converted, commonerrors.ErrEOF) {
				err = converted
			}
			break
		}
	}
	err = multierror.Append(err, filter.Close()).ErrorOrNil()
	written = counted.count
	return
}

// meteredWriter counts the bytes reaching the destination, trailing flush
// included.
type meteredWriter struct {
	writer io.Writer
	count  int64
}

func (m *meteredWriter) Write(p []byte) (n int, err error) {
	n, err = m.writer.Write(p)
	m.count += int64(n)
	return
}
