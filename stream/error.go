package stream

import (
	"io"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// ConvertIOError converts an I/O error into common errors.
func ConvertIOError(err error) (newErr error) {
	if err == nil {
		return
	}
	newErr = commonerrors.ConvertContextError(err)
	if commonerrors.Any(newErr, io.EOF, io.ErrUnexpectedEOF, commonerrors.ErrEOF) {
		newErr = commonerrors.WrapIfNotError(commonerrors.ErrEOF, newErr, "end of stream")
	}
	return
}
