package stream

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

func TestNewReaderRejectsMissingArguments(t *testing.T) {
	_, err := NewReader(nil, transduce.Identity())
	errortest.AssertError(t, err, commonerrors.ErrUndefined)

	_, err = NewReader(strings.NewReader("abc"), nil)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
}

func TestReaderTransformsBytes(t *testing.T) {
	filter, err := NewReader(strings.NewReader("hello world"), transduce.Map(upper))
	require.NoError(t, err)

	content, err := io.ReadAll(filter)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", string(content))
}

func TestReaderServesTrailingOutputBeforeEOF(t *testing.T) {
	xf := transduce.Compose(transduce.Words(), transduce.Interpose("\n"))
	filter, err := NewReader(strings.NewReader("a b c"), xf)
	require.NoError(t, err)

	content, err := io.ReadAll(filter)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc", string(content), "the last word only appears through completion")

	n, err := filter.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderTermination(t *testing.T) {
	xf := transduce.Compose(transduce.Words(), transduce.Take(1))
	filter, err := NewReader(strings.NewReader("hello world"), xf)
	require.NoError(t, err)

	content, err := io.ReadAll(filter)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestReaderHandlesTinyReads(t *testing.T) {
	// One byte at a time on both sides.
	source := iotest.OneByteReader(strings.NewReader("ab cd"))
	filter, err := NewReader(source, transduce.Words())
	require.NoError(t, err)

	var content []byte
	buffer := make([]byte, 1)
	for {
		n, err := filter.Read(buffer)
		content = append(content, buffer[:n]...)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
	}
	assert.Equal(t, "abcd", string(content))
}

func TestReaderSkipsFilteredChunks(t *testing.T) {
	// Every byte of the source is dropped: Read must keep pulling until the
	// source ends instead of reporting an empty read.
	filter, err := NewReader(strings.NewReader("aaaa"), transduce.Filter(func(b byte) bool { return b != 'a' }))
	require.NoError(t, err)

	content, err := io.ReadAll(filter)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestReaderCloseCompletesWithoutConsuming(t *testing.T) {
	source := strings.NewReader("never read")
	filter, err := NewReader(source, transduce.Words())
	require.NoError(t, err)

	require.NoError(t, filter.Close())
	n, err := filter.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 10, source.Len(), "the source was not touched")
}

func TestReaderPropagatesSourceFailures(t *testing.T) {
	broken := iotest.ErrReader(commonerrors.New(commonerrors.ErrUnexpected, "device gone"))
	filter, err := NewReader(broken, transduce.Identity())
	require.NoError(t, err)

	_, err = io.ReadAll(filter)
	errortest.AssertError(t, err, commonerrors.ErrUnexpected)
}

func TestReaderSurfacesDataBeforeFailure(t *testing.T) {
	source := io.MultiReader(strings.NewReader("ok"), iotest.ErrReader(commonerrors.New(commonerrors.ErrUnexpected, "device gone")))
	filter, err := NewReader(source, transduce.Identity())
	require.NoError(t, err)

	content, err := io.ReadAll(filter)
	errortest.AssertError(t, err, commonerrors.ErrUnexpected)
	assert.Equal(t, "ok", string(content), "bytes produced before the failure are served first")
}
