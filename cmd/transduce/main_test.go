package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/commonerrors/errortest"
)

type harness struct {
	app    *application
	fs     afero.Fs
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(input string) *harness {
	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &harness{
		app:    &application{fs: fs, in: strings.NewReader(input), out: out, errOut: errOut},
		fs:     fs,
		out:    out,
		errOut: errOut,
	}
}

func TestRunListsLines(t *testing.T) {
	defer goleak.VerifyNone(t)
	os.Clearenv()
	h := newHarness("alpha\nbeta\nalpha\n")
	require.NoError(t, h.app.run(context.Background(), nil))
	assert.Equal(t, "alpha\nbeta\nalpha\n", h.out.String())
}

func TestRunEmptyInputWritesNothing(t *testing.T) {
	os.Clearenv()
	h := newHarness("")
	require.NoError(t, h.app.run(context.Background(), nil))
	assert.Empty(t, h.out.String())
}

func TestRunWordsWithSeparator(t *testing.T) {
	os.Clearenv()
	h := newHarness("the quick brown fox")
	require.NoError(t, h.app.run(context.Background(), []string{"--words", "--take", "2", "--separator", ", "}))
	assert.Equal(t, "the, quick\n", h.out.String())
}

func TestRunFoldSum(t *testing.T) {
	os.Clearenv()
	h := newHarness("1\n2\n3\n4")
	require.NoError(t, h.app.run(context.Background(), []string{"--fold", "+"}))
	assert.Equal(t, "10\n", h.out.String())
}

func TestRunFoldWidensToFloat(t *testing.T) {
	os.Clearenv()
	h := newHarness("2 3 0.5")
	require.NoError(t, h.app.run(context.Background(), []string{"--words", "--fold", "*"}))
	assert.Equal(t, "3\n", h.out.String())
}

func TestRunFoldConcatenates(t *testing.T) {
	os.Clearenv()
	h := newHarness("a b c")
	require.NoError(t, h.app.run(context.Background(), []string{"--words", "--fold", "."}))
	assert.Equal(t, "abc\n", h.out.String())
}

func TestRunFoldEmptyInput(t *testing.T) {
	os.Clearenv()
	h := newHarness("")
	require.NoError(t, h.app.run(context.Background(), []string{"--fold", "+"}))
	assert.Empty(t, h.out.String())
}

func TestRunFoldRejectsNonNumbers(t *testing.T) {
	os.Clearenv()
	h := newHarness("four five")
	err := h.app.run(context.Background(), []string{"--words", "--fold", "+"})
	errortest.AssertError(t, err, commonerrors.ErrInvalid)
}

func TestRunReadsFilesInOrder(t *testing.T) {
	os.Clearenv()
	h := newHarness("ignored stdin")
	require.NoError(t, afero.WriteFile(h.fs, "one.txt", []byte("1\n2\n"), 0o644))
	require.NoError(t, afero.WriteFile(h.fs, "two.txt", []byte("3\n"), 0o644))
	require.NoError(t, h.app.run(context.Background(), []string{"one.txt", "two.txt"}))
	assert.Equal(t, "1\n2\n3\n", h.out.String())
}

func TestRunWritesOutputFile(t *testing.T) {
	os.Clearenv()
	h := newHarness("alpha\nbeta\n")
	require.NoError(t, h.app.run(context.Background(), []string{"--output", "result.txt"}))
	content, err := afero.ReadFile(h.fs, "result.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", string(content))
	assert.Empty(t, h.out.String())
}

func TestRunRejectsMissingInputFile(t *testing.T) {
	os.Clearenv()
	h := newHarness("")
	err := h.app.run(context.Background(), []string{"absent.txt"})
	errortest.AssertError(t, err, commonerrors.ErrNotFound)
}

func TestRunRejectsConflictingSegmentations(t *testing.T) {
	os.Clearenv()
	h := newHarness("a b")
	err := h.app.run(context.Background(), []string{"--lines", "--words"})
	errortest.AssertError(t, err, commonerrors.ErrConflict)
}

func TestRunRejectsUnknownFoldOperator(t *testing.T) {
	os.Clearenv()
	h := newHarness("1 2")
	err := h.app.run(context.Background(), []string{"--words", "--fold", "%"})
	errortest.AssertError(t, err, commonerrors.ErrInvalid)
}

func TestRunSeparatorFromEnvironment(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSDUCE_SEPARATOR", ", ")
	h := newHarness("a\nb")
	require.NoError(t, h.app.run(context.Background(), nil))
	assert.Equal(t, "a, b\n", h.out.String())
}

func TestRunFlagOverridesEnvironment(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRANSDUCE_SEPARATOR", ", ")
	h := newHarness("a\nb")
	require.NoError(t, h.app.run(context.Background(), []string{"--separator", " | "}))
	assert.Equal(t, "a | b\n", h.out.String())
}

func TestRunVerbose(t *testing.T) {
	os.Clearenv()
	h := newHarness("a b")
	require.NoError(t, h.app.run(context.Background(), []string{"--words", "--verbose"}))
	assert.Equal(t, "a\nb\n", h.out.String())
}

func TestRunHonoursCancellation(t *testing.T) {
	os.Clearenv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness("a\nb")
	errortest.AssertError(t, h.app.run(ctx, nil), commonerrors.ErrCancelled)
	assert.Empty(t, h.out.String())

	h = newHarness("1 2")
	errortest.AssertError(t, h.app.run(ctx, []string{"--words", "--fold", "+"}), commonerrors.ErrCancelled)
	assert.Empty(t, h.out.String())
}

func TestRunHelp(t *testing.T) {
	os.Clearenv()
	h := newHarness("")
	require.NoError(t, h.app.run(context.Background(), []string{"--help"}))
	assert.Contains(t, h.errOut.String(), "--words")
	assert.Empty(t, h.out.String())
}
