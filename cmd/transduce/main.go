// transduce applies a transducer pipeline to byte streams.
//
// The input (positional file arguments, or standard input when none are
// given) is segmented into lines, words or custom delimited fields, passed
// through the element stages selected by flags and written out joined by a
// separator, or folded into a single value with --fold.
//
// The separator, fold, verbose and max-segment-length settings follow the
// TRANSDUCE_* environment variables and a .env file; their command line
// flags take precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/config"
	"github.com/ARM-software/golang-transducers/transducers/logs"
	"github.com/ARM-software/golang-transducers/transducers/sequence"
	"github.com/ARM-software/golang-transducers/transducers/stream"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

const envVarPrefix = "transduce"

type application struct {
	fs     afero.Fs
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func main() {
	app := &application{fs: afero.NewOsFs(), in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.run(ctx, os.Args[1:])
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(app.errOut, "transduce: %v\n", err)
		os.Exit(1)
	}
}

func (a *application) run(ctx context.Context, args []string) (err error) {
	opts, err := parseOptions(args, a.errOut)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := &config.FilterConfiguration{}
	if err = loadConfiguration(opts, cfg); err != nil {
		return err
	}

	logger, flush, err := newLogger(cfg.Verbose, a.errOut)
	if err != nil {
		return err
	}
	defer func() { _ = flush() }()

	xf, err := buildPipeline(opts, cfg, logger)
	if err != nil {
		return err
	}

	input, err := a.openInput(opts.files)
	if err != nil {
		return err
	}
	defer func() { err = multierror.Append(err, input.Close()).ErrorOrNil() }()

	output, err := a.openOutput(opts.output)
	if err != nil {
		return err
	}
	defer func() { err = multierror.Append(err, output.Close()).ErrorOrNil() }()

	if cfg.Fold != "" {
		return a.fold(ctx, xf, cfg.Fold, input, output, logger)
	}
	return a.list(ctx, xf, cfg.Separator, input, output, logger)
}

// loadConfiguration binds the environment backed flags to their environment
// variables and loads the filter configuration with the usual precedence:
// flags over environment over .env over defaults.
func loadConfiguration(opts *options, cfg *config.FilterConfiguration) error {
	session := viper.New()
	bindings := map[string]string{
		"TRANSDUCE_SEPARATOR":          "separator",
		"TRANSDUCE_FOLD":               "fold",
		"TRANSDUCE_VERBOSE":            "verbose",
		"TRANSDUCE_MAX_SEGMENT_LENGTH": "max-segment-length",
	}
	for envVar, flagName := range bindings {
		if err := config.BindFlagToEnv(session, envVarPrefix, envVar, opts.flags.Lookup(flagName)); err != nil {
			return err
		}
	}
	return config.LoadFromViper(session, envVarPrefix, cfg, config.DefaultFilterConfiguration())
}

// newLogger keeps quiet runs quiet: without --verbose only error records
// reach standard error, while --verbose switches to a development zap logger
// with element level records enabled.
func newLogger(verbose bool, errOut io.Writer) (logr.Logger, func() error, error) {
	if !verbose {
		return logs.NewQuietLogger(logs.NewWriterLogr(errOut)), func() error { return nil }, nil
	}
	zapL, err := zap.NewDevelopment()
	if err != nil {
		return logs.NewNoopLogger(), nil, commonerrors.WrapError(commonerrors.ErrUnexpected, err, "cannot set up logging")
	}
	return logs.NewZapLogger(zapL)
}

// list streams the input through the pipeline, interposing the separator
// between output segments and terminating any output with a newline.
func (a *application) list(ctx context.Context, xf transduce.Transducer, separator string, input io.Reader, output io.Writer, logger logr.Logger) error {
	written, err := stream.Pump(ctx, output, input, transduce.Compose(xf, transduce.Interpose(separator)))
	if err != nil {
		return err
	}
	if written > 0 {
		if _, err = io.WriteString(output, "\n"); err != nil {
			return err
		}
	}
	logger.Info("pipeline complete", "written", written)
	return nil
}

// fold reduces the segments into a single value with the operator sink and
// prints it. An empty reduction prints nothing.
func (a *application) fold(ctx context.Context, xf transduce.Transducer, operator string, input io.Reader, output io.Writer, logger logr.Logger) error {
	if err := commonerrors.DetermineContextError(ctx); err != nil {
		return err
	}
	rf, err := transduce.OperatorReducer(operator)
	if err != nil {
		return err
	}
	result, err := transduce.Transduce(transduce.Compose(xf, transduce.Map(parseScalar)), rf, sequence.FromReader(input))
	if err != nil {
		return err
	}
	logger.Info("fold complete", "operator", operator, "result", result)
	if result == nil {
		return nil
	}
	_, err = fmt.Fprintf(output, "%v\n", result)
	return err
}

func (a *application) openInput(files []string) (io.ReadCloser, error) {
	if len(files) == 0 {
		return io.NopCloser(a.in), nil
	}
	readers := make([]io.Reader, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	for _, name := range files {
		f, err := a.fs.Open(name)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, commonerrors.WrapErrorf(commonerrors.ErrNotFound, err, "cannot open `%v`", name)
		}
		readers = append(readers, f)
		closers = append(closers, f)
	}
	return &multiReadCloser{Reader: io.MultiReader(readers...), closers: closers}, nil
}

func (a *application) openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{a.out}, nil
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return nil, commonerrors.WrapErrorf(commonerrors.ErrUnexpected, err, "cannot create `%v`", path)
	}
	return f, nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *multiReadCloser) Close() error {
	var errs *multierror.Error
	for _, c := range r.closers {
		errs = multierror.Append(errs, c.Close())
	}
	return errs.ErrorOrNil()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
