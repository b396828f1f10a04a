package main

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
	"github.com/ARM-software/golang-transducers/transducers/config"
	"github.com/ARM-software/golang-transducers/transducers/transduce"
)

// options holds the invocation-only settings. Settings shared with the
// environment (separator, fold, verbose, max segment length) live in
// config.FilterConfiguration instead and are only declared here as flags so
// they can be bound to their environment variables.
type options struct {
	lines    bool
	words    bool
	split    string
	take     int
	drop     int
	takeNth  int
	dedupe   bool
	distinct bool
	compact  bool
	sample   float64
	output   string
	files    []string

	flags *pflag.FlagSet
}

func parseOptions(args []string, errOut io.Writer) (*options, error) {
	defaults := config.DefaultFilterConfiguration()
	opts := &options{}
	flags := pflag.NewFlagSet("transduce", pflag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.BoolVar(&opts.lines, "lines", false, "segment the input into lines (the default)")
	flags.BoolVar(&opts.words, "words", false, "segment the input into whitespace separated words")
	flags.StringVar(&opts.split, "split", "", "segment the input at any of the given boundary characters")
	flags.IntVar(&opts.take, "take", 0, "keep only the first n segments")
	flags.IntVar(&opts.drop, "drop", 0, "discard the first n segments")
	flags.IntVar(&opts.takeNth, "take-nth", 1, "keep one segment in every n")
	flags.BoolVar(&opts.dedupe, "dedupe", false, "collapse runs of consecutive duplicate segments")
	flags.BoolVar(&opts.distinct, "distinct", false, "drop every segment that already appeared")
	flags.BoolVar(&opts.compact, "compact", false, "drop blank segments")
	flags.Float64Var(&opts.sample, "sample", 1, "keep each segment with the given probability")
	flags.StringVar(&opts.output, "output", "", "write to this file instead of standard out")
	flags.String("separator", defaults.Separator, "separator between output segments")
	flags.String("fold", defaults.Fold, "fold the segments with one of + - * / . instead of listing them")
	flags.Bool("verbose", defaults.Verbose, "log pipeline activity to standard error")
	flags.Int("max-segment-length", defaults.MaxSegmentLength, "bytes buffered per segment before force flushing")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	opts.files = flags.Args()
	opts.flags = flags
	return opts, nil
}

func (o *options) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// buildPipeline assembles the transducer chain selected by the command line.
// Stage order is fixed regardless of flag order: segmentation, logging, drop,
// take, take-nth, dedupe, distinct, compact, sample.
func buildPipeline(opts *options, cfg *config.FilterConfiguration, logger logr.Logger) (transduce.Transducer, error) {
	segment, err := segmentation(opts, cfg)
	if err != nil {
		return nil, err
	}
	stages := []transduce.Transducer{segment}
	if cfg.Verbose {
		stages = append(stages, transduce.Log(logger))
	}
	if opts.changed("drop") {
		stages = append(stages, transduce.Drop(opts.drop))
	}
	if opts.changed("take") {
		stages = append(stages, transduce.Take(opts.take))
	}
	if opts.changed("take-nth") {
		if opts.takeNth < 1 {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "--take-nth must be positive, got [%v]", opts.takeNth)
		}
		stages = append(stages, transduce.TakeNth(opts.takeNth))
	}
	if opts.dedupe {
		stages = append(stages, transduce.Dedupe())
	}
	if opts.distinct {
		stages = append(stages, transduce.Distinct())
	}
	if opts.compact {
		stages = append(stages, transduce.Remove(blank))
	}
	if opts.changed("sample") {
		if opts.sample < 0 || opts.sample > 1 {
			return nil, commonerrors.Newf(commonerrors.ErrInvalid, "--sample must be within [0, 1], got [%v]", opts.sample)
		}
		stages = append(stages, transduce.RandomSample(opts.sample))
	}
	return transduce.Compose(stages...), nil
}

func segmentation(opts *options, cfg *config.FilterConfiguration) (transduce.Transducer, error) {
	selected := 0
	for _, on := range []bool{opts.lines, opts.words, opts.changed("split")} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return nil, commonerrors.New(commonerrors.ErrConflict, "choose a single segmentation among --lines, --words and --split")
	}
	switch {
	case opts.words:
		return transduce.SplitFunc(unicode.IsSpace, cfg.MaxSegmentLength), nil
	case opts.changed("split"):
		if opts.split == "" {
			return nil, commonerrors.New(commonerrors.ErrInvalid, "--split needs at least one boundary character")
		}
		boundaries := opts.split
		return transduce.SplitFunc(func(r rune) bool { return strings.ContainsRune(boundaries, r) }, cfg.MaxSegmentLength), nil
	default:
		return transduce.SplitFunc(func(r rune) bool { return r == '\n' }, cfg.MaxSegmentLength), nil
	}
}

func blank(segment string) bool {
	return strings.TrimSpace(segment) == ""
}

// parseScalar turns numeric text into a number so that arithmetic folds see
// operands rather than strings. Anything non numeric is left untouched.
func parseScalar(segment string) any {
	if n, err := strconv.ParseInt(segment, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(segment, 64); err == nil {
		return f
	}
	return segment
}
