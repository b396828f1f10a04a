package transduce

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ARM-software/golang-transducers/transducers/commonerrors"
)

// DefaultMaxSplitLength bounds the number of bytes a splitting transducer
// buffers before force-flushing the pending segment, so memory stays bounded
// on boundary-free input.
const DefaultMaxSplitLength = 4096

// Words returns a transducer assembling character elements into whitespace
// separated words.
func Words() Transducer {
	return SplitFunc(unicode.IsSpace, DefaultMaxSplitLength)
}

// Lines returns a transducer assembling character elements into lines.
func Lines() Transducer {
	return SplitFunc(func(r rune) bool { return r == '\n' }, DefaultMaxSplitLength)
}

// Split returns a transducer assembling character elements into strings
// delimited by any of the boundary characters.
func Split(boundaries string) Transducer {
	if boundaries == "" {
		panic("transduce.Split: no boundary characters")
	}
	return SplitFunc(func(r rune) bool { return strings.ContainsRune(boundaries, r) }, DefaultMaxSplitLength)
}

// SplitFunc returns a transducer assembling character elements into strings,
// flushing the pending segment whenever isBoundary reports a boundary or the
// segment reaches maxLength bytes. Empty segments are skipped and the last
// segment is flushed on completion.
//
// Elements may be runes, strings, bytes or byte slices. Byte input is
// scanned bytewise: boundaries are only detected on ASCII characters, while
// multi-byte sequences are carried into the segment verbatim.
func SplitFunc(isBoundary func(rune) bool, maxLength int) Transducer {
	if isBoundary == nil {
		panic("transduce.SplitFunc: isBoundary is nil")
	}
	if maxLength < 1 {
		panic("transduce.SplitFunc: maxLength must be positive")
	}
	return func(rf Reducer) Reducer {
		var segment strings.Builder
		flush := func(result any) (any, error) {
			if segment.Len() == 0 {
				return result, nil
			}
			out := segment.String()
			segment.Reset()
			return rf.Step(result, out)
		}
		scanRune := func(result any, r rune) (any, error) {
			if isBoundary(r) {
				return flush(result)
			}
			segment.WriteRune(r)
			if segment.Len() >= maxLength {
				return flush(result)
			}
			return result, nil
		}
		scanByte := func(result any, b byte) (any, error) {
			if b < utf8.RuneSelf && isBoundary(rune(b)) {
				return flush(result)
			}
			segment.WriteByte(b)
			if segment.Len() >= maxLength {
				return flush(result)
			}
			return result, nil
		}
		return wrap(rf, func(result, input any) (any, error) {
			var err error
			switch in := input.(type) {
			case rune:
				return scanRune(result, in)
			case byte:
				return scanByte(result, in)
			case string:
				for _, r := range in {
					result, err = scanRune(result, r)
					if err != nil || IsReduced(result) {
						return result, err
					}
				}
				return result, nil
			case []byte:
				for _, b := range in {
					result, err = scanByte(result, b)
					if err != nil || IsReduced(result) {
						return result, err
					}
				}
				return result, nil
			default:
				return result, commonerrors.Newf(commonerrors.ErrInvalid, "element [%v] of type `%T` is not character data", input, input)
			}
		}, func(result any) (any, error) {
			result, err := flush(result)
			if err != nil {
				return result, err
			}
			return rf.Complete(Unreduced(result))
		})
	}
}
