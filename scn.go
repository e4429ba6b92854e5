package scn

import (
	"io"
	"os"

	"golang.org/x/exp/constraints"

	"github.com/eliaskosunen/scn-go/internal/arg"
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/driver"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// Result is returned alongside an error by every entry point in this
// package: the position the scan reached, in source code units, and the
// number of destinations successfully filled (spec.md §6's
// Result<{position, ...}, Error>).
type Result struct {
	Position int
	Filled   int
}

// StringView is a borrowed view into the scan source, populated when the
// source is contiguous and the scanned token's code-unit width matches
// (spec.md §4.7). Passing a *StringView instead of a *string as a
// destination opts into this no-copy behavior; the returned text must not
// outlive the original source data.
type StringView = arg.StringView

// ScanState is the cursor handed to a custom Scanner's ScanFrom.
type ScanState = arg.ScanState

// Scanner is implemented by any destination type that wants to parse its
// own replacement field instead of using one of the built-in readers.
type Scanner = arg.Scanner

// newSourceBuffer normalizes the three accepted source shapes (string, []byte,
// io.Reader) into the internal buffer.Buffer.
func newSourceBuffer(source interface{}) (*buffer.Buffer, *scnerr.Error) {
	switch s := source.(type) {
	case string:
		return buffer.NewFromString(s), nil
	case []byte:
		return buffer.NewFromBytes(s), nil
	case io.Reader:
		return buffer.NewFromReader(s), nil
	default:
		return nil, scnerr.Newf(scnerr.CodeInvalidFormatString, "unsupported scan source type %T", source)
	}
}

// runScan is the single funnel every public entry point drives through. The
// deferred scnerr.Recover is the outermost safety net fmt/scan.go's doScan
// installs with its own recover: driver.Run and the readers beneath it
// thread *scnerr.Error through ordinary returns for every expected failure,
// but Recover still catches the rare scnerr.Panic call site (and, as a
// last resort, any other unexpected panic) so a caller of Scan never sees
// anything but a normal error return.
func runScan(b *buffer.Buffer, formatStr string, loc *locale.Locale, localized bool, dests []interface{}) (res Result, outErr error) {
	var serr *scnerr.Error
	defer func() {
		scnerr.Recover(&serr)
		if serr != nil {
			res.Position = b.Position()
			outErr = serr
		}
	}()

	events, err := format.Parse(formatStr)
	if err != nil {
		serr = asScnErr(err)
		return Result{Position: b.Position()}, nil
	}
	store, aerr := arg.NewStore(dests)
	if aerr != nil {
		serr = aerr
		return Result{Position: b.Position()}, nil
	}
	filled, rerr := driver.Run(b, events, store, loc, localized)
	res = Result{Position: b.Position(), Filled: filled}
	serr = rerr
	return res, nil
}

// asScnErr recovers the *scnerr.Error every format.Parse failure actually
// carries under the generic error interface, falling back to a fresh
// CodeInvalidFormatString wrapper for the defensive case where it does not.
func asScnErr(err error) *scnerr.Error {
	if se, ok := err.(*scnerr.Error); ok {
		return se
	}
	return scnerr.Newf(scnerr.CodeInvalidFormatString, "%v", err)
}

// Scan drives formatStr against source, filling each of dests in turn.
// source may be a string, a []byte, or an io.Reader. It is the direct
// analogue of spec.md §6's scan(source, format, destinations...).
func Scan(source interface{}, formatStr string, dests ...interface{}) (Result, error) {
	b, err := newSourceBuffer(source)
	if err != nil {
		return Result{}, err
	}
	return runScan(b, formatStr, locale.Default(), false, dests)
}

// ScanLocalized is Scan with an explicit Locale controlling the decimal
// point, thousands separator, grouping, and true/false spellings consulted
// by any field using the 'L' flag.
func ScanLocalized(loc *Locale, source interface{}, formatStr string, dests ...interface{}) (Result, error) {
	if loc == nil {
		loc = locale.Default()
	}
	b, err := newSourceBuffer(source)
	if err != nil {
		return Result{}, err
	}
	return runScan(b, formatStr, loc, true, dests)
}

// scannable is the set of destination types ScanValue supports, mirroring
// internal/arg.kindOf's primitive cases.
type scannable interface {
	constraints.Integer | constraints.Float | bool | string
}

// ScanValue scans a single, default-formatted ("{}") value out of source,
// the Go shape of spec.md §6's scan_value<T>(source).
func ScanValue[T scannable](source interface{}) (T, Result, error) {
	var v T
	res, err := Scan(source, "{}", &v)
	return v, res, err
}

// Input scans from the process's standard input, holding the package-wide
// stdin lock for the duration (spec.md §5's "locks the stdio handle for
// the duration"), so concurrent Input calls do not interleave their reads.
func Input(formatStr string, dests ...interface{}) (Result, error) {
	mu := buffer.StdinMutex()
	b, release := buffer.NewStdio(os.Stdin, mu)
	defer release()
	return runScan(b, formatStr, locale.Default(), false, dests)
}
