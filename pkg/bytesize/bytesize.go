package bytesize

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrOverflow is returned when a size literal does not fit in 64 bits.
var ErrOverflow = errors.New("size overflow")

// ParseError reports a malformed size literal.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid size %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
	TiB uint64 = 1 << 40
)

var multipliers = map[string]uint64{
	"":   1,
	"B":  1,
	"K":  KiB,
	"KB": KiB,
	"M":  MiB,
	"MB": MiB,
	"G":  GiB,
	"GB": GiB,
	"T":  TiB,
	"TB": TiB,
}

// Parse converts a literal such as "512", "10k" or "2 GB" into bytes.
// Units are case-insensitive and 1024-based. An empty string is zero.
func Parse(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	numPart, unitPart := s, ""
	if split >= 0 {
		numPart, unitPart = s[:split], s[split:]
	}

	num, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ParseError{Input: s, Err: ErrOverflow}
		}
		return 0, &ParseError{Input: s, Err: fmt.Errorf("invalid number %q", numPart)}
	}

	unit := strings.ToUpper(strings.TrimSpace(unitPart))
	mult, ok := multipliers[unit]
	if !ok {
		return 0, &ParseError{Input: s, Err: fmt.Errorf("invalid unit %q", unitPart)}
	}

	hi, lo := bits.Mul64(num, mult)
	if hi != 0 {
		return 0, &ParseError{Input: s, Err: ErrOverflow}
	}
	return lo, nil
}

// Format renders n using IEC units, e.g. "1.5 MiB".
func Format(n uint64) string {
	return humanize.IBytes(n)
}

// Size is a byte count usable as a pflag value.
type Size uint64

func (s *Size) String() string {
	return strconv.FormatUint(uint64(*s), 10)
}

func (s *Size) Set(v string) error {
	n, err := Parse(v)
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}

func (s *Size) Type() string { return "size" }
