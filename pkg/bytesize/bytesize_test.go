package bytesize

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"", 0},
		{"0", 0},
		{"100", 100},
		{"100B", 100},
		{"  42  ", 42},
		{"512K", 524288},
		{"512kb", 524288},
		{"5M", 5 * MiB},
		{"5 mb", 5 * MiB},
		{"1G", 1073741824},
		{"2gb", 2 * GiB},
		{"1T", TiB},
		{"3tb", 3 * TiB},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"abc", "K", "10X", "10 KiB", "-5", "1.5G"} {
		_, err := Parse(in)
		if err == nil {
			t.Errorf("Parse(%q): expected error", in)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): expected *ParseError, got %T", in, err)
		}
	}
}

func TestParseOverflow(t *testing.T) {
	for _, in := range []string{"18446744073709551615K", "17179869184G", "99999999999999999999"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrOverflow) {
			t.Errorf("Parse(%q): expected overflow, got %v", in, err)
		}
	}

	got, err := Parse("18446744073709551615")
	if err != nil || got != 18446744073709551615 {
		t.Fatalf("max uint64 should parse, got %d, %v", got, err)
	}
}

func TestSizeFlagValue(t *testing.T) {
	var s Size
	if err := s.Set("2k"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if uint64(s) != 2048 || s.String() != "2048" {
		t.Fatalf("unexpected value %d (%s)", uint64(s), s.String())
	}
	if err := s.Set("nope"); err == nil {
		t.Fatal("expected error for invalid literal")
	}
	if s.Type() != "size" {
		t.Fatalf("unexpected type %q", s.Type())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(0); got != "0 B" {
		t.Errorf("Format(0) = %q", got)
	}
	if got := Format(1024); got != "1.0 KiB" {
		t.Errorf("Format(1024) = %q", got)
	}
}
