package roots

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestParseList(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single", "/data/J12", []string{"/data/J12"}},
		{"spaces", "/a /b  /c", []string{"/a", "/b", "/c"}},
		{"commas", "/a,/b,,/c", []string{"/a", "/b", "/c"}},
		{"tabs", "/a\t/b\t\t/c", []string{"/a", "/b", "/c"}},
		{"mixed", "/a, /b\n/c\t/d\r\n", []string{"/a", "/b", "/c", "/d"}},
		{"dedup keeps first", "/b\n/a\n/b,/a", []string{"/b", "/a"}},
		{"whitespace lines", "\n   \n/a\n\n", []string{"/a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseList(tc.content)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseList(%q) = %#v, want %#v", tc.content, got, tc.want)
			}
		})
	}
}

func memCollector(t *testing.T) (*Collector, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{"/deleter-test/J12", "/deleter-test/J13", "/deleter-test/J14"} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	return &Collector{Fs: fsys}, fsys
}

func TestCollectDirectories(t *testing.T) {
	c, _ := memCollector(t)

	got, err := c.Collect([]string{"/deleter-test/J12", "/deleter-test/J13"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"/deleter-test/J12", "/deleter-test/J13"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCollectSameDirectoryTwice(t *testing.T) {
	c, _ := memCollector(t)

	got, err := c.Collect([]string{"/deleter-test/J12", "/deleter-test/J12/", "/deleter-test/./J12"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one root, got %v", got)
	}
}

func TestCollectListFiles(t *testing.T) {
	c, fsys := memCollector(t)
	if err := afero.WriteFile(fsys, "/deleter-test/a.csv", []byte("/deleter-test/J12,/deleter-test/J13\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/deleter-test/b.txt", []byte("/deleter-test/J13 /deleter-test/J14\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := c.Collect([]string{"/deleter-test/a.csv", "/deleter-test/b.txt", "/deleter-test/J12"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"/deleter-test/J12", "/deleter-test/J13", "/deleter-test/J14"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCollectSameDirectoryViaTwoLists(t *testing.T) {
	c, fsys := memCollector(t)
	for _, name := range []string{"/deleter-test/one.txt", "/deleter-test/two.txt"} {
		if err := afero.WriteFile(fsys, name, []byte("/deleter-test/J12\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := c.Collect([]string{"/deleter-test/one.txt", "/deleter-test/two.txt"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one root, got %v", got)
	}
}

func TestCollectMissingPath(t *testing.T) {
	c, _ := memCollector(t)

	_, err := c.Collect([]string{"/deleter-test/nope"})
	if !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
	var rerr *InvalidRootError
	if !errors.As(err, &rerr) || rerr.Path != "/deleter-test/nope" {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestCollectListEntryNotDirectory(t *testing.T) {
	c, fsys := memCollector(t)
	if err := afero.WriteFile(fsys, "/deleter-test/file.bin", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/deleter-test/list.txt", []byte("/deleter-test/J12 /deleter-test/file.bin"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := c.Collect([]string{"/deleter-test/list.txt"})
	if !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestCollectEmpty(t *testing.T) {
	c, fsys := memCollector(t)
	if err := afero.WriteFile(fsys, "/deleter-test/empty.txt", []byte("\n , \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Collect(nil); !errors.Is(err, ErrNoValidRoots) {
		t.Fatalf("expected ErrNoValidRoots for no args, got %v", err)
	}
	if _, err := c.Collect([]string{"/deleter-test/empty.txt"}); !errors.Is(err, ErrNoValidRoots) {
		t.Fatalf("expected ErrNoValidRoots for empty list, got %v", err)
	}
}

func TestCollectSymlinkedRootOnHost(t *testing.T) {
	tmp := t.TempDir()
	real := filepath.Join(tmp, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := NewCollector().Collect([]string{real, link})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 || got[0] != real {
		t.Fatalf("expected only %s, got %v", real, got)
	}
}
