package assets

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/tomz197/spacecleanup/internal/object"
)

func TestParse(t *testing.T) {
	b, err := Parse("#.\n.#\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.W != 2 || b.H != 2 {
		t.Fatalf("expected 2x2, got %dx%d", b.W, b.H)
	}
	if !b.At(0, 0) || b.At(1, 0) || b.At(0, 1) || !b.At(1, 1) {
		t.Errorf("unexpected bits %v", b.Bits)
	}
}

func TestParseCRLF(t *testing.T) {
	b, err := Parse("##\r\n..\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.W != 2 || b.H != 2 {
		t.Errorf("expected 2x2, got %dx%d", b.W, b.H)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, text := range []string{"", "\n\n", "##\n#\n", "#x\n"} {
		if _, err := Parse(text); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q): expected ErrMalformed, got %v", text, err)
		}
	}
}

func TestLoadLibraryEmbedded(t *testing.T) {
	lib, err := LoadLibrary()
	if err != nil {
		t.Fatalf("embedded sprites failed to load: %v", err)
	}

	if lib.Player().W == 0 {
		t.Error("expected player sprite")
	}
	if got := lib.Variants(object.KindScrap); got != 3 {
		t.Errorf("expected 3 scrap variants, got %d", got)
	}
	if got := lib.Variants(object.KindAsteroid); got != 2 {
		t.Errorf("expected 2 asteroid variants, got %d", got)
	}
	if lib.Sprite(object.KindAsteroid, 5).W == 0 {
		t.Error("expected out-of-range variant to wrap")
	}
}

func TestLoadLibraryMissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/player.txt": {Data: []byte("#\n")},
	}
	_, err := LoadLibraryFS(fsys, "sprites")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadSingle(t *testing.T) {
	b, err := Load("scrap1.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.W != 10 || b.H != 10 {
		t.Errorf("expected 10x10 scrap sprite, got %dx%d", b.W, b.H)
	}
}
