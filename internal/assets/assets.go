// Package assets loads the embedded sprite masks.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tomz197/spacecleanup/internal/draw"
	"github.com/tomz197/spacecleanup/internal/object"
)

//go:embed sprites/*.txt
var spriteFS embed.FS

// ErrMalformed is returned for sprite files that are not a rectangular grid of '#' and '.'.
var ErrMalformed = errors.New("malformed sprite")

// Sprite file names per category.
var (
	playerSprite    = "player.txt"
	scrapSprites    = []string{"scrap1.txt", "scrap2.txt", "scrap3.txt"}
	asteroidSprites = []string{"asteroid1.txt", "asteroid2.txt"}
)

// Library holds every sprite the game draws. Implements object.SpriteSet.
type Library struct {
	player    draw.Bitmap
	scraps    []draw.Bitmap
	asteroids []draw.Bitmap
}

var _ object.SpriteSet = (*Library)(nil)

// LoadLibrary loads all embedded sprites.
func LoadLibrary() (*Library, error) {
	return LoadLibraryFS(spriteFS, "sprites")
}

// LoadLibraryFS loads all sprites from dir inside fsys.
func LoadLibraryFS(fsys fs.FS, dir string) (*Library, error) {
	lib := &Library{}
	var err error

	if lib.player, err = LoadFS(fsys, dir+"/"+playerSprite); err != nil {
		return nil, err
	}
	if lib.scraps, err = loadAll(fsys, dir, scrapSprites); err != nil {
		return nil, err
	}
	if lib.asteroids, err = loadAll(fsys, dir, asteroidSprites); err != nil {
		return nil, err
	}
	return lib, nil
}

func loadAll(fsys fs.FS, dir string, names []string) ([]draw.Bitmap, error) {
	out := make([]draw.Bitmap, 0, len(names))
	for _, name := range names {
		b, err := LoadFS(fsys, dir+"/"+name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Load reads a single embedded sprite by file name.
func Load(name string) (draw.Bitmap, error) {
	return LoadFS(spriteFS, "sprites/"+name)
}

// LoadFS reads and parses a sprite from fsys.
func LoadFS(fsys fs.FS, path string) (draw.Bitmap, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return draw.Bitmap{}, fmt.Errorf("load sprite %s: %w", path, err)
	}
	b, err := Parse(string(data))
	if err != nil {
		return draw.Bitmap{}, fmt.Errorf("load sprite %s: %w", path, err)
	}
	return b, nil
}

// Parse converts a text mask ('#' set, '.' clear, one row per line) to a bitmap.
func Parse(text string) (draw.Bitmap, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return draw.Bitmap{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	w := len(rows[0])
	bits := make([]bool, 0, w*len(rows))
	for i, row := range rows {
		if len(row) != w {
			return draw.Bitmap{}, fmt.Errorf("%w: row %d has width %d, want %d", ErrMalformed, i+1, len(row), w)
		}
		for _, ch := range row {
			switch ch {
			case '#':
				bits = append(bits, true)
			case '.':
				bits = append(bits, false)
			default:
				return draw.Bitmap{}, fmt.Errorf("%w: unexpected %q in row %d", ErrMalformed, ch, i+1)
			}
		}
	}
	return draw.Bitmap{W: w, H: len(rows), Bits: bits}, nil
}

// Player returns the ship sprite.
func (l *Library) Player() draw.Bitmap {
	return l.player
}

// Variants returns how many sprites exist for a category.
func (l *Library) Variants(kind object.Kind) int {
	return len(l.category(kind))
}

// Sprite returns a category sprite. Out-of-range variants wrap around.
func (l *Library) Sprite(kind object.Kind, variant int) draw.Bitmap {
	set := l.category(kind)
	if len(set) == 0 {
		return draw.Bitmap{}
	}
	if variant < 0 {
		variant = -variant
	}
	return set[variant%len(set)]
}

func (l *Library) category(kind object.Kind) []draw.Bitmap {
	if kind == object.KindAsteroid {
		return l.asteroids
	}
	return l.scraps
}
