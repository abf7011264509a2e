package sand

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Load reads a grid snapshot from path.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	g, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return g, nil
}

// Decode reads a grid snapshot from r.
//
// The format is the width and height on their own lines followed by one line
// of glyphs per row. Blank lines are ignored. Rows are not checked against the
// declared size: glyphs past the grid edge are validated and dropped, missing
// cells stay Empty.
func Decode(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*Grid, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	lines := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	if len(lines) < 2 {
		return nil, ErrTruncated
	}
	width, err := parseDimension("width", lines[0])
	if err != nil {
		return nil, err
	}
	height, err := parseDimension("height", lines[1])
	if err != nil {
		return nil, err
	}
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}

	g := New(width, height)
	for row, line := range lines[2:] {
		col := 0
		for _, glyph := range line {
			m, ok := MaterialFromGlyph(glyph)
			if !ok {
				return nil, fmt.Errorf("%w %q at row %d col %d", ErrUnknownGlyph, glyph, row, col)
			}
			if idx, in := g.index(Pos(row, col)); in {
				g.cur[idx].Material = m
			}
			col++
		}
	}
	g.Checkpoint()
	return g, nil
}

func parseDimension(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadDimension, name, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s %d is negative", ErrBadDimension, name, v)
	}
	return v, nil
}

// Save writes the grid snapshot to path, replacing any existing file.
func (g *Grid) Save(path string) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close snapshot %s: %w", path, cerr)
		}
	}()
	if err := g.Encode(f); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// Encode writes the grid snapshot to w.
func (g *Grid) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", g.w, g.h)
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			bw.WriteRune(g.cur[row*g.w+col].Material.Glyph())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String renders the grid as glyph rows without the size header.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			b.WriteRune(g.cur[row*g.w+col].Material.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
