package sand

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from glyph rows of equal width.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	width := 0
	if len(rows) > 0 {
		width = len([]rune(rows[0]))
	}
	src := fmt.Sprintf("%d\n%d\n%s\n", width, len(rows), strings.Join(rows, "\n"))
	g, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func rowsOf(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}
