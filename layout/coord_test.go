package layout

import (
	"strings"
	"testing"
)

func TestToCoordinate_SoftWrap(t *testing.T) {
	lines := Wrap("abcdefgh", 5)
	if got, want := ToCoordinate(lines, 7), (Coordinate{Row: 1, Col: 2}); got != want {
		t.Fatalf("offset 7: got %+v, want %+v", got, want)
	}
}

func TestToCoordinate_WrapBoundaryBelongsToNextRow(t *testing.T) {
	lines := Wrap("abcdefgh", 5)
	if got, want := ToCoordinate(lines, 5), (Coordinate{Row: 1, Col: 0}); got != want {
		t.Fatalf("offset 5: got %+v, want %+v", got, want)
	}
}

func TestToCoordinate_HardBreak(t *testing.T) {
	lines := Wrap("hello\nworld", 20)
	cases := []struct {
		off  int
		want Coordinate
	}{
		{0, Coordinate{0, 0}},
		{5, Coordinate{0, 5}},
		{6, Coordinate{1, 0}},
		{11, Coordinate{1, 5}},
	}
	for _, tc := range cases {
		if got := ToCoordinate(lines, tc.off); got != tc.want {
			t.Fatalf("offset %d: got %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestToCoordinate_ClampsOutOfRange(t *testing.T) {
	lines := Wrap("ab\n", 10)
	if got, want := ToCoordinate(lines, -3), (Coordinate{}); got != want {
		t.Fatalf("negative: got %+v, want %+v", got, want)
	}
	if got, want := ToCoordinate(lines, 3), (Coordinate{Row: 1, Col: 0}); got != want {
		t.Fatalf("end after newline: got %+v, want %+v", got, want)
	}
	if got, want := ToCoordinate(lines, 99), (Coordinate{Row: 1, Col: 0}); got != want {
		t.Fatalf("past end: got %+v, want %+v", got, want)
	}
}

func TestToOffset_Clamps(t *testing.T) {
	lines := Wrap("hello\nhi", 20)
	if got, want := ToOffset(lines, Coordinate{Row: 1, Col: 99}), 8; got != want {
		t.Fatalf("col past row end: got %d, want %d", got, want)
	}
	if got, want := ToOffset(lines, Coordinate{Row: 9, Col: 0}), 6; got != want {
		t.Fatalf("row past end: got %d, want %d", got, want)
	}
	if got, want := ToOffset(lines, Coordinate{Row: -1, Col: -1}), 0; got != want {
		t.Fatalf("negative: got %d, want %d", got, want)
	}
}

func TestCoordinates_RoundTrip(t *testing.T) {
	texts := []string{
		"",
		"abcdefgh",
		"hello\nworld",
		"a\n\n\nb",
		strings.Repeat("lorem ipsum ", 7) + "\n" + strings.Repeat("z", 13) + "\n",
		"テスト\nテキストです",
	}
	for _, text := range texts {
		for _, width := range []int{1, 2, 3, 5, 8, 80} {
			lines := Wrap(text, width)
			total := lines.Len()
			for off := 0; off <= total; off++ {
				c := ToCoordinate(lines, off)
				if c.Row < 0 || c.Row >= len(lines) || c.Col < 0 || c.Col > lines[c.Row].Len {
					t.Fatalf("text=%q width=%d off=%d: coordinate %+v out of bounds", text, width, off, c)
				}
				if got := ToOffset(lines, c); got != off {
					t.Fatalf("text=%q width=%d: round trip %d -> %+v -> %d", text, width, off, c, got)
				}
			}
		}
	}
}

func TestRow_CellCol(t *testing.T) {
	lines := Wrap("\x1b[1m>\x1b[0m aテb", 20)
	row := lines[0]
	cases := map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 5, 5: 6}
	for col, want := range cases {
		if got := row.CellCol(col); got != want {
			t.Fatalf("CellCol(%d): got %d, want %d", col, got, want)
		}
	}
}
