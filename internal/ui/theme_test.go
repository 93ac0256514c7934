package ui

import "testing"

func TestBar(t *testing.T) {
	cases := []struct {
		value, total, width int
		want                string
	}{
		{0, 10, 4, "[----]"},
		{5, 10, 4, "[##--]"},
		{10, 10, 4, "[####]"},
		{20, 10, 4, "[####]"},
		{-3, 10, 4, "[----]"},
		{1, 0, 1, "[###]"},
	}
	for _, c := range cases {
		if got := Bar(c.value, c.total, c.width); got != c.want {
			t.Fatalf("Bar(%d,%d,%d)=%q, want %q", c.value, c.total, c.width, got, c.want)
		}
	}
}
