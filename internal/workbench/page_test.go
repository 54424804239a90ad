package workbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 9: 1, 10: 1, 11: 2, 20: 2, 21: 3, 95: 10}
	for n, want := range cases {
		assert.Equal(t, want, TotalPages(n), "n=%d", n)
	}
}

func TestNavigateBounds(t *testing.T) {
	assert.Equal(t, 1, Navigate(1, 3, NavPrevious))
	assert.Equal(t, 3, Navigate(3, 3, NavNext))
	assert.Equal(t, 2, Navigate(1, 3, NavNext))
	assert.Equal(t, 2, Navigate(3, 3, NavPrevious))
	assert.Equal(t, 1, Navigate(3, 3, NavFirst))
	assert.Equal(t, 3, Navigate(1, 3, NavLast))

	// no pages: everything stays on page 1
	for _, nav := range []PageNav{NavFirst, NavPrevious, NavNext, NavLast} {
		assert.Equal(t, 1, Navigate(1, 0, nav), nav.String())
	}
}

func TestWindowSizes(t *testing.T) {
	view := makeRecords(23)
	total := TotalPages(len(view))
	for p := 1; p <= total; p++ {
		w := Window(view, p)
		if p < total {
			assert.Len(t, w, PageSize)
		} else {
			assert.Len(t, w, 3)
		}
	}
	assert.Equal(t, "11", Window(view, 2)[0].ID)
	assert.Empty(t, Window(view, 4))
	assert.Empty(t, Window(nil, 1))
}

func TestPagingAffordances(t *testing.T) {
	cases := []struct {
		n, page             int
		showFirst, showLast bool
	}{
		{n: 15, page: 1, showFirst: false, showLast: false},
		{n: 15, page: 2, showFirst: false, showLast: false},
		{n: 50, page: 1, showFirst: false, showLast: true},
		{n: 50, page: 2, showFirst: false, showLast: true},
		{n: 50, page: 3, showFirst: true, showLast: true},
		{n: 50, page: 4, showFirst: true, showLast: false},
		{n: 50, page: 5, showFirst: true, showLast: false},
		{n: 30, page: 2, showFirst: false, showLast: false},
	}
	for _, tc := range cases {
		s := NewState()
		s.base = makeRecords(tc.n)
		s = s.derive()
		s.Page = tc.page
		assert.Equal(t, tc.showFirst, s.ShowFirstButton(), "n=%d page=%d first", tc.n, tc.page)
		assert.Equal(t, tc.showLast, s.ShowLastButton(), "n=%d page=%d last", tc.n, tc.page)
	}
}
