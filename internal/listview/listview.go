// Package listview implements a virtualized, selectable list over rows of any
// type. It owns no row semantics, only the position, selection and viewport
// math needed to display a window of rows.
package listview

// Viewport is the visible window into the rows of a List.
type Viewport struct {
	Origin int // index of the first visible row
	Width  int
	Height int
}

// List is a paginated list with an optional selection.
//
// The selection, when present, always indexes an existing row and always lies
// inside the viewport. The viewport never scrolls before the first row and
// never further than needed to show the last row on its final line.
type List[T any] struct {
	rows     []T
	viewport Viewport
	selected int // -1 when nothing is selected
}

// New creates a list sized to the given viewport dimensions, holding rows in
// the order given. Nothing is selected.
func New[T any](width, height int, rows ...T) *List[T] {
	l := &List[T]{
		rows:     append([]T(nil), rows...),
		viewport: Viewport{Width: max(0, width), Height: max(0, height)},
		selected: -1,
	}
	return l
}

// Append adds a row at the end of the list.
func (l *List[T]) Append(row T) {
	l.rows = append(l.rows, row)
}

// Len returns the number of rows.
func (l *List[T]) Len() int {
	return len(l.rows)
}

// Viewport returns the current viewport.
func (l *List[T]) Viewport() Viewport {
	return l.viewport
}

// SelectedIndex returns the index of the selected row.
func (l *List[T]) SelectedIndex() (int, bool) {
	if l.selected < 0 {
		return 0, false
	}
	return l.selected, true
}

// Selection returns the selected row.
func (l *List[T]) Selection() (T, bool) {
	var zero T
	if l.selected < 0 {
		return zero, false
	}
	return l.rows[l.selected], true
}

// Visible returns the index of the first visible row and the rows currently
// inside the viewport.
func (l *List[T]) Visible() (int, []T) {
	start := l.viewport.Origin
	end := min(start+l.viewport.Height, len(l.rows))
	if start >= end {
		return start, nil
	}
	return start, l.rows[start:end]
}

func (l *List[T]) navigable() bool {
	return len(l.rows) > 0 && l.viewport.Height > 0
}

// maxOrigin is the largest origin that still shows the last row on the final
// visible line.
func (l *List[T]) maxOrigin() int {
	return max(0, len(l.rows)-l.viewport.Height)
}

// SelectNext moves the selection one row towards the start (up) or towards the
// end of the list and reports whether the selection changed. When nothing is
// selected the first visible row is selected instead. If the new selection
// falls outside the viewport, the viewport scrolls by exactly the overflow.
func (l *List[T]) SelectNext(up bool) bool {
	if !l.navigable() {
		return false
	}
	if l.selected < 0 {
		l.selected = min(l.viewport.Origin, len(l.rows)-1)
		l.clamp()
		return true
	}

	if up {
		if l.selected == 0 {
			return false
		}
		l.selected--
		if l.selected < l.viewport.Origin {
			l.viewport.Origin = l.selected
		}
		return true
	}

	if l.selected == len(l.rows)-1 {
		return false
	}
	l.selected++
	if l.selected >= l.viewport.Origin+l.viewport.Height {
		l.viewport.Origin = l.selected - l.viewport.Height + 1
	}
	return true
}

// ScrollPages shifts the viewport by one full page per unit of direction
// (negative scrolls towards the start) and reports whether the origin moved.
//
// A page scroll is a viewport operation: callers clear the selection first
// and reselect with SelectNext afterwards so the selection lands on a visible
// row.
func (l *List[T]) ScrollPages(direction int) bool {
	if !l.navigable() || direction == 0 {
		return false
	}
	before := l.viewport.Origin
	origin := before + direction*l.viewport.Height
	l.viewport.Origin = min(max(origin, 0), l.maxOrigin())

	// Here the viewport wins: a leftover selection is pulled into the page.
	if l.selected >= 0 {
		last := min(l.viewport.Origin+l.viewport.Height, len(l.rows)) - 1
		l.selected = min(max(l.selected, l.viewport.Origin), last)
	}
	return l.viewport.Origin != before
}

// SelectFirst selects the first row and scrolls to the top.
func (l *List[T]) SelectFirst() bool {
	if !l.navigable() {
		return false
	}
	changed := l.selected != 0 || l.viewport.Origin != 0
	l.viewport.Origin = 0
	l.selected = 0
	return changed
}

// SelectLast selects the last row and scrolls to the bottom.
func (l *List[T]) SelectLast() bool {
	if !l.navigable() {
		return false
	}
	last := len(l.rows) - 1
	origin := l.maxOrigin()
	changed := l.selected != last || l.viewport.Origin != origin
	l.viewport.Origin = origin
	l.selected = last
	return changed
}

// Unselect clears the selection, leaving the viewport untouched.
func (l *List[T]) Unselect() {
	l.selected = -1
}

// Resize changes the viewport dimensions. The selection is kept and the
// viewport moves as needed to contain it. A non-positive height is ignored.
func (l *List[T]) Resize(width, height int) {
	if height <= 0 {
		return
	}
	l.viewport.Width = max(0, width)
	l.viewport.Height = height
	l.clamp()
}

// clamp restores the viewport and selection invariants together. The
// selection wins over the origin: the viewport moves to contain it.
func (l *List[T]) clamp() {
	if len(l.rows) == 0 {
		l.selected = -1
		l.viewport.Origin = 0
		return
	}
	if l.selected >= len(l.rows) {
		l.selected = len(l.rows) - 1
	}
	l.viewport.Origin = min(max(l.viewport.Origin, 0), l.maxOrigin())
	if l.selected < 0 || l.viewport.Height == 0 {
		return
	}
	if l.selected < l.viewport.Origin {
		l.viewport.Origin = l.selected
	}
	if l.selected >= l.viewport.Origin+l.viewport.Height {
		l.viewport.Origin = l.selected - l.viewport.Height + 1
	}
}
