package view

// List is a circular selection over Items with a scrolling window of
// Capacity rows. After every navigation call
// Top <= Selected < Top+Capacity holds.
type List struct {
	Title    string
	Items    []string
	Selected int
	Top      int
	Capacity int
}

func NewList(title string, items []string, capacity int) *List {
	if capacity <= 0 {
		capacity = 1
	}
	return &List{Title: title, Items: items, Capacity: capacity}
}

// Open resets the selection and the window to the first item.
func (l *List) Open() {
	l.Selected = 0
	l.Top = 0
}

// SelectedItem returns the current label, or "" for an empty list.
func (l *List) SelectedItem() string {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return ""
	}
	return l.Items[l.Selected]
}

// Prev moves the selection up, wrapping from the first item to the last.
func (l *List) Prev() {
	n := len(l.Items)
	if n == 0 {
		return
	}
	l.Selected = (l.Selected - 1 + n) % n
	switch {
	case l.Selected < l.Top:
		l.Top = l.Selected
	case l.Selected == n-1:
		l.Top = l.lastPageTop()
	}
}

// Next moves the selection down, wrapping from the last item to the first.
func (l *List) Next() {
	n := len(l.Items)
	if n == 0 {
		return
	}
	l.Selected = (l.Selected + 1) % n
	switch {
	case l.Selected >= l.Top+l.Capacity:
		l.Top = l.Selected - l.Capacity + 1
	case l.Selected == 0:
		l.Top = 0
	}
}

func (l *List) lastPageTop() int {
	top := len(l.Items) - l.Capacity
	if top < 0 {
		return 0
	}
	return top
}

// MoreAbove reports hidden items above the window.
func (l *List) MoreAbove() bool { return l.Top > 0 }

// MoreBelow reports hidden items below the window.
func (l *List) MoreBelow() bool { return l.Top+l.Capacity < len(l.Items) }

// Row is one visible list entry.
type Row struct {
	Index    int
	Label    string
	Selected bool
}

// Visible returns the rows inside the window.
func (l *List) Visible() []Row {
	var rows []Row
	for i := 0; i < l.Capacity; i++ {
		idx := l.Top + i
		if idx >= len(l.Items) {
			break
		}
		rows = append(rows, Row{Index: idx, Label: l.Items[idx], Selected: idx == l.Selected})
	}
	return rows
}
