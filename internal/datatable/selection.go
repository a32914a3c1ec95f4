package datatable

// ToggleRowSelection adds row to the selection, or removes it if it is
// already selected.
func (t *Table[T]) ToggleRowSelection(row T) {
	if !t.opts.Selectable {
		return
	}
	key := t.identity(row)
	if _, ok := t.selected[key]; ok {
		delete(t.selected, key)
	} else {
		t.selected[key] = struct{}{}
	}
	t.notifySelection()
}

// SelectKey toggles the selection of the row with the given RowKey.
// Returns false if no such row exists.
func (t *Table[T]) SelectKey(key string) bool {
	if !t.opts.Selectable {
		return false
	}
	row, ok := t.RowByKey(key)
	if !ok {
		return false
	}
	t.ToggleRowSelection(row)
	return true
}

// ToggleSelectAll acts on the visible page only: if every row on the
// page is selected they are all deselected, otherwise all of them are
// selected. Rows on other pages keep their state.
func (t *Table[T]) ToggleSelectAll() {
	if !t.opts.Selectable {
		return
	}
	page := t.View().Rows
	if len(page) == 0 {
		return
	}

	if t.allSelected(page) {
		for _, row := range page {
			delete(t.selected, t.identity(row))
		}
	} else {
		for _, row := range page {
			t.selected[t.identity(row)] = struct{}{}
		}
	}
	t.notifySelection()
}

// ClearSelection deselects every row.
func (t *Table[T]) ClearSelection() {
	if len(t.selected) == 0 {
		return
	}
	clear(t.selected)
	t.notifySelection()
}

// IsSelected reports whether row is in the selection.
func (t *Table[T]) IsSelected(row T) bool {
	_, ok := t.selected[t.identity(row)]
	return ok
}

// SelectedCount returns the number of selected rows.
func (t *Table[T]) SelectedCount() int {
	return len(t.selected)
}

// SelectedRows returns the selected rows in data order.
func (t *Table[T]) SelectedRows() []T {
	rows := make([]T, 0, len(t.selected))
	for _, row := range t.data {
		if _, ok := t.selected[t.identity(row)]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// allSelected reports whether every row in rows is selected.
func (t *Table[T]) allSelected(rows []T) bool {
	for _, row := range rows {
		if _, ok := t.selected[t.identity(row)]; !ok {
			return false
		}
	}
	return true
}

// anySelected reports whether at least one row in rows is selected.
func (t *Table[T]) anySelected(rows []T) bool {
	for _, row := range rows {
		if _, ok := t.selected[t.identity(row)]; ok {
			return true
		}
	}
	return false
}

func (t *Table[T]) notifySelection() {
	if t.opts.OnSelectionChange != nil {
		t.opts.OnSelectionChange(t.SelectedRows())
	}
}
