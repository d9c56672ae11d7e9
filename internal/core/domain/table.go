package domain

// Row maps a column name to its raw cell text.
// An empty string or an absent key both mean null.
type Row map[string]string

// Table is an ordered sequence of rows sharing a column set.
// It is the in-memory form of a spreadsheet extract or a delimited file
// and lives only for the duration of a run.
type Table struct {
	// Source names where the rows came from (file path or description).
	Source string

	// Columns is the ordered column set.
	Columns []string

	// Rows holds the data rows in source order.
	Rows []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(source string, columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Source: source, Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

// AddColumn appends a column if it is not already present.
// Existing rows are left untouched: a missing key reads as null.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumn removes a column and its cells.
func (t *Table) DropColumn(name string) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// RenameColumn renames a column in place, keeping its position.
// If the new name already exists the rename is skipped and false is returned.
func (t *Table) RenameColumn(from, to string) bool {
	if from == to {
		return true
	}
	idx := t.columnIndex(from)
	if idx < 0 || t.HasColumn(to) {
		return false
	}
	t.Columns[idx] = to
	for _, row := range t.Rows {
		if v, ok := row[from]; ok {
			delete(row, from)
			row[to] = v
		}
	}
	return true
}

// Append adds a row. Keys outside the column set are kept but not exported.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Column returns every cell of a column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out
}

// Values returns a row's cells ordered by the table's columns.
func (t *Table) Values(i int) []string {
	out := make([]string, len(t.Columns))
	for j, col := range t.Columns {
		out[j] = t.Rows[i][col]
	}
	return out
}

func (t *Table) columnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
