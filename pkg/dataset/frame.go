package dataset

import "strings"

// Column pairs a declared name with its inferred semantic type.
type Column struct {
	Name  string `json:"name"`
	DType DType  `json:"dtype"`
}

// Frame is one immutable generation of the tabular data. Transforms never
// mutate a Frame in place; they produce a new one via Clone.
type Frame struct {
	Cols []Column  `json:"cols"`
	Rows [][]Value `json:"rows"`
}

func (f *Frame) RowCount() int {
	return len(f.Rows)
}

func (f *Frame) ColumnCount() int {
	return len(f.Cols)
}

// ColumnIndex resolves a column name case-insensitively. Returns -1 when the
// column is not declared.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Cols {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// ColumnNames returns declared names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Cols))
	for i, c := range f.Cols {
		names[i] = c.Name
	}
	return names
}

// ColumnsOf returns the names of all columns with the given dtype.
func (f *Frame) ColumnsOf(dt DType) []string {
	var names []string
	for _, c := range f.Cols {
		if c.DType == dt {
			names = append(names, c.Name)
		}
	}
	return names
}

// NullCount counts missing cells in one column.
func (f *Frame) NullCount(col int) int {
	count := 0
	for _, row := range f.Rows {
		if row[col].Null {
			count++
		}
	}
	return count
}

// Clone deep-copies the frame into a new generation.
func (f *Frame) Clone() *Frame {
	cols := make([]Column, len(f.Cols))
	copy(cols, f.Cols)
	rows := make([][]Value, len(f.Rows))
	for i, row := range f.Rows {
		r := make([]Value, len(row))
		copy(r, row)
		rows[i] = r
	}
	return &Frame{Cols: cols, Rows: rows}
}

// Head returns up to n rows rendered back to raw strings, for previews.
func (f *Frame) Head(n int) [][]string {
	if n > len(f.Rows) {
		n = len(f.Rows)
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		cells := make([]string, len(f.Rows[i]))
		for j, v := range f.Rows[i] {
			cells[j] = v.Raw
		}
		out[i] = cells
	}
	return out
}

// rowKey joins the raw cells so duplicate detection can compare full rows.
func (f *Frame) rowKey(i int) string {
	var sb strings.Builder
	for j, v := range f.Rows[i] {
		if j > 0 {
			sb.WriteByte('\x1f')
		}
		if v.Null {
			sb.WriteString("\x00")
		} else {
			sb.WriteString(v.Raw)
		}
	}
	return sb.String()
}

// DuplicateCount reports how many rows are exact duplicates of an earlier row.
func (f *Frame) DuplicateCount() int {
	seen := make(map[string]struct{}, len(f.Rows))
	dups := 0
	for i := range f.Rows {
		key := f.rowKey(i)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// DuplicateKeys returns, per row index, the full-row equality key. Used by the
// cleaning engine to apply keep-first/keep-last policies.
func (f *Frame) DuplicateKeys() []string {
	keys := make([]string, len(f.Rows))
	for i := range f.Rows {
		keys[i] = f.rowKey(i)
	}
	return keys
}

// SelectRows builds a new frame keeping the given row indices, in order.
func (f *Frame) SelectRows(idx []int) *Frame {
	cols := make([]Column, len(f.Cols))
	copy(cols, f.Cols)
	rows := make([][]Value, 0, len(idx))
	for _, i := range idx {
		r := make([]Value, len(f.Rows[i]))
		copy(r, f.Rows[i])
		rows = append(rows, r)
	}
	return &Frame{Cols: cols, Rows: rows}
}
