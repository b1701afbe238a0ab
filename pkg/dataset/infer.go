package dataset

// maxCategoricalUnique bounds how many distinct values a non-numeric column
// may hold before it is treated as free text instead of a category.
const maxCategoricalUnique = 50

// New builds a frame from header names and raw string cells, inferring a
// semantic dtype per column.
func New(header []string, cells [][]string) *Frame {
	rows := make([][]Value, len(cells))
	for i, rawRow := range cells {
		row := make([]Value, len(header))
		for j := range header {
			if j < len(rawRow) {
				row[j] = NewValue(rawRow[j])
			} else {
				row[j] = Value{Null: true}
			}
		}
		rows[i] = row
	}

	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = Column{Name: name, DType: inferDType(rows, j)}
	}
	return &Frame{Cols: cols, Rows: rows}
}

// inferDType classifies one column from its non-null cells:
// all numeric -> numeric, all timestamps -> temporal, low cardinality ->
// categorical, otherwise text. Fully-null columns default to text.
func inferDType(rows [][]Value, col int) DType {
	nonNull := 0
	numeric := 0
	temporal := 0
	unique := make(map[string]struct{})

	for _, row := range rows {
		v := row[col]
		if v.Null {
			continue
		}
		nonNull++
		if v.HasNum {
			numeric++
		} else if _, ok := parseTime(v.Raw); ok {
			temporal++
		}
		if len(unique) <= maxCategoricalUnique {
			unique[v.Raw] = struct{}{}
		}
	}

	if nonNull == 0 {
		return Text
	}
	if numeric == nonNull {
		return Numeric
	}
	if temporal == nonNull {
		return Temporal
	}
	if len(unique) <= maxCategoricalUnique {
		return Categorical
	}
	return Text
}
