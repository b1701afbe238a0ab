package nlq

// ResultKind tags the shape of a query result.
type ResultKind string

const (
	KindScalar ResultKind = "scalar"
	KindSeries ResultKind = "series"
	KindTable  ResultKind = "table"
)

// SeriesEntry is one ordered key/value pair of a grouped result.
type SeriesEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Table is a column-oriented tabular result rendered back to raw strings.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Result is the tagged union a resolved query produces: exactly one of
// Scalar, Series or Table is populated, matching Kind.
type Result struct {
	Kind   ResultKind    `json:"kind"`
	Scalar *float64      `json:"scalar,omitempty"`
	Series []SeriesEntry `json:"series,omitempty"`
	Table  *Table        `json:"table,omitempty"`
}

func scalarResult(v float64) *Result {
	return &Result{Kind: KindScalar, Scalar: &v}
}

func seriesResult(entries []SeriesEntry) *Result {
	return &Result{Kind: KindSeries, Series: entries}
}

func tableResult(columns []string, rows [][]string) *Result {
	return &Result{Kind: KindTable, Table: &Table{Columns: columns, Rows: rows}}
}
