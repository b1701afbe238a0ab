package dataset

// ColumnProfile is the per-column summary recomputed whenever the active
// dataset generation changes.
type ColumnProfile struct {
	Name      string `json:"name"`
	DType     DType  `json:"dtype"`
	NullCount int    `json:"null_count"`
	Unique    int    `json:"unique"`
}

// Profile summarizes every column of the frame.
func (f *Frame) Profile() []ColumnProfile {
	profiles := make([]ColumnProfile, len(f.Cols))
	for j, c := range f.Cols {
		unique := make(map[string]struct{})
		nulls := 0
		for _, row := range f.Rows {
			if row[j].Null {
				nulls++
				continue
			}
			unique[row[j].Raw] = struct{}{}
		}
		profiles[j] = ColumnProfile{
			Name:      c.Name,
			DType:     c.DType,
			NullCount: nulls,
			Unique:    len(unique),
		}
	}
	return profiles
}
