package chart

import (
	"time"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"

	"github.com/google/uuid"
)

// Kind names a chart family the rendering collaborator knows how to draw.
type Kind string

const (
	Bar       Kind = "bar"
	Line      Kind = "line"
	Pie       Kind = "pie"
	Histogram Kind = "histogram"
	Scatter   Kind = "scatter"
	Box       Kind = "box"
	Heatmap   Kind = "heatmap"
)

// AutoCap bounds how many specs auto mode proposes.
const AutoCap = 5

// Spec is the passive chart description handed to renderers. The core never
// draws anything itself.
type Spec struct {
	Kind       Kind      `json:"kind"`
	X          string    `json:"x"`
	Y          string    `json:"y,omitempty"`
	Title      string    `json:"title"`
	PayloadRef string    `json:"payload_ref"`
	CreatedAt  time.Time `json:"created_at"`
}

func newSpec(kind Kind, x, y, title string) Spec {
	return Spec{
		Kind:       kind,
		X:          x,
		Y:          y,
		Title:      title,
		PayloadRef: "charts/" + uuid.NewString() + ".json",
		CreatedAt:  time.Now(),
	}
}

// ForPair is the dtype-pair decision table. y empty means a single-column
// chart.
func ForPair(xType dataset.DType, yType dataset.DType, hasY bool) (Kind, error) {
	if !hasY {
		if xType == dataset.Numeric {
			return Histogram, nil
		}
		if xType == dataset.Categorical {
			return Bar, nil
		}
		return "", apperror.NewValidation("x_col", "single-column charts need a numeric or categorical column")
	}
	switch {
	case xType == dataset.Numeric && yType == dataset.Numeric:
		return Scatter, nil
	case xType == dataset.Categorical && yType == dataset.Numeric:
		return Bar, nil
	case xType == dataset.Temporal && yType == dataset.Numeric:
		return Line, nil
	}
	return "", apperror.NewValidation("y_col", "no chart kind for "+string(xType)+" vs "+string(yType))
}

// Recommend proposes up to AutoCap specs off the column profile:
// numeric-numeric scatter pairs first, then categorical-numeric bars, then
// single-column histograms, and a correlation heatmap when two or more
// numeric columns exist. No pair is proposed twice.
func Recommend(profile []dataset.ColumnProfile) []Spec {
	var numeric, categorical, temporal []string
	for _, p := range profile {
		switch p.DType {
		case dataset.Numeric:
			numeric = append(numeric, p.Name)
		case dataset.Categorical:
			categorical = append(categorical, p.Name)
		case dataset.Temporal:
			temporal = append(temporal, p.Name)
		}
	}

	var specs []Spec
	add := func(s Spec) bool {
		if len(specs) >= AutoCap {
			return false
		}
		specs = append(specs, s)
		return true
	}

	if len(numeric) >= 2 {
		add(newSpec(Heatmap, "", "", "Correlation heatmap of numeric columns"))
	}

	seen := make(map[string]struct{})
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			key := numeric[i] + "|" + numeric[j]
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if !add(newSpec(Scatter, numeric[i], numeric[j], numeric[i]+" vs "+numeric[j])) {
				return specs
			}
		}
	}
	for _, cat := range categorical {
		for _, num := range numeric {
			if !add(newSpec(Bar, cat, num, num+" by "+cat)) {
				return specs
			}
		}
	}
	for _, tmp := range temporal {
		for _, num := range numeric {
			if !add(newSpec(Line, tmp, num, num+" over "+tmp)) {
				return specs
			}
		}
	}
	for _, num := range numeric {
		if !add(newSpec(Histogram, num, "", "Distribution of "+num)) {
			return specs
		}
	}
	return specs
}

// Custom validates an explicit chart request against the profile.
func Custom(profile []dataset.ColumnProfile, kind Kind, x, y string) (Spec, error) {
	find := func(name string) (dataset.ColumnProfile, bool) {
		for _, p := range profile {
			if p.Name == name {
				return p, true
			}
		}
		return dataset.ColumnProfile{}, false
	}

	xp, ok := find(x)
	if !ok {
		return Spec{}, apperror.NewValidation("x_col", "column "+x+" does not exist")
	}
	title := string(kind) + " of " + x

	if y == "" {
		if _, err := ForPair(xp.DType, "", false); err != nil && kind != Pie && kind != Box {
			return Spec{}, err
		}
		return newSpec(kind, x, "", title), nil
	}

	yp, ok := find(y)
	if !ok {
		return Spec{}, apperror.NewValidation("y_col", "column "+y+" does not exist")
	}
	if _, err := ForPair(xp.DType, yp.DType, true); err != nil && kind != Pie && kind != Box {
		return Spec{}, err
	}
	return newSpec(kind, x, y, title+" vs "+y), nil
}
