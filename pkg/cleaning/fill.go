package cleaning

import (
	"sort"
	"strconv"

	"ai-analytics-be/pkg/dataset"
)

func numericValues(f *dataset.Frame, col int) []float64 {
	var nums []float64
	for _, row := range f.Rows {
		if !row[col].Null && row[col].HasNum {
			nums = append(nums, row[col].Num)
		}
	}
	return nums
}

func setNumeric(f *dataset.Frame, row, col int, num float64) {
	f.Rows[row][col] = dataset.Value{
		Raw:    strconv.FormatFloat(num, 'f', -1, 64),
		Num:    num,
		HasNum: true,
	}
}

func fillMean(f *dataset.Frame, col int) {
	nums := numericValues(f, col)
	if len(nums) == 0 {
		return
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	mean := sum / float64(len(nums))
	for i := range f.Rows {
		if f.Rows[i][col].Null {
			setNumeric(f, i, col, mean)
		}
	}
}

func fillMedian(f *dataset.Frame, col int) {
	nums := numericValues(f, col)
	if len(nums) == 0 {
		return
	}
	sort.Float64s(nums)
	var median float64
	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		median = (nums[mid-1] + nums[mid]) / 2
	} else {
		median = nums[mid]
	}
	for i := range f.Rows {
		if f.Rows[i][col].Null {
			setNumeric(f, i, col, median)
		}
	}
}

// fillMode replaces nulls with the most frequent raw value. First-seen wins
// on frequency ties so the output is deterministic.
func fillMode(f *dataset.Frame, col int) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range f.Rows {
		if row[col].Null {
			continue
		}
		if _, seen := counts[row[col].Raw]; !seen {
			order = append(order, row[col].Raw)
		}
		counts[row[col].Raw]++
	}
	if len(order) == 0 {
		return
	}
	mode := order[0]
	for _, raw := range order {
		if counts[raw] > counts[mode] {
			mode = raw
		}
	}
	for i := range f.Rows {
		if f.Rows[i][col].Null {
			f.Rows[i][col] = dataset.NewValue(mode)
		}
	}
}

func fillForward(f *dataset.Frame, col int) {
	var last *dataset.Value
	for i := range f.Rows {
		if f.Rows[i][col].Null {
			if last != nil {
				f.Rows[i][col] = *last
			}
			continue
		}
		v := f.Rows[i][col]
		last = &v
	}
}

func fillBackward(f *dataset.Frame, col int) {
	var next *dataset.Value
	for i := len(f.Rows) - 1; i >= 0; i-- {
		if f.Rows[i][col].Null {
			if next != nil {
				f.Rows[i][col] = *next
			}
			continue
		}
		v := f.Rows[i][col]
		next = &v
	}
}
