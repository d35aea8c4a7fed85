package layout

// Compute runs one layout pass. It is pure: identical Params always give
// identical Results. The only error is an invalid column spec.
func Compute(p Params) (Result, error) {
	count, columnWidth, err := p.Column.Resolve(p.ContainerWidth, p.GutterWidth)
	if err != nil {
		return Result{}, err
	}

	columnHeights := make([]float64, count)
	rects := make([]Rect, len(p.Heights))
	columns := make([]int, len(p.Heights))

	place := func(i, column int) {
		height := p.Heights[i]
		rects[i] = Rect{
			Top:    columnHeights[column],
			Left:   float64(column)*columnWidth + float64(column)*p.GutterWidth,
			Width:  columnWidth,
			Height: height,
		}
		columns[i] = column
		columnHeights[column] += Round(height) + p.GutterHeight
	}

	if p.Orientation == Horizontal {
		sum := 0.0
		for _, h := range p.Heights {
			sum += Round(h) + p.GutterHeight
		}
		target := sum / float64(count)

		current := 0
		for i := range p.Heights {
			column := current
			if column >= count-1 {
				column = count - 1
			}
			place(i, column)
			if columnHeights[column] >= target {
				current++
			}
		}
	} else {
		for i := range p.Heights {
			place(i, shortestColumn(columnHeights))
		}
	}

	contentWidth := float64(count)*columnWidth + float64(count-1)*p.GutterWidth
	contentHeight := 0.0
	if len(p.Heights) > 0 {
		contentHeight = maxOf(columnHeights) - p.GutterHeight
	}

	offset := (p.ContainerWidth - contentWidth) / 2
	for i := range rects {
		rects[i].Left += offset
	}

	return Result{
		Rects:         rects,
		Columns:       columns,
		ColumnCount:   count,
		ColumnWidth:   columnWidth,
		ContentWidth:  contentWidth,
		ContentHeight: contentHeight,
	}, nil
}

// ComputeServer returns the layout used when nothing can be measured:
// n zero rects and an empty content box. A later client pass replaces it.
func ComputeServer(n int) Result {
	return Result{
		Rects:   make([]Rect, n),
		Columns: make([]int, n),
	}
}

// shortestColumn returns the first column holding the minimum height.
func shortestColumn(heights []float64) int {
	best := 0
	for i := 1; i < len(heights); i++ {
		if heights[i] < heights[best] {
			best = i
		}
	}
	return best
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
