package graph

import (
	"math"
	"strings"
)

// GridLabels arranges labels into a near-square grid: labels within a row are
// joined with ", ", rows with "\n". Rows holding one extra label are contiguous
// and centred vertically.
func GridLabels(labels []string) string {
	n := len(labels)
	if n == 0 {
		return ""
	}

	base := int(math.Sqrt(float64(n)))
	for (base+1)*(base+1) <= n {
		base++
	}
	for base*base > n {
		base--
	}

	height := base
	if n > (base+1)*base {
		height = base + 1
	}
	extra := n - base*height
	extraStart := (height - extra) / 2
	extraEnd := extraStart + extra

	rows := make([]string, 0, height)
	next := 0
	for r := 0; r < height; r++ {
		width := base
		if r >= extraStart && r < extraEnd {
			width++
		}
		rows = append(rows, strings.Join(labels[next:next+width], ", "))
		next += width
	}
	return strings.Join(rows, "\n")
}

// formatLabels joins short lists on one line and grids longer ones.
func formatLabels(labels []string, threshold int) string {
	if len(labels) > threshold {
		return GridLabels(labels)
	}
	return strings.Join(labels, ", ")
}
