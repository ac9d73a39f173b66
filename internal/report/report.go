// Package report renders an analysis for terminal output.
package report

import (
	"fmt"
	"strings"

	"airdist/internal/models"
)

// Format renders one line per pair: both names left-aligned and padded to
// the longest name plus two, then the distance right-aligned to one decimal
// place with a km unit.
func Format(analysis *models.Analysis) string {
	width := nameWidth(analysis.Pairs)

	var b strings.Builder
	for i, p := range analysis.Pairs {
		fmt.Fprintf(&b, "%-*s\t%-*s\t%10.1f km\n", width, p.A.Name, width, p.B.Name, analysis.Distances[i])
	}
	return b.String()
}

// Summary renders the average distance and the closest pair on one line.
func Summary(analysis *models.Analysis) string {
	closest := analysis.Closest()
	return fmt.Sprintf("Average distance: %.1f km. Closest pair: %s – %s %.1f km.",
		analysis.Average, closest.A.Name, closest.B.Name, analysis.ClosestDistance())
}

func nameWidth(pairs []models.Pair) int {
	longest := 0
	for _, p := range pairs {
		if len(p.A.Name) > longest {
			longest = len(p.A.Name)
		}
		if len(p.B.Name) > longest {
			longest = len(p.B.Name)
		}
	}
	return longest + 2
}
