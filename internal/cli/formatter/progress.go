package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/firstmap/internal/scoring"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%. pct is a
// fraction in [0, 1]; the bar turns green above 66 % and red below 33 %.
func RenderProgress(pct float64, width int) string {
	pct = clampFraction(pct)
	bar := progressBlocks(pct, width)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderMasteryBar renders a compact bar without brackets or percentage,
// colored by the mastery band of answered items at pct.
func RenderMasteryBar(pct float64, width int, answered int) string {
	pct = clampFraction(pct)
	m := scoring.MasteryFor(answered, pct*100)
	return MasteryColor(m).Render(progressBlocks(pct, width))
}

func progressBlocks(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampFraction(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
