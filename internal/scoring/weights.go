package scoring

import "github.com/alexanderramin/firstmap/internal/domain"

const (
	// PriorityLimit is how many sections the draft recommends focusing on.
	PriorityLimit = 3
	// ActivityLimit is how many suggestions per audience each priority carries.
	ActivityLimit = 2
	// YoungAgeRelevance scales a problem signal on an item the child is not
	// expected to manage yet.
	YoungAgeRelevance = 0.3
)

// StatusWeight is the problem signal of one answer. Mastery contributes
// nothing; an unknown status contributes nothing.
func StatusWeight(s domain.StatusKey) float64 {
	switch s {
	case domain.StatusWithHelp:
		return 1
	case domain.StatusCannot:
		return 2
	case domain.StatusNotTested, domain.StatusNotInterested:
		return 0.5
	default:
		return 0
	}
}

// AgeRelevance is 1 when the child has reached the item's expected age or
// the item has none, and YoungAgeRelevance otherwise.
func AgeRelevance(childAge float64, expectedAge *float64) float64 {
	if reachedAge(childAge, expectedAge) {
		return 1
	}
	return YoungAgeRelevance
}

func reachedAge(childAge float64, expectedAge *float64) bool {
	return expectedAge == nil || childAge >= *expectedAge
}
