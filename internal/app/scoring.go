package app

// Points awarded by the tiered scoring rule.
const (
	scoreFirstHint  = 5
	scoreSecondHint = 3
	scoreThirdHint  = 1
	placementBonus  = 5
)

// HintScore maps the hint index at which the correct guess was made to its
// point value: index 0 pays 5, index 1 pays 3, index 2 or later pays 1.
func HintScore(hintIndex int) int {
	switch {
	case hintIndex <= 0:
		return scoreFirstHint
	case hintIndex == 1:
		return scoreSecondHint
	default:
		return scoreThirdHint
	}
}

// PlacementBonus pays a flat 5 for clicking the exact target grid cell, 0 for
// anything else.
func PlacementBonus(target, clicked string) int {
	if target != "" && target == clicked {
		return placementBonus
	}
	return 0
}
