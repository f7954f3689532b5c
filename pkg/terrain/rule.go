package terrain

import "fmt"

// Rule holds the neighbor-count thresholds of the automaton. An inactive cell
// becomes active when its active-neighbor count falls inside the birth range;
// an active cell survives (and ages) inside the survival range. The ranges
// are inclusive at both ends.
type Rule struct {
	BirthMin    int
	BirthMax    int
	SurvivalMin int
	SurvivalMax int

	// MaxAge clips the age of a surviving cell.
	MaxAge int8
}

// DefaultRule returns Conway's B3/S23 rule with ages clipped at 127.
func DefaultRule() Rule {
	return Rule{
		BirthMin:    3,
		BirthMax:    3,
		SurvivalMin: 2,
		SurvivalMax: 3,
		MaxAge:      127,
	}
}

// NextAge computes a cell's age in the next generation from its current age
// and its active Moore-neighbor count. Ages at or below zero are inactive; a
// birth produces age 1, survival increments the age up to MaxAge, everything
// else yields 0.
func (r Rule) NextAge(age int8, neighbors int) int8 {
	if age <= 0 {
		if neighbors >= r.BirthMin && neighbors <= r.BirthMax {
			return 1
		}
		return 0
	}
	if neighbors >= r.SurvivalMin && neighbors <= r.SurvivalMax {
		if age >= r.MaxAge {
			return r.MaxAge
		}
		return age + 1
	}
	return 0
}

func (r Rule) validate() error {
	if r.BirthMin < 0 || r.BirthMax > 8 || r.BirthMin > r.BirthMax {
		return fmt.Errorf("birth range [%d, %d]: %w", r.BirthMin, r.BirthMax, ErrInvalidConfiguration)
	}
	if r.SurvivalMin < 0 || r.SurvivalMax > 8 || r.SurvivalMin > r.SurvivalMax {
		return fmt.Errorf("survival range [%d, %d]: %w", r.SurvivalMin, r.SurvivalMax, ErrInvalidConfiguration)
	}
	if r.MaxAge < 1 {
		return fmt.Errorf("max age %d: %w", r.MaxAge, ErrInvalidConfiguration)
	}
	return nil
}
