package optimizer

// Sense is the relational operator a Constraint row enforces.
type Sense int

const (
	Eq Sense = iota
	LE
	GE
)

// Constraint is one linear row: Coefficients . x <Sense> RHS.
type Constraint struct {
	Coefficients []float64
	Sense        Sense
	RHS          float64
}

// zeroOneSubset reports whether every coefficient is exactly 0 or 1, and
// returns the indices where it is 1.
func (c Constraint) zeroOneSubset() ([]int, bool) {
	idx := make([]int, 0, len(c.Coefficients))
	for i, v := range c.Coefficients {
		switch v {
		case 0:
		case 1:
			idx = append(idx, i)
		default:
			return nil, false
		}
	}
	return idx, true
}
