package optimizer

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errInfeasible(format string, args ...interface{}) error {
	return fmt.Errorf("optimizer: infeasible: %s: %w", fmt.Sprintf(format, args...), topdownerr.ErrInfeasible)
}

func errSolver(format string, args ...interface{}) error {
	return fmt.Errorf("optimizer: %s: %w", fmt.Sprintf(format, args...), topdownerr.ErrSolver)
}
