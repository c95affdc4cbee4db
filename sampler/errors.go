package sampler

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

var errNegativeRate = fmt.Errorf("sampler: negative rate passed to bernoulliExp: %w", topdownerr.ErrParameter)

// paramError reports a non-positive or non-finite scale/variance argument.
func paramError(name string, v float64) error {
	return fmt.Errorf("sampler: %s must be positive and finite, got %v: %w", name, v, topdownerr.ErrParameter)
}
