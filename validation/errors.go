package validation

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errUnknownMetric(name string) error {
	return fmt.Errorf("validation: unknown distance metric %q: %w", name, topdownerr.ErrConfig)
}

func errLengthMismatch(a, b int) error {
	return fmt.Errorf("validation: vectors of length %d and %d are not comparable: %w", a, b, topdownerr.ErrInput)
}
