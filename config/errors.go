package config

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errUnknownSense(s string) error {
	return fmt.Errorf("config: unknown constraint sense %q: %w", s, topdownerr.ErrConfig)
}

func errUnknownMechanism(s string) error {
	return fmt.Errorf("config: unknown mechanism %q: %w", s, topdownerr.ErrConfig)
}

func errProcessUntilTooDeep(got, max int) error {
	return fmt.Errorf("config: process_until %d exceeds %d declared geo_columns: %w", got, max, topdownerr.ErrConfig)
}
