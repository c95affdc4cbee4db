package geotree

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errMissingGeoValue(rowIdx, level int) error {
	return fmt.Errorf("geotree: record %d missing geographic value for level %d: %w", rowIdx, level, topdownerr.ErrInput)
}

func errDepthTooDeep(requested, max int) error {
	return fmt.Errorf("geotree: requested depth %d exceeds declared geographic attributes (%d): %w", requested, max, topdownerr.ErrConfig)
}

func errExtendNotDeeper(current, requested int) error {
	return fmt.Errorf("geotree: extend depth %d must be greater than current depth %d: %w", requested, current, topdownerr.ErrConfig)
}
