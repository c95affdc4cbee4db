package census

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errMissingColumn(name string) error {
	return fmt.Errorf("census: column %q not found in header: %w", name, topdownerr.ErrInput)
}

func errRowWidth(rowIdx, want, got int) error {
	return fmt.Errorf("census: row %d has %d fields, header declares %d: %w", rowIdx, got, want, topdownerr.ErrInput)
}

func errMissingValue(rowIdx int, column string) error {
	return fmt.Errorf("census: row %d missing value for column %q: %w", rowIdx, column, topdownerr.ErrInput)
}
