package checkpoint

import (
	"fmt"

	"github.com/yiruzz/topdowndp/topdownerr"
)

func errBadMagic(got [4]byte) error {
	return fmt.Errorf("checkpoint: not a topdown checkpoint file (magic %q): %w", got[:], topdownerr.ErrState)
}

func errVersionMismatch(got, want uint32) error {
	return fmt.Errorf("checkpoint: format version %d unsupported, this build reads %d: %w", got, want, topdownerr.ErrState)
}
