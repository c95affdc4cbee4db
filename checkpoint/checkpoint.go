package checkpoint

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/yiruzz/topdowndp/topdownerr"
)

// Save writes cp to path as a versioned binary envelope: a 4-byte magic, a
// big-endian uint32 format version, then the gob-encoded payload. Save
// truncates and replaces any existing file at path.
func Save(path string, cp Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("checkpoint: writing magic: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, formatVersion); err != nil {
		return fmt.Errorf("checkpoint: writing version: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(toState(cp)); err != nil {
		return fmt.Errorf("checkpoint: encoding state: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("checkpoint: flushing %s: %w", path, err)
	}
	return f.Sync()
}

// Load reads a checkpoint previously written by Save. It rejects files
// whose magic does not match or whose format version this build does not
// know how to decode with topdownerr.ErrState, so a resume attempt against
// an incompatible or corrupt file fails before any resumed computation runs.
func Load(path string) (Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: reading magic: %w", err)
	}
	if got != magic {
		return Checkpoint{}, errBadMagic(got)
	}

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: reading version: %w", err)
	}
	if version != formatVersion {
		return Checkpoint{}, errVersionMismatch(version, formatVersion)
	}

	var st state
	if err := gob.NewDecoder(r).Decode(&st); err != nil {
		return Checkpoint{}, fmt.Errorf("checkpoint: decoding state: %w: %w", err, topdownerr.ErrState)
	}

	return fromState(st)
}
