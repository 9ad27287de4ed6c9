package parex

import (
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteOutputs persists every captured buffer to dir, one file per process
// named <pid>.log. Files are replaced atomically, so a crash mid-write never
// leaves a truncated log behind. Call it after Wait has returned; earlier
// calls persist whatever has been drained so far.
//
// All buffers are attempted even if some writes fail; failures are
// aggregated into the returned error.
func (m *TaskManager) WriteOutputs(dir string) error {
	merr := &MultiError{}

	for pid, buf := range m.outputs {
		path := filepath.Join(dir, fmt.Sprintf("%d.log", pid))
		merr.Add(renameio.WriteFile(path, buf.Bytes(), LogFileMode))
	}

	return merr.Err()
}
