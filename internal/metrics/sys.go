package metrics

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDiskSize reports the human-readable size of the data directory,
// shown alongside the usage report.
func DataDiskSize(dataPath string) string {
	var size int64
	_ = filepath.Walk(dataPath, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
