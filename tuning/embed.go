package tuning

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFile is the tuning file loaded when no path is given.
const DefaultFile = "default.yaml"

//go:embed *.yaml
var FS embed.FS

// Read returns the named tuning file, preferring a copy under tuning/ on disk
// so edits take effect without a rebuild.
func Read(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return FS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	if path == "" {
		return DefaultFile
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "tuning/"); ok {
		return after
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("tuning", filepath.FromSlash(clean))
}
