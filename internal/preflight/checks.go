package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"folio/internal/deps"
	"folio/internal/fileutil"
)

// CheckEncoder runs the encoder version query.
func CheckEncoder(ctx context.Context, binary string) Result {
	status := deps.EncoderStatus(ctx, binary)
	return Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckOutputDirectory passes when path is a writable directory, or when it
// does not exist yet but its nearest existing parent is writable.
func CheckOutputDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckSources counts how many configured names exist in dir. Missing files
// are reported but do not fail the check; batches skip them. An empty list
// means the directory is enumerated at run time.
func CheckSources(name, dir string, names []string) Result {
	if len(names) == 0 {
		return Result{Name: name, Passed: true, Detail: "directory listing"}
	}
	var missing []string
	for _, n := range names {
		ok, err := fileutil.Exists(filepath.Join(dir, n))
		if err != nil || !ok {
			missing = append(missing, n)
		}
	}
	present := len(names) - len(missing)
	detail := fmt.Sprintf("%d of %d present", present, len(names))
	if len(missing) > 0 {
		detail += fmt.Sprintf(" (missing: %s)", strings.Join(missing, ", "))
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckSystemDeps reports PATH availability of the external binaries folio
// shells out to.
func CheckSystemDeps(encoderBinary string) []deps.Status {
	if strings.TrimSpace(encoderBinary) == "" {
		encoderBinary = "ffmpeg"
	}
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     encoderBinary,
			Description: "Required for video optimization",
		},
	})
}
