package files

import (
	"os"
	"path/filepath"
	"strings"
)

// Ext is the extension of every finished output file.
const Ext = ".mp3"

// OutputName returns the expected output filename for a task.
func OutputName(taskID string) string {
	return taskID + Ext
}

// OutputPath returns the full path of the expected output file.
func OutputPath(dir, taskID string) string {
	return filepath.Join(dir, OutputName(taskID))
}

// OutputTemplate returns the output path template handed to the media tool,
// with the extension left for the tool to fill in.
func OutputTemplate(dir, taskID string) string {
	return filepath.Join(dir, taskID+".%(ext)s")
}

// FindOutput locates the finished output file for a task and reports its
// size. The expected name is checked first; the tool sometimes writes
// under the original extension before converting, so fall back to
// scanning for any file with the task-id prefix and the target extension.
func FindOutput(dir, taskID string) (string, int64, bool) {
	if info, err := os.Stat(OutputPath(dir, taskID)); err == nil && !info.IsDir() {
		return OutputName(taskID), info.Size(), true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, taskID) && strings.HasSuffix(name, Ext) {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			return name, info.Size(), true
		}
	}
	return "", 0, false
}
