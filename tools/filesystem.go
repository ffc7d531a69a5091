package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avelloso/reactant/config"
)

// maxFileSize is the ceiling for read_file contents.
const maxFileSize = 1_000_000

// ReadFileTool returns file contents verbatim, within the size ceiling.
type ReadFileTool struct {
	fsAccess *config.FilesystemAccess
}

func (t *ReadFileTool) Name() string { return "read_file" }

func (t *ReadFileTool) Description() string {
	return "Reads the entire content of a file. Args: file_path (string)."
}

func (t *ReadFileTool) Parameters() []string { return []string{"file_path"} }

func (t *ReadFileTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	path := args["file_path"]

	hidden, err := isPathRestricted(path, t.fsAccess.Hidden)
	if err != nil {
		return fmt.Sprintf("Read error: %v", err), nil
	}
	if hidden {
		return fmt.Sprintf("Access denied: path '%s' is hidden", path), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("File not found: %s", path), nil
		}
		return fmt.Sprintf("Read error: %v", err), nil
	}
	if info.Size() > maxFileSize {
		return "File too large (max 1MB)", nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Read error: %v", err), nil
	}
	return string(content), nil
}

// WriteFileTool writes content to a file, creating parent directories as
// needed and overwriting anything already there.
type WriteFileTool struct {
	fsAccess *config.FilesystemAccess
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Description() string {
	return "Writes content to a file, replacing it entirely. Args: file_path (string), content (string)."
}

func (t *WriteFileTool) Parameters() []string { return []string{"file_path", "content"} }

func (t *WriteFileTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	path := args["file_path"]
	content := args["content"]

	hidden, err := isPathRestricted(path, t.fsAccess.Hidden)
	if err != nil {
		return fmt.Sprintf("Write error: %v", err), nil
	}
	if hidden {
		return fmt.Sprintf("Access denied: path '%s' is hidden", path), nil
	}
	readOnly, err := isPathRestricted(path, t.fsAccess.ReadOnly)
	if err != nil {
		return fmt.Sprintf("Write error: %v", err), nil
	}
	if readOnly {
		return fmt.Sprintf("Access denied: path '%s' is read-only", path), nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Sprintf("Write error: %v", err), nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Sprintf("Write error: %v", err), nil
	}
	return fmt.Sprintf("File written: %s", path), nil
}
