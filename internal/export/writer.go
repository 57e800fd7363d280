package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// Kind identifies an export action.
type Kind string

const (
	KindJSON    Kind = "json"
	KindCSV     Kind = "csv"
	KindCommand Kind = "command"
	KindCharts  Kind = "charts"
)

// SaveFile writes data to dir/name, creating dir if needed, and returns
// the full path.
func SaveFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// Status messages shown after a clipboard copy.
const (
	CopiedMessage     = "Copied cURL."
	CopyFailedMessage = "Copy failed."
)

// CopyCommand copies cmd and returns the status message to display.
func CopyCommand(cb Clipboard, cmd string) (string, error) {
	if err := cb.WriteAll(cmd); err != nil {
		return CopyFailedMessage, fmt.Errorf("failed to copy command: %w", err)
	}
	return CopiedMessage, nil
}
