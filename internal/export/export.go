// Package export writes selected files into a single Markdown document with
// one fenced code block per file.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"codexport/internal/domain"
)

// Title is the first line of every exported document
const Title = "# Code Export"

const fence = "```"

// ErrNotText is reported for selected files whose content is not valid UTF-8
var ErrNotText = errors.New("content is not valid UTF-8 text")

// Exporter writes the Markdown document. File contents are read from disk at
// export time, relative to Root.
type Exporter struct {
	Root   string
	logger *zap.Logger
}

// NewExporter creates an exporter reading files below root
func NewExporter(root string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{Root: root, logger: logger}
}

// ExportFile creates (or truncates) path and writes the document into it.
// It returns the number of file blocks written.
func (e *Exporter) ExportFile(path string, entries []domain.Entry) (int, error) {
	out, err := os.Create(path)
	if err != nil {
		e.logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n, err := e.Export(out, entries)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	return n, err
}

// Export writes the title and one block per selected file entry, in the order
// of entries. A file that cannot be read is replaced by an inline notice and
// does not stop the export; only write errors on w are returned.
func (e *Exporter) Export(w io.Writer, entries []domain.Entry) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n\n", Title); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsFile() || !entry.Selected {
			continue
		}
		count++

		if err := e.writeEntry(bw, entry); err != nil {
			return count, fmt.Errorf("failed to write export: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("failed to write export: %w", err)
	}
	e.logger.Info("Export completed", zap.Int("files", count))
	return count, nil
}

// writeEntry writes the heading and the fenced block of one file
func (e *Exporter) writeEntry(w *bufio.Writer, entry domain.Entry) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", entry.Path); err != nil {
		return err
	}

	content, readErr := e.readText(entry.Path)
	if readErr != nil {
		e.logger.Warn("Failed to read file", zap.String("path", entry.Path), zap.Error(readErr))
		_, err := fmt.Fprintf(w, "Error reading %s: %v\n\n", entry.Path, readErr)
		return err
	}

	if _, err := w.WriteString(fence + domain.LanguageTag(entry.Path) + "\n"); err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		return err
	}
	if len(content) == 0 || content[len(content)-1] != '\n' {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	_, err := w.WriteString(fence + "\n\n")
	return err
}

// readText reads the current content of a file below Root
func (e *Exporter) readText(relPath string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(e.Root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, ErrNotText
	}
	return content, nil
}
