package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	"go.uber.org/zap"

	"codexport/internal/domain"
)

// Previewer shows a file in the ov pager with syntax highlighting
type Previewer struct {
	root   string
	style  string
	logger *zap.Logger
}

// NewPreviewer creates a previewer for files below root. style names a chroma
// style; unknown names fall back to chroma's default.
func NewPreviewer(root, style string, logger *zap.Logger) *Previewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Previewer{root: root, style: style, logger: logger}
}

// Load reads a file below root and returns it highlighted for a 256-color
// terminal
func (p *Previewer) Load(relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(relPath)))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", relPath)
	}
	return p.highlight(relPath, string(data)), nil
}

// Command returns a command that runs the pager over the file, suspending the
// program while it is open
func (p *Previewer) Command(relPath string) tea.Cmd {
	content, err := p.Load(relPath)
	if err != nil {
		p.logger.Warn("Preview failed", zap.String("path", relPath), zap.Error(err))
		return func() tea.Msg { return previewDoneMsg{path: relPath, err: err} }
	}

	p.logger.Debug("Opening preview", zap.String("path", relPath))
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return previewDoneMsg{path: relPath, err: err}
	})
}

// highlight applies syntax highlighting. Highlighting failures return the
// content unchanged.
func (p *Previewer) highlight(relPath, content string) string {
	lexer := lexers.Get(domain.LanguageTag(relPath))
	if lexer == nil {
		lexer = lexers.Match(filepath.Base(relPath))
	}
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(p.style)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

// pagerCommand runs ov as a tea.ExecCommand. ov drives the terminal itself,
// so the standard streams handed over by bubbletea are not used.
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}
