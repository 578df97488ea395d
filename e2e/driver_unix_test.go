//go:build e2e && unix

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "codexport_e2e" // set by TestMain

// Keys understood by the file list
const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
	KeySpace = " "
	KeyDown  = "j"
	KeyUp    = "k"
	KeyQuit  = "q"
)

const (
	screenTimeout = 3 * time.Second
	tailBytes     = 4096
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// screenLog keeps everything the app wrote to its terminal, capped to the
// most recent bytes
type screenLog struct {
	mu    sync.Mutex
	data  []byte
	limit int
}

func (l *screenLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = append(l.data, p...)
	if over := len(l.data) - l.limit; over > 0 {
		l.data = l.data[over:]
	}
	return len(p), nil
}

// Plain returns the captured output without escape sequences
func (l *screenLog) Plain() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ansiRe.ReplaceAllString(string(l.data), "")
}

// Session runs codexport on a pseudo terminal inside a throwaway workspace
type Session struct {
	t         *testing.T
	workspace string
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	screen    *screenLog
	exited    chan struct{} // closed once the process has been reaped
	exitErr   error
}

// NewSession creates the workspace. The screen tail is saved to the temp
// directory when the test fails.
func NewSession(t *testing.T) *Session {
	t.Helper()
	dir := t.TempDir()
	// resolve /tmp -> /private/tmp style links so paths compare equal
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	s := &Session{
		t:         t,
		workspace: dir,
		screen:    &screenLog{limit: 1 << 20},
	}
	t.Cleanup(func() {
		if t.Failed() {
			s.DumpTail("screen")
		}
		s.Close()
	})
	return s
}

// WriteFile creates a file below the workspace, with parent directories
func (s *Session) WriteFile(rel, content string) error {
	full := filepath.Join(s.workspace, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0o644)
}

// ReadFile reads a file below the workspace
func (s *Session) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.workspace, filepath.FromSlash(rel)))
	return string(data), err
}

// Exists reports whether rel exists below the workspace
func (s *Session) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(s.workspace, filepath.FromSlash(rel)))
	return err == nil
}

// Start launches codexport in the workspace on a 120x40 terminal
func (s *Session) Start(args ...string) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 40, Cols: 120}); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to size pty: %w", err)
	}

	cmd := exec.Command(binPath, args...)
	cmd.Dir = s.workspace
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LANG=C.UTF-8",
		"HOME="+s.workspace,
	)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty

	if err := cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}
	s.pty, s.tty, s.cmd = ptmx, tty, cmd

	go func() { _, _ = io.Copy(s.screen, ptmx) }()

	s.exited = make(chan struct{})
	go func() {
		s.exitErr = cmd.Wait()
		close(s.exited)
	}()
	return nil
}

// Send writes keys to the terminal, pausing briefly after each so text
// input sees them as separate key presses
func (s *Session) Send(keys ...string) error {
	for _, k := range keys {
		if _, err := s.pty.Write([]byte(k)); err != nil {
			return err
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

// Type sends text one rune at a time
func (s *Session) Type(text string) error {
	for _, r := range text {
		if err := s.Send(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// Down moves the cursor n rows down
func (s *Session) Down(n int) error {
	return s.Send(strings.Split(strings.Repeat(KeyDown, n), "")...)
}

// Up moves the cursor n rows up
func (s *Session) Up(n int) error {
	return s.Send(strings.Split(strings.Repeat(KeyUp, n), "")...)
}

// WaitFor polls the plain screen output until pred holds. The error carries
// the tail of the screen.
func (s *Session) WaitFor(pred func(string) bool, timeout time.Duration, what string) error {
	deadline := time.Now().Add(timeout)
	for {
		if pred(s.screen.Plain()) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %s\n--- screen tail ---\n%s", what, s.Tail())
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// See waits for text to show up on screen
func (s *Session) See(text string) error {
	return s.WaitFor(func(out string) bool { return strings.Contains(out, text) }, screenTimeout, fmt.Sprintf("%q", text))
}

// NeverSee checks text does not show up within d
func (s *Session) NeverSee(text string, d time.Duration) error {
	if s.WaitFor(func(out string) bool { return strings.Contains(out, text) }, d, "") == nil {
		return fmt.Errorf("unexpected %q on screen\n--- screen tail ---\n%s", text, s.Tail())
	}
	return nil
}

// WaitExit waits for the process to exit and returns its error
func (s *Session) WaitExit() error {
	select {
	case <-s.exited:
		return s.exitErr
	case <-time.After(screenTimeout):
		return fmt.Errorf("process did not exit within %s\n--- screen tail ---\n%s", screenTimeout, s.Tail())
	}
}

// Tail returns the last bytes of the plain screen output
func (s *Session) Tail() string {
	out := s.screen.Plain()
	if len(out) > tailBytes {
		out = out[len(out)-tailBytes:]
	}
	return out
}

// DumpTail saves the screen tail to a file and logs its location
func (s *Session) DumpTail(name string) {
	p := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.txt", strings.ReplaceAll(s.t.Name(), "/", "_"), name))
	if err := os.WriteFile(p, []byte(s.Tail()), 0o644); err == nil {
		s.t.Logf("Saved screen tail to %s", p)
	}
}

// Close hangs up the terminal and stops the app if it is still running
func (s *Session) Close() {
	if s.pty != nil {
		_ = s.pty.Close()
		_ = s.tty.Close()
		s.pty, s.tty = nil, nil
	}
	if s.cmd != nil {
		_ = s.cmd.Process.Kill()
		select {
		case <-s.exited:
		case <-time.After(screenTimeout):
		}
	}
}
