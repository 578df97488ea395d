package domain

// Entry represents one row of the scanned tree
type Entry struct {
	Path     string // relative to the scan root, always slash separated
	IsDir    bool
	Selected bool
	Expanded bool // reserved for tree folding, never toggled by the UI
}

// IsFile reports whether the entry is a file that can be exported
func (e Entry) IsFile() bool {
	return !e.IsDir
}

// ScanResult summarizes a completed directory scan
type ScanResult struct {
	Root    string
	Entries []Entry
	Dirs    int
	Files   int
	Skipped int // unreadable paths that were left out
}
