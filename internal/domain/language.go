package domain

import (
	"path"
	"strings"
)

// DockerfileTag is the fence tag used for every Dockerfile, whatever its extension
const DockerfileTag = "dockerfile"

// languages maps a lower-cased file extension to the tag written after the
// opening code fence.
var languages = map[string]string{
	".py":         "Python",
	".dockerfile": "Dockerfile",
	".yml":        "YAML",
	".yaml":       "YAML",
	".ini":        "INI",
	".json":       "JSON",
	".md":         "Markdown",
	".txt":        "Text",
	".css":        "CSS",
	".js":         "JS",
	".html":       "HTML",
	".sh":         "SHELL",
	".ts":         "TS",
	".tsx":        "TSX",
	".jsx":        "JSX",
}

// Extension returns the lower-cased extension of name including the dot.
// Leading dots of the base name do not start an extension, so ".json" has none.
func Extension(name string) string {
	base := path.Base(name)
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || strings.Trim(base[:dot], ".") == "" {
		return ""
	}
	return strings.ToLower(base[dot:])
}

// IsSupported reports whether a file with the given base name is listed by the scanner
func IsSupported(name string) bool {
	if strings.EqualFold(name, DockerfileTag) {
		return true
	}
	_, ok := languages[Extension(name)]
	return ok
}

// LanguageTag returns the fence tag for a relative path. Unknown extensions
// yield "".
func LanguageTag(relPath string) string {
	if strings.HasSuffix(strings.ToLower(relPath), DockerfileTag) {
		return DockerfileTag
	}
	return languages[Extension(relPath)]
}
