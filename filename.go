package mdpdf

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultFilenameBase is used when the user gave no filename.
const DefaultFilenameBase = "document"

// timestampLayout renders as YYYY-MM-DD-HHMM in local time.
const timestampLayout = "2006-01-02-1504"

// SanitizeBase reduces a user-entered filename to a bare base name: no
// directories, no ".pdf" suffix, no surrounding whitespace.
func SanitizeBase(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.FromSlash(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	return strings.TrimSpace(name)
}

// TimestampedFilename returns "<base>-YYYY-MM-DD-HHMM.pdf" for now in its
// own location. An empty base becomes DefaultFilenameBase.
func TimestampedFilename(base string, now time.Time) string {
	base = SanitizeBase(base)
	if base == "" {
		base = DefaultFilenameBase
	}
	return base + "-" + now.Format(timestampLayout) + ".pdf"
}
