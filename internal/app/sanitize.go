package app

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename reduces an uploaded filename to a safe display name:
// path components are stripped (both separator styles) and anything outside
// a conservative character set is collapsed to underscores. When nothing
// usable remains, a generated stem keeps the original extension.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))

	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	stem = unsafeFilenameChars.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "._")

	if stem == "" {
		stem = "resume-" + uuid.NewString()[:8]
	}

	return stem + ext
}
