package aifields

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filename patterns for report form codes, tried in order. All three
// normalize to the canonical "CODE (MM-YY)" form.
var filenameFormPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Za-z]{1,5})\s*\((\d{2})-(\d{2})\)`), // CG (02-19)
	regexp.MustCompile(`([A-Za-z]{1,5})\s+(\d{2})-(\d{2})`),     // CG 02-19
	regexp.MustCompile(`([A-Za-z]{1,5})-(\d{2})-(\d{2})`),       // CG-02-19
}

// formCodeFromFilename extracts a report form code embedded in the original
// filename, or "" when no pattern matches.
func formCodeFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, re := range filenameFormPatterns {
		if m := re.FindStringSubmatch(base); m != nil {
			return fmt.Sprintf("%s (%s-%s)", strings.ToUpper(m[1]), m[2], m[3])
		}
	}
	return ""
}
