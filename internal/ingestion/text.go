// Package ingestion turns raw resume documents into normalized text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/types"
	"golang.org/x/text/unicode/norm"
)

// Normalize cleans raw extracted text and wraps it as a ResumeText with no
// sections assigned. It never fails; empty input gives an empty value.
func Normalize(raw string) types.ResumeText {
	return types.NewResumeText(NormalizeString(raw))
}

// NormalizeString cleans extracted text while preserving its line structure.
// Applying it twice gives the same result as applying it once.
func NormalizeString(raw string) string {
	if raw == "" {
		return ""
	}

	// 1. Replace invalid UTF-8 and fold compatibility forms (ligatures, full-width)
	content := strings.ToValidUTF8(raw, string(utf8.RuneError))
	content = norm.NFKC.String(content)

	// 2. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 3. Map exotic spaces to ASCII space and drop control runes
	content = strings.Map(mapRune, content)

	// 4. Clean each line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// 5. Join words broken across lines
	lines = joinHyphenated(lines)

	// 6. Collapse blank runs and trim the document
	lines = collapseBlankLines(lines)

	return norm.NFKC.String(strings.Join(lines, "\n"))
}

func mapRune(r rune) rune {
	switch {
	case r == '\n':
		return r
	case r == '\u2028', r == '\u2029', r == '\f', r == '\v':
		return '\n'
	case unicode.IsSpace(r):
		return ' '
	case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return -1
	}
	return r
}

// cleanLine trims a line and collapses inner whitespace to single spaces
func cleanLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// joinHyphenated merges "engi-" + "neering" when the break sits between
// letters and the continuation starts lowercase.
func joinHyphenated(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for i+1 < len(lines) && endsWithBrokenWord(line) && startsLower(lines[i+1]) {
			line = strings.TrimSuffix(line, "-") + lines[i+1]
			i++
		}
		out = append(out, line)
	}
	return out
}

func endsWithBrokenWord(line string) bool {
	if !strings.HasSuffix(line, "-") {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(strings.TrimSuffix(line, "-"))
	return unicode.IsLetter(prev)
}

func startsLower(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsLower(r)
}

// collapseBlankLines keeps at most one blank line between content and none
// at either end
func collapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return out
}

// TruncateRunes cuts s to at most n runes and reports whether it was cut.
// n <= 0 means no limit.
func TruncateRunes(s string, n int) (string, bool) {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// ReadDocument reads a resume document and decodes it by extension. The
// returned text is not normalized; Metadata describes the file.
func ReadDocument(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	raw, err := ExtractDocument(filepath.Base(path), data)
	if err != nil {
		return "", nil, err
	}

	return raw, NewMetadata(filepath.Base(path), data, raw), nil
}
