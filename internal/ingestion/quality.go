package ingestion

import (
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	minLetterRatio      = 0.5
	maxReplacementRatio = 0.02
)

// AssessQuality rates how usable extracted text is: empty when it holds no
// letters, poor when letters are scarce or decoding left many replacement
// runes, good otherwise.
func AssessQuality(text string) string {
	var letters, visible, replaced int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		switch {
		case r == utf8.RuneError:
			replaced++
		case unicode.IsLetter(r):
			letters++
		}
	}

	if letters == 0 {
		return types.QualityEmpty
	}
	if float64(letters)/float64(visible) < minLetterRatio {
		return types.QualityPoor
	}
	if float64(replaced)/float64(visible) > maxReplacementRatio {
		return types.QualityPoor
	}
	return types.QualityGood
}
