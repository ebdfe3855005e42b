package clients

import (
	"strings"
	"unicode"
)

// SpeechSplitPunct lists the characters preferred as chunk boundaries for speech synthesis
const SpeechSplitPunct = ",.?"

// SplitText cuts text into chunks of at most maxChars runes.
// A chunk ends at the last punctuation mark or space inside the window; a window with neither is cut hard.
func SplitText(text string, maxChars int, punct string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{string(runes)}
	}

	chunks := make([]string, 0, len(runes)/maxChars+1)
	for len(runes) > maxChars {
		cut := lastBoundary(runes[:maxChars], punct)
		if cut <= 0 {
			cut = maxChars
		}
		if chunk := strings.TrimSpace(string(runes[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = trimLeftSpace(runes[cut:])
	}
	if chunk := strings.TrimSpace(string(runes)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// lastBoundary returns the cut position after the last boundary rune in window, or 0
func lastBoundary(window []rune, punct string) int {
	for i := len(window) - 1; i > 0; i-- {
		if strings.ContainsRune(punct, window[i]) {
			return i + 1
		}
	}
	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return 0
}

func trimLeftSpace(runes []rune) []rune {
	for len(runes) > 0 && unicode.IsSpace(runes[0]) {
		runes = runes[1:]
	}
	return runes
}
