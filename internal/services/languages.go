package services

import "strings"

// DefaultLanguageCode is the speech locale used for unrecognized language names
const DefaultLanguageCode = "en"

var languageCodes = map[string]string{
	"hinglish":   "hi",
	"hindi":      "hi",
	"pure hindi": "hi",
	"bengali":    "bn",
	"telugu":     "te",
	"marathi":    "mr",
	"tamil":      "ta",
	"urdu":       "ur",
	"gujarati":   "gu",
	"kannada":    "kn",
	"malayalam":  "ml",
	"odia":       "or",
	"punjabi":    "pa",
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"chinese":    "zh",
	"japanese":   "ja",
	"russian":    "ru",
	"arabic":     "ar",
	"portuguese": "pt",
}

// ResolveLanguageCode maps a language name to a speech locale code, ignoring case and surrounding whitespace
func ResolveLanguageCode(name string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return DefaultLanguageCode
}
