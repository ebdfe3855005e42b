package models

// NarrateRequest represents a request to translate and narrate text
type NarrateRequest struct {
	Text           string `json:"text" example:"Photosynthesis converts light energy into chemical energy."`
	TargetLanguage string `json:"targetLanguage,omitempty" example:"Hinglish"`
	VoiceName      string `json:"voiceName,omitempty" example:"hi-IN-Standard-A"`
}

// NarrationResult holds synthesized audio and the translated transcript
type NarrationResult struct {
	Audio          []byte
	TranslatedText string
	LanguageCode   string
}

// NarrateResponse represents the narration response with base64 encoded audio
type NarrateResponse struct {
	AudioBase64    string `json:"audioBase64"`
	TranslatedText string `json:"translatedText"`
}

// VideoResponse represents a resolved video reference
type VideoResponse struct {
	VideoID string `json:"videoId"`
}
