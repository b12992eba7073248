package conversation

// Language identifies one of the two supported conversation languages.
type Language string

const (
	LanguageEnglish   Language = "english"
	LanguageMalayalam Language = "malayalam"
)

// Tag returns the BCP-47 tag used for speech recognition and synthesis.
func (l Language) Tag() string {
	if l == LanguageMalayalam {
		return "ml-IN"
	}
	return "en-US"
}

func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageMalayalam
}

// EffectiveLanguage decides which language a message should be processed in.
// Malayalam script in the text overrides the explicit selection so spoken or
// typed Malayalam routes to the Malayalam processing and voice path without a
// manual switch. Text without Malayalam codepoints keeps the explicit choice.
func EffectiveLanguage(explicit Language, text string) Language {
	if containsMalayalam(text) {
		return LanguageMalayalam
	}
	return explicit
}

// containsMalayalam reports whether text has at least one codepoint in the
// Malayalam Unicode block (U+0D00–U+0D7F).
func containsMalayalam(text string) bool {
	for _, r := range text {
		if r >= 0x0D00 && r <= 0x0D7F {
			return true
		}
	}
	return false
}
