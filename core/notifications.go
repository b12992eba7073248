package conversation

// Localized user-facing strings. Notifications always follow the explicit
// language selection, not the per-message effective language.

func languageSwitchedMessage(language Language) string {
	if language == LanguageMalayalam {
		return "മലയാളത്തിലേക്ക് മാറ്റി"
	}
	return "Language switched to English"
}

func sendFailedMessage(language Language) string {
	if language == LanguageMalayalam {
		return "സന്ദേശം അയയ്ക്കാൻ കഴിഞ്ഞില്ല. ദയവായി വീണ്ടും ശ്രമിക്കുക."
	}
	return "Failed to send message. Please try again."
}

func audioFailedMessage(language Language) string {
	if language == LanguageMalayalam {
		return "ശബ്ദം പ്ലേ ചെയ്യാൻ കഴിഞ്ഞില്ല"
	}
	return "Could not play audio"
}

func listeningMessage(language Language) string {
	if language == LanguageMalayalam {
		return "ശ്രവിക്കുന്നു... മലയാളത്തിൽ സംസാരിക്കുക"
	}
	return "Listening... Please speak in English"
}

func listeningStoppedMessage(language Language) string {
	if language == LanguageMalayalam {
		return "ശ്രവണം നിർത്തി"
	}
	return "Stopped listening"
}

func voiceFailedMessage(language Language) string {
	if language == LanguageMalayalam {
		return "ശബ്ദം തിരിച്ചറിയാൻ കഴിഞ്ഞില്ല"
	}
	return "Voice recognition failed"
}

func noMicrophoneMessage(language Language) string {
	if language == LanguageMalayalam {
		return "മൈക്രോഫോൺ പിന്തുണയില്ല"
	}
	return "Microphone not supported"
}

func faqLoadFailedMessage() string {
	return "Failed to load FAQ data"
}
