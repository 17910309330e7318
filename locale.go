package autotranslate

import "strings"

// LanguageNames maps locale codes to human-readable names for provider
// prompts. Spelling out the language beats handing the model a bare code,
// especially for regioned variants.
var LanguageNames = map[string]string{
	"ar": "Arabic",
	"bg": "Bulgarian",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"hr": "Croatian",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"nb": "Norwegian Bokmål",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sr": "Serbian",
	"sv": "Swedish",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"zh": "Chinese",

	"en_GB": "English (United Kingdom)",
	"en_US": "English (United States)",
	"es_MX": "Spanish (Mexico)",
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
}

// DisplayName returns the human-readable language name for a locale code.
// Regioned codes fall back to their base language; unknown codes are returned
// as-is so the prompt still carries something meaningful.
func DisplayName(locale string) string {
	if name, ok := LanguageNames[locale]; ok {
		return name
	}
	base := locale
	for _, sep := range []string{"_", "-"} {
		if i := strings.Index(base, sep); i > 0 {
			base = base[:i]
			break
		}
	}
	if name, ok := LanguageNames[strings.ToLower(base)]; ok {
		return name
	}
	return locale
}
