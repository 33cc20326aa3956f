// Package languages maps between human language names and ISO-639-1 codes
// for subtitle track labeling.
package languages

import "strings"

var nameToCode = map[string]string{
	"arabic":     "ar",
	"bulgarian":  "bg",
	"chinese":    "zh",
	"croatian":   "hr",
	"czech":      "cs",
	"danish":     "da",
	"dutch":      "nl",
	"english":    "en",
	"estonian":   "et",
	"finnish":    "fi",
	"french":     "fr",
	"german":     "de",
	"greek":      "el",
	"hebrew":     "he",
	"hindi":      "hi",
	"hungarian":  "hu",
	"icelandic":  "is",
	"indonesian": "id",
	"italian":    "it",
	"japanese":   "ja",
	"korean":     "ko",
	"latvian":    "lv",
	"lithuanian": "lt",
	"malay":      "ms",
	"norwegian":  "no",
	"persian":    "fa",
	"polish":     "pl",
	"portuguese": "pt",
	"romanian":   "ro",
	"russian":    "ru",
	"serbian":    "sr",
	"slovak":     "sk",
	"slovenian":  "sl",
	"spanish":    "es",
	"swedish":    "sv",
	"thai":       "th",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"vietnamese": "vi",
}

var codeToName = map[string]string{
	"ar":  "Arabic",
	"bg":  "Bulgarian",
	"zh":  "Chinese",
	"hr":  "Croatian",
	"cs":  "Czech",
	"da":  "Danish",
	"nl":  "Dutch",
	"en":  "English",
	"eng": "English",
	"et":  "Estonian",
	"fi":  "Finnish",
	"fr":  "French",
	"fre": "French",
	"de":  "German",
	"ger": "German",
	"el":  "Greek",
	"he":  "Hebrew",
	"hi":  "Hindi",
	"hu":  "Hungarian",
	"is":  "Icelandic",
	"id":  "Indonesian",
	"it":  "Italian",
	"ja":  "Japanese",
	"jpn": "Japanese",
	"ko":  "Korean",
	"kor": "Korean",
	"lv":  "Latvian",
	"lt":  "Lithuanian",
	"ms":  "Malay",
	"no":  "Norwegian",
	"fa":  "Persian",
	"pl":  "Polish",
	"pt":  "Portuguese",
	"ro":  "Romanian",
	"ru":  "Russian",
	"rus": "Russian",
	"sr":  "Serbian",
	"sk":  "Slovak",
	"sl":  "Slovenian",
	"es":  "Spanish",
	"spa": "Spanish",
	"sv":  "Swedish",
	"th":  "Thai",
	"tr":  "Turkish",
	"uk":  "Ukrainian",
	"vi":  "Vietnamese",
}

// Code resolves a language name ("English") to its ISO-639-1 code ("en").
func Code(name string) (string, bool) {
	code, ok := nameToCode[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// DisplayName resolves a language code to a human-readable name.
func DisplayName(code string) (string, bool) {
	name, ok := codeToName[strings.ToLower(strings.TrimSpace(code))]
	return name, ok
}
