package pricing

// Language is the active display language. It drives both UI text lookup
// (outside this module's scope) and display currency selection.
type Language string

const (
	LanguageFR Language = "fr"
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// DefaultLanguage is used when no stored or query-derived language exists.
const DefaultLanguage = LanguageEN

// ParseLanguage maps an arbitrary language tag to a supported Language,
// falling back to the default. Only the bare primary subtag matters:
// "fr-DZ" resolves the same as "fr".
func ParseLanguage(s string) Language {
	if len(s) > 2 {
		s = s[:2]
	}
	switch Language(s) {
	case LanguageFR:
		return LanguageFR
	case LanguageAR:
		return LanguageAR
	case LanguageEN:
		return LanguageEN
	default:
		return DefaultLanguage
	}
}
