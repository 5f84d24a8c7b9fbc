package taxon

import (
	"strings"

	"github.com/gnames/gnfmt/gnlang"
)

// NormalizeLanguage converts a language given by a source (a
// two-letter code, a three-letter code or a language name) to a full
// English language name and a three-letter ISO 639-3 code. Languages
// that cannot be recognized are returned as is with an empty code.
func NormalizeLanguage(lang string) (string, string) {
	lang = strings.TrimSpace(lang)
	low := strings.ToLower(lang)
	switch len(low) {
	case 0:
		return "", ""
	case 2:
		code, err := gnlang.LangCode2To3Letters(low)
		if err != nil {
			return lang, ""
		}
		if name := gnlang.Lang(code); name != "" {
			return name, code
		}
		return lang, code
	case 3:
		if _, err := gnlang.LangCode3To2Letters(low); err != nil {
			break
		}
		if name := gnlang.Lang(low); name != "" {
			return name, low
		}
		return lang, low
	}

	code := gnlang.LangCode(lang)
	if code == "" {
		return lang, ""
	}
	if name := gnlang.Lang(code); name != "" {
		return name, code
	}
	return lang, code
}

// NormalizeCommonNames fills in language names and codes of common
// names in place.
func NormalizeCommonNames(cns []CommonName) {
	for i := range cns {
		lang := cns[i].Language
		if lang == "" {
			lang = cns[i].LangCode
		}
		name, code := NormalizeLanguage(lang)
		cns[i].Language = name
		if code != "" {
			cns[i].LangCode = code
		}
	}
}
