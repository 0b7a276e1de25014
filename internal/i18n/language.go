package i18n

import (
	"golang.org/x/text/language"
	"strings"
)

type Language struct {
	Code string
	Name string
	Tag  language.Tag
}

const DefaultCode = "en"

var languages = []Language{
	{Code: "en", Name: "English", Tag: language.English},
	{Code: "ja", Name: "日本語", Tag: language.Japanese},
	{Code: "zhs", Name: "简体中文", Tag: language.SimplifiedChinese},
	{Code: "zht", Name: "繁體中文", Tag: language.TraditionalChinese},
}

func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func Lookup(code string) (Language, bool) {
	for _, lang := range languages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

// Resolve returns the language for code, or the default language.
func Resolve(code string) Language {
	if lang, ok := Lookup(code); ok {
		return lang
	}
	return languages[0]
}

func IsDefault(code string) bool {
	return code == "" || code == DefaultCode
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FromPath returns the language named by the first path segment.
func FromPath(p string) string {
	if segs := segments(p); len(segs) > 0 {
		if _, ok := Lookup(segs[0]); ok {
			return segs[0]
		}
	}
	return DefaultCode
}

// StripPath removes a leading language segment.
func StripPath(p string) string {
	segs := segments(p)
	if len(segs) > 0 {
		if _, ok := Lookup(segs[0]); ok {
			return "/" + strings.Join(segs[1:], "/")
		}
	}
	return p
}

// WithPath rewrites p for code. The default language has no prefix.
func WithPath(p string, code string) string {
	clean := StripPath(p)
	if IsDefault(code) {
		if clean == "" {
			return "/"
		}
		return clean
	}
	if clean == "/" || clean == "" {
		return "/" + code
	}
	return "/" + code + clean
}
