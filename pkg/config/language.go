package config

import (
	"path/filepath"
	"strings"
)

// Language identifies the recognizer handling an input
type Language int

const (
	LanguageNone Language = iota
	LanguageC
	LanguageCPlusPlus
	LanguageMake
)

func (l Language) String() string {
	switch l {
	case LanguageC:
		return "C"
	case LanguageCPlusPlus:
		return "C++"
	case LanguageMake:
		return "Make"
	default:
		return "none"
	}
}

// Detection is the language of one input
type Detection struct {
	Language Language
	Header   bool
}

var extensions = map[string]Detection{
	".c": {LanguageC, false},

	".h":   {LanguageCPlusPlus, true},
	".hh":  {LanguageCPlusPlus, true},
	".hpp": {LanguageCPlusPlus, true},
	".hxx": {LanguageCPlusPlus, true},
	".h++": {LanguageCPlusPlus, true},
	".inl": {LanguageCPlusPlus, true},
	".tcc": {LanguageCPlusPlus, true},

	".cc":  {LanguageCPlusPlus, false},
	".cpp": {LanguageCPlusPlus, false},
	".cxx": {LanguageCPlusPlus, false},
	".c++": {LanguageCPlusPlus, false},
	".C":   {LanguageCPlusPlus, false},

	".mk":  {LanguageMake, false},
	".mak": {LanguageMake, false},
}

var makefileNames = map[string]bool{
	"Makefile":    true,
	"makefile":    true,
	"GNUmakefile": true,
}

// ParseLanguage resolves a language name used in the configuration. Header
// variants are accepted for C and C++.
func ParseLanguage(s string) (Detection, bool) {
	switch strings.ToLower(s) {
	case "c":
		return Detection{LanguageC, false}, true
	case "c-header":
		return Detection{LanguageC, true}, true
	case "c++", "cpp", "cxx":
		return Detection{LanguageCPlusPlus, false}, true
	case "c++-header", "c++ header", "cpp-header":
		return Detection{LanguageCPlusPlus, true}, true
	case "make", "makefile":
		return Detection{LanguageMake, false}, true
	}
	return Detection{}, false
}

// Detect returns the language of the file at path. Configured overrides
// are matched against the extension, the base name or a base name glob;
// the built-in table is consulted after them. Extensions are case
// sensitive since ".c" and ".C" differ.
func (c *Config) Detect(path string) Detection {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	for _, key := range c.Extensions() {
		match := key == base || key == ext || (ext != "" && "."+key == ext)
		if !match {
			match, _ = filepath.Match(key, base)
		}
		if match {
			if d, ok := ParseLanguage(c.Languages[key]); ok {
				return d
			}
		}
	}

	if makefileNames[base] {
		return Detection{Language: LanguageMake}
	}
	if d, ok := extensions[ext]; ok {
		return d
	}
	return Detection{}
}
