// Package domain defines the core types shared by the splitter packages.
package domain

import (
	"path/filepath"
	"strings"
)

// Language represents a source language understood by the splitter.
type Language string

// Supported languages for test file splitting.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"
)

// DetectLanguage determines the language based on file extension.
// Unknown extensions default to TypeScript, whose grammar is a superset of JavaScript.
func DetectLanguage(filename string) Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageTypeScript
	}
}
