package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	cdataPrefix = "<![CDATA["
	cdataSuffix = "]]>"
)

var (
	entityPattern = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|amp|lt|gt|quot|apos);`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// stripEnvelope снимает обёртку CDATA вместе с окружающими пробелами.
// Значение без обёртки просто обрезается по краям.
func stripEnvelope(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, cdataPrefix) && strings.HasSuffix(s, cdataSuffix) &&
		len(s) >= len(cdataPrefix)+len(cdataSuffix) {
		s = strings.TrimSpace(s[len(cdataPrefix) : len(s)-len(cdataSuffix)])
	}
	return s
}

// decodeEntities разворачивает ссылки на символы за один проход слева направо.
// Поддерживаются числовые ссылки, десятичные и шестнадцатеричные, и пять
// именованных: amp, lt, gt, quot, apos. Результат замены повторно не
// сканируется: "&amp;amp;" даёт "&amp;", а не "&". Нераспознанная ссылка
// остаётся в тексте как есть.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityPattern.ReplaceAllStringFunc(s, func(ref string) string {
		body := ref[1 : len(ref)-1]
		switch body {
		case "amp":
			return "&"
		case "lt":
			return "<"
		case "gt":
			return ">"
		case "quot":
			return `"`
		case "apos":
			return "'"
		}
		digits := body[1:]
		base := 10
		if digits[0] == 'x' || digits[0] == 'X' {
			base = 16
			digits = digits[1:]
		}
		n, err := strconv.ParseInt(digits, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return ref
		}
		return string(rune(n))
	})
}

// stripTags удаляет из текста только завершённые теги: закрывающая скобка
// обязательна, оборванный "<tag" без неё остаётся в тексте нетронутым.
func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return tagPattern.ReplaceAllString(s, "")
}
