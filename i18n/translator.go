package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "field", "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":      "missing required field: {field}",
		"invalid_type":  "field {field} has wrong type: expected {expected}, got {got}",
		"unknown_key":   "extra fields not allowed: {keys}",
		"invalid_enum":  "{field} must be one of: {allowed}",
		"parse_error":   "parse error: {reason}",
		"duplicate_key": "duplicate key: {key}",
		"did_you_mean":  "did you mean {suggestion} instead of {key}?",
	},
	"ja": {
		"required":      "必須フィールドが不足しています: {field}",
		"invalid_type":  "フィールド {field} の型が不正です: 期待 {expected}, 実際 {got}",
		"unknown_key":   "許可されていないフィールドがあります: {keys}",
		"invalid_enum":  "{field} は次のいずれかである必要があります: {allowed}",
		"parse_error":   "解析エラー: {reason}",
		"duplicate_key": "キーが重複しています: {key}",
		"did_you_mean":  "{key} は {suggestion} の誤りではありませんか?",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages with a built-in dictionary, in matcher order.
var (
	languages = []string{"en", "ja"}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Japanese})
)

// Resolve maps a BCP 47 tag such as "ja-JP" or "en-GB" to a built-in
// dictionary. Unsupported or unparsable tags resolve to "en" with ok false.
func Resolve(lang string) (string, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return languages[0], false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return languages[0], false
	}
	return languages[idx], true
}

// SetLanguage switches the built-in Translator language. Tags are resolved
// with Resolve, so "ja-JP" selects the Japanese dictionary.
func SetLanguage(lang string) {
	lang, _ = Resolve(lang)
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// Current returns the process-wide Translator.
func Current() Translator {
	mu.RLock()
	defer mu.RUnlock()
	return currentTranslator
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return Current().Message(code, data) }
