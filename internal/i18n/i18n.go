// Package i18n looks up UI strings in the embedded translation catalogs.
package i18n

import (
	"embed"
	"sync"

	"autoclicker/internal/core/model"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var catalogs = map[string]string{
	model.LanguageEnglish: "locales/en.yaml",
	model.LanguageRussian: "locales/ru.yaml",
}

// Translator returns strings for the selected language, falling back to English.
type Translator struct {
	mu        sync.RWMutex
	bundle    *goi18n.Bundle
	language  string
	localizer *goi18n.Localizer
}

// New loads all catalogs and selects lang.
func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, path := range catalogs {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, err
		}
	}

	translator := &Translator{bundle: bundle}
	translator.SetLanguage(lang)
	return translator, nil
}

// SetLanguage switches the active catalog. Unknown languages select English
// and report false.
func (translator *Translator) SetLanguage(lang string) bool {
	known := model.ValidLanguage(lang)
	if !known {
		lang = model.LanguageEnglish
	}
	translator.mu.Lock()
	defer translator.mu.Unlock()
	translator.language = lang
	translator.localizer = goi18n.NewLocalizer(translator.bundle, lang, model.LanguageEnglish)
	return known
}

// Language returns the active language code.
func (translator *Translator) Language() string {
	translator.mu.RLock()
	defer translator.mu.RUnlock()
	return translator.language
}

// T translates id. Missing ids come back unchanged.
func (translator *Translator) T(id string) string {
	return translator.Tf(id, nil)
}

// Tf translates id and fills template fields from data.
func (translator *Translator) Tf(id string, data map[string]any) string {
	translator.mu.RLock()
	localizer := translator.localizer
	translator.mu.RUnlock()

	text, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if text == "" || (err != nil && text == id) {
		return id
	}
	return text
}
