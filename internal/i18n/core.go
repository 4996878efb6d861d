package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gin-gonic/gin"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	translatorOnce sync.Once
	translator     *I18n
	defaultLang    = cnst.LangDefault

	supportedLangs = []string{cnst.LangEN, cnst.LangHI}
)

// SetDefaultLanguage sets the language used when a request names none we support
func SetDefaultLanguage(lang string) {
	if slices.Contains(supportedLangs, lang) {
		defaultLang = lang
	}
}

// InitTranslator loads the embedded message bundles into the global translator
func InitTranslator() error {
	var initErr error
	translatorOnce.Do(func() {
		translator = NewI18n(language.English)
		initErr = translator.LoadTranslations(localeFS, "locales")
	})
	return initErr
}

// GetTranslator returns the global translator, initialising it on first use
func GetTranslator() *I18n {
	if translator == nil {
		_ = InitTranslator()
	}
	return translator
}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates a new I18n instance with the specified default language
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// LoadTranslations loads every *.toml message file found in dir of fsys
func (i *I18n) LoadTranslations(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		if _, err := i.bundle.LoadMessageFileFS(fsys, dir+"/"+file.Name()); err != nil {
			return fmt.Errorf("failed to load %s: %w", file.Name(), err)
		}
	}
	return nil
}

// Translate returns a localized string for the given message ID and language
func (i *I18n) Translate(msgID string, lang string, templateData map[string]any) string {
	localizer := i18n.NewLocalizer(i.bundle, language.Make(lang).String(), i.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(templateData) > 0 {
		lc.TemplateData = templateData
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// LanguageFromRequest extracts the language preference from the X-Lang and
// Accept-Language headers, falling back to the default language.
func LanguageFromRequest(r *http.Request) string {
	if lang := r.Header.Get(cnst.XLang); lang != "" {
		return normalizeLang(lang)
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		for _, part := range strings.Split(accept, ",") {
			tag := strings.TrimSpace(strings.Split(part, ";")[0])
			code := strings.ToLower(strings.Split(tag, "-")[0])
			if slices.Contains(supportedLangs, code) {
				return code
			}
		}
	}
	return defaultLang
}

// normalizeLang reduces a tag like "hi-IN" to a supported base language
func normalizeLang(lang string) string {
	code := strings.ToLower(strings.TrimSpace(strings.Split(lang, "-")[0]))
	if slices.Contains(supportedLangs, code) {
		return code
	}
	return defaultLang
}

// TranslateMessage translates a message ID using the context's language preference
func TranslateMessage(c *gin.Context, msgID string, data map[string]any) string {
	if t := GetTranslator(); t != nil {
		return t.Translate(msgID, langFromContext(c), data)
	}
	return msgID
}

// Middleware stores the negotiated language in the gin context under cnst.XLang
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, LanguageFromRequest(c.Request))
		c.Next()
	}
}
