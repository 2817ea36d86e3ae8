package application

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/fr"
)

// supportedLocales maps locale names accepted in configuration to their
// CLDR translators.
var supportedLocales = map[string]func() locales.Translator{
	"en":    en.New,
	"en_GB": en_GB.New,
	"fr":    fr.New,
	"de":    de.New,
}

// SupportedLocales returns the accepted locale names, sorted.
func SupportedLocales() []string {
	names := make([]string, 0, len(supportedLocales))
	for name := range supportedLocales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LocaleFormatter formats timestamps as a medium date followed by a medium
// time in a CLDR locale and a fixed time zone.
type LocaleFormatter struct {
	trans locales.Translator
	loc   *time.Location
}

// NewLocaleFormatter returns a formatter for the named locale. A nil loc
// means time.Local.
func NewLocaleFormatter(locale string, loc *time.Location) (*LocaleFormatter, error) {
	newTrans, ok := supportedLocales[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q (supported: %s)", locale, strings.Join(SupportedLocales(), ", "))
	}
	if loc == nil {
		loc = time.Local
	}
	return &LocaleFormatter{trans: newTrans(), loc: loc}, nil
}

// Locale returns the CLDR locale name.
func (f *LocaleFormatter) Locale() string {
	return f.trans.Locale()
}

// FormatDateTime implements DateTimeFormatter.
func (f *LocaleFormatter) FormatDateTime(t time.Time) string {
	t = t.In(f.loc)
	return f.trans.FmtDateMedium(t) + ", " + f.trans.FmtTimeMedium(t)
}
