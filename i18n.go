package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const I18N_DATE_FORMAT = "2006-01-02"

//go:embed locales
var localesFS embed.FS

var formatSpecifierRegexp = regexp.MustCompile(`{{([^}]+)}}`)

// Translation system is based on i18next, see https://www.i18next.com.
// Notes (differences from https://www.i18next.com):
// - Namespaces of i18next are not supported.
// - Only JSON is supported for translations.
// - Default fallback for any `T` issue is `[fall reason] key, %s` where `%s` is a comma-separated list of "%+v" of arguments.
// Supported built-in formatting functions:
// - amount (`decimal.Decimal` with fixed number of digits, 2 by-default),
// - date (Golang `time.Format`, default is `I18N_DATE_FORMAT`),
// - list (only 'separator' property is supported, ', ' by-default),
// - indent (rightIndent, leftIndent),
// - values (Golang `%v`).

// I18nFsBackend is a struct that holds the filesystem with "locales/<lang>/translation.json" files.
type I18nFsBackend struct {
	langs []string
	FS    fs.FS
}

func (b *I18nFsBackend) GetLocales() ([]string, error) {
	// If translations are already loaded, return the list of languages.
	if b.langs != nil {
		return b.langs, nil
	}
	entries, err := fs.ReadDir(b.FS, "locales")
	if err != nil {
		return nil, fmt.Errorf("can't read locales from filesystem: %w", err)
	}
	b.langs = make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			b.langs = append(b.langs, entry.Name())
		}
	}
	return b.langs, nil
}

// LoadTranslations loads translations for all languages.
func (b *I18nFsBackend) LoadTranslations(defaultLang string) (map[string]map[string]interface{}, error) {
	locales, err := b.GetLocales()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(locales, defaultLang) {
		return nil, fmt.Errorf("default language '%s' is not in the list of languages", defaultLang)
	}
	translations := make(map[string]map[string]interface{})
	for _, locale := range locales {
		data, err := fs.ReadFile(b.FS, "locales/"+locale+"/translation.json")
		if err != nil {
			return nil, err
		}
		var translation map[string]interface{}
		if err := json.Unmarshal(data, &translation); err != nil {
			return nil, fmt.Errorf("can't parse '%s' translation: %w", locale, err)
		}
		translations[locale] = translation
	}
	return translations, nil
}

// I18n is a translator based on i18next.
type I18n struct {
	backend      I18nFsBackend
	locale       string
	translations map[string]map[string]interface{}
	funcs        map[string]func(val interface{}, props map[string]interface{}) string
}

// NewI18n returns translator over embedded locales.
func NewI18n(locale string) (*I18n, error) {
	i18n := &I18n{}
	if err := i18n.Init(I18nFsBackend{FS: localesFS}, locale); err != nil {
		return nil, err
	}
	return i18n, nil
}

// Init initializes the translator instance with the backend and default locale.
func (i18n *I18n) Init(backend I18nFsBackend, defaultLocale string) error {
	i18n.backend = backend
	i18n.locale = defaultLocale
	var err error
	i18n.translations, err = i18n.backend.LoadTranslations(defaultLocale)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	i18n.funcs = buildDefaultFormatters()
	return nil
}

func buildDefaultFormatters() map[string]func(val interface{}, props map[string]interface{}) string {
	result := make(map[string]func(val interface{}, props map[string]interface{}) string)

	result["values"] = func(val interface{}, props map[string]interface{}) string {
		return fmt.Sprintf("%v", val)
	}

	result["amount"] = func(val interface{}, props map[string]interface{}) string {
		digits := int32(2)
		if d, ok := props["digits"].(string); ok {
			if n, err := strconv.Atoi(d); err == nil {
				digits = int32(n)
			}
		}
		switch v := val.(type) {
		case decimal.Decimal:
			return v.StringFixed(digits)
		case float64:
			return decimal.NewFromFloat(v).StringFixed(digits)
		case int:
			return decimal.NewFromInt(int64(v)).StringFixed(digits)
		}
		return fmt.Sprintf("%+v", val)
	}

	result["date"] = func(val interface{}, props map[string]interface{}) string {
		if val, ok := val.(time.Time); ok {
			layout := I18N_DATE_FORMAT
			if format, ok := props["format"].(string); ok {
				layout = format
			}
			return val.Format(layout)
		}
		return fmt.Sprintf("%+v", val)
	}

	result["list"] = func(value interface{}, props map[string]interface{}) string {
		var strSlice []string
		switch v := value.(type) {
		case []string:
			strSlice = v
		default:
			val := reflect.ValueOf(value)
			if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
				return fmt.Sprintf("%v", value)
			}
			strSlice = make([]string, val.Len())
			for i := 0; i < val.Len(); i++ {
				strSlice[i] = fmt.Sprintf("%v", val.Index(i).Interface())
			}
		}
		separator := ", "
		if sep, ok := props["separator"].(string); ok {
			separator = sep
		}
		return strings.Join(strSlice, separator)
	}

	result["indent"] = func(val interface{}, props map[string]interface{}) string {
		if indent, ok := props["rightIndent"].(string); ok {
			n, _ := strconv.Atoi(indent)
			return fmt.Sprintf("%-*s", n, fmt.Sprintf("%v", val))
		}
		if indent, ok := props["leftIndent"].(string); ok {
			n, _ := strconv.Atoi(indent)
			return fmt.Sprintf("%*s", n, fmt.Sprintf("%v", val))
		}
		return fmt.Sprintf("%v", val)
	}
	return result
}

func (i18n *I18n) SetLocale(locale string) error {
	if _, ok := i18n.translations[locale]; !ok {
		return fmt.Errorf("locale '%s' is not supported", locale)
	}
	i18n.locale = locale
	return nil
}

func (i18n *I18n) Locale() string {
	return i18n.locale
}

// MissingKeys returns "locale: key" for keys absent in some of locales.
func (i18n *I18n) MissingKeys() []string {
	keys := make(map[string]struct{})
	for _, translations := range i18n.translations {
		for key := range translations {
			keys[key] = struct{}{}
		}
	}
	var missed []string
	for locale, translations := range i18n.translations {
		for key := range keys {
			if _, ok := translations[key]; !ok {
				missed = append(missed, locale+": "+key)
			}
		}
	}
	sort.Strings(missed)
	return missed
}

// T translates the key. Arguments are pairs of name and value for interpolation.
func (i18n *I18n) T(key string, args ...interface{}) string {
	entry, ok := i18n.translations[i18n.locale][key]
	if !ok {
		return i18n.Tfallback("missed key", key, args...)
	}
	template, ok := entry.(string)
	if !ok {
		return i18n.Tfallback("invalid translation type", key, args...)
	}

	props := make(map[string]interface{})
	var argKey string
	for i, arg := range args {
		if i%2 == 0 {
			if argKey, ok = arg.(string); !ok {
				return i18n.Tfallback(fmt.Sprintf("wrong call - odd argument '%v' is not a string", arg), key, args...)
			}
		} else {
			props[argKey] = arg
		}
	}

	result := template
	for _, match := range formatSpecifierRegexp.FindAllStringSubmatch(template, -1) {
		placeholder := match[0]
		propKey, formatterSpec, hasFormatter := strings.Cut(match[1], ",")
		propKey = strings.TrimSpace(propKey)
		value, exists := props[propKey]
		if !exists {
			return i18n.Tfallback(fmt.Sprintf("'%s' value is missed", propKey), key, args...)
		}
		if !hasFormatter {
			result = strings.Replace(result, placeholder, fmt.Sprintf("%v", value), -1)
			continue
		}

		formatterName := strings.TrimSpace(formatterSpec)
		options := make(map[string]interface{})
		if idx := strings.Index(formatterName, "("); idx != -1 {
			if !strings.HasSuffix(formatterName, ")") {
				return i18n.Tfallback(fmt.Sprintf("malformed formatter call '%s' - missing closing bracket", formatterName), key, args...)
			}
			for _, pair := range parseCommaSeparatedWithQuotes(formatterName[idx+1 : len(formatterName)-1]) {
				optKey, optVal, found := strings.Cut(pair, ":")
				if !found {
					return i18n.Tfallback(fmt.Sprintf("malformed option '%s' in '%s' formatter call", pair, formatterName), key, args...)
				}
				optVal = strings.TrimSpace(optVal)
				if len(optVal) >= 2 && (optVal[0] == '\'' || optVal[0] == '"') {
					optVal = optVal[1 : len(optVal)-1]
				}
				options[strings.TrimSpace(optKey)] = optVal
			}
			formatterName = strings.TrimSpace(formatterName[:idx])
		}

		formatter := i18n.funcs[formatterName]
		if formatter == nil {
			return i18n.Tfallback(fmt.Sprintf("unknown '%s' formatter", formatterName), key, args...)
		}
		result = strings.Replace(result, placeholder, formatter(value, options), -1)
	}
	return result
}

func (i18n *I18n) Tfallback(reason, key string, args ...interface{}) string {
	var argsList []string
	for _, arg := range args {
		argsList = append(argsList, fmt.Sprintf("%+v", arg))
	}
	return fmt.Sprintf("[%s: %s] %s, %s", i18n.locale, reason, key, strings.Join(argsList, ", "))
}

// parseCommaSeparatedWithQuotes splits formatter options by commas which are not in quotes.
func parseCommaSeparatedWithQuotes(s string) []string {
	result := []string{}
	var current strings.Builder
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',':
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		result = append(result, part)
	}
	return result
}
