package main

import (
	"testing"
	"testing/fstest"
	"time"
)

func TestParseCommaSeparatedWithQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple comma separation",
			input:    "a, b, c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "quoted strings with commas",
			input:    "separator: ', '",
			expected: []string{"separator: ', '"},
		},
		{
			name:     "mixed quoted and unquoted",
			input:    "a, separator: ', ', b",
			expected: []string{"a", "separator: ', '", "b"},
		},
		{
			name:     "double quotes",
			input:    `separator: ", "`,
			expected: []string{`separator: ", "`},
		},
		{
			name:     "no commas",
			input:    "single",
			expected: []string{"single"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "nested quotes",
			input:    `separator: "', '"`,
			expected: []string{`separator: "', '"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommaSeparatedWithQuotes(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d parts, got %d: %q", len(tt.expected), len(result), result)
			}
			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("part %d: expected %q, got %q", i, expected, result[i])
				}
			}
		})
	}
}

func TestI18nTranslation(t *testing.T) {
	i18n, err := NewI18n("pt-BR")
	if err != nil {
		t.Fatalf("Failed to initialize i18n: %v", err)
	}

	tests := []struct {
		name     string
		locale   string
		key      string
		args     []interface{}
		expected string
	}{
		{
			name:     "plain",
			locale:   "pt-BR",
			key:      "Residual value",
			expected: "Valor Residual",
		},
		{
			name:     "simple interpolation",
			locale:   "pt-BR",
			key:      "No relevant data found in file",
			args:     []interface{}{"file", "a.xlsx"},
			expected: "Nenhum dado relevante encontrado em a.xlsx.",
		},
		{
			name:     "two values",
			locale:   "en",
			key:      "Critical error processing file",
			args:     []interface{}{"file", "a.xlsx", "error", "zip: not a valid zip file"},
			expected: "Critical error processing a.xlsx: zip: not a valid zip file",
		},
		{
			name:     "amounts",
			locale:   "en",
			key:      "Summary",
			args:     []interface{}{"count", 2, "updated", dec("1200.5"), "accumulated", dec("300"), "residual", dec("900.5")},
			expected: "Records: 2. Updated value: 1200.50. Accumulated depreciation: 300.00. Residual value: 900.50.",
		},
		{
			name:     "list formatting with quoted separator",
			locale:   "en",
			key:      "Files",
			args:     []interface{}{"files", []string{"a.xlsx", "b.xls"}},
			expected: "Files: a.xlsx, b.xls",
		},
		{
			name:     "missed key",
			locale:   "en",
			key:      "Unknown key",
			args:     []interface{}{"n", 1},
			expected: "[en: missed key] Unknown key, n, 1",
		},
		{
			name:     "missed value",
			locale:   "en",
			key:      "No relevant data found in file",
			expected: "[en: 'file' value is missed] No relevant data found in file, ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := i18n.SetLocale(tt.locale); err != nil {
				t.Fatal(err)
			}
			result := i18n.T(tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestI18n_EmbeddedLocalesAreComplete(t *testing.T) {
	i18n, err := NewI18n("en")
	if err != nil {
		t.Fatal(err)
	}
	if missed := i18n.MissingKeys(); len(missed) > 0 {
		t.Errorf("keys are missed in translations: %v", missed)
	}
	for _, column := range RecordColumns {
		for _, locale := range []string{"en", "pt-BR"} {
			if _, ok := i18n.translations[locale][column.Key]; !ok {
				t.Errorf("column '%s' has no %s translation", column.Key, locale)
			}
		}
	}
	if err := i18n.SetLocale("de"); err == nil {
		t.Error("expected error for unsupported locale")
	}
}

func TestI18n_Formatters(t *testing.T) {
	fs := fstest.MapFS{
		"locales/xx/translation.json": {Data: []byte(`{
			"date": "{{d, date}}",
			"custom date": "{{d, date(format: '02/01/2006')}}",
			"indent": "[{{v, indent(rightIndent: 5)}}][{{v, indent(leftIndent: 5)}}]",
			"digits": "{{v, amount(digits: 0)}}",
			"broken": "{{v, amount(digits: 0}}",
			"unknown": "{{v, currency}}"
		}`)},
	}
	i18n := &I18n{}
	if err := i18n.Init(I18nFsBackend{FS: fs}, "xx"); err != nil {
		t.Fatal(err)
	}
	date := time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		key      string
		args     []interface{}
		expected string
	}{
		{"date", []interface{}{"d", date}, "2020-03-15"},
		{"custom date", []interface{}{"d", date}, "15/03/2020"},
		{"indent", []interface{}{"v", "ab"}, "[ab   ][   ab]"},
		{"digits", []interface{}{"v", dec("10.6")}, "11"},
		{"broken", []interface{}{"v", 1}, "[xx: malformed formatter call 'amount(digits: 0' - missing closing bracket] broken, v, 1"},
		{"unknown", []interface{}{"v", 1}, "[xx: unknown 'currency' formatter] unknown, v, 1"},
	}
	for _, tt := range tests {
		if got := i18n.T(tt.key, tt.args...); got != tt.expected {
			t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}

	if err := (&I18n{}).Init(I18nFsBackend{FS: fs}, "en"); err == nil {
		t.Error("expected error for absent default locale")
	}
}
