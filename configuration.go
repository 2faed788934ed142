package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/thlib/go-timezone-local/tzlocal"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("timezone", validateTimezone)
	_ = validate.RegisterValidation("dateonly", validateDateOnly)
}

func validateTimezone(fl validator.FieldLevel) bool {
	timezone := fl.Field().String()
	if timezone == "" {
		return true // Empty timezone is allowed, will be replaced with system default
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(OutputDateFormat, fl.Field().String())
	return err == nil
}

// ItemColumns are 0-based positions of item line cells.
type ItemColumns struct {
	ItemCode        int `yaml:"itemCode" validate:"min=0"`
	Description     int `yaml:"description" validate:"min=0"`
	AcquisitionDate int `yaml:"acquisitionDate" validate:"min=0"`
	SubItemCode     int `yaml:"subItemCode" validate:"min=0"`
}

// ValueColumns are 0-based positions of value line cells.
type ValueColumns struct {
	OriginalValue           int `yaml:"originalValue" validate:"min=0"`
	UpdatedValue            int `yaml:"updatedValue" validate:"min=0"`
	MonthlyDepreciation     int `yaml:"monthlyDepreciation" validate:"min=0"`
	PeriodDepreciation      int `yaml:"periodDepreciation" validate:"min=0"`
	AccumulatedDepreciation int `yaml:"accumulatedDepreciation" validate:"min=0"`
}

// ReportLayout describes positions and literals of one ERP export format.
type ReportLayout struct {
	// BranchMarker is searched in the first cell of section headers.
	BranchMarker string `yaml:"branchMarker" validate:"required"`
	// BranchSeparator splits "code - name" after the marker, the last part is a branch.
	BranchSeparator string `yaml:"branchSeparator"`
	// AccountPrefix starts the first cell of account headers.
	AccountPrefix string `yaml:"accountPrefix" validate:"required"`
	// ValueMarker is the whole first cell of value lines.
	ValueMarker string `yaml:"valueMarker" validate:"required"`
	// ItemCodeLength is a number of digits in the first cell of item lines.
	ItemCodeLength int `yaml:"itemCodeLength" validate:"min=1"`
	// MinItemColumns is a minimal number of cells in item lines.
	MinItemColumns int `yaml:"minItemColumns" validate:"min=1"`
	// MinAcquisitionDate in "2006-01-02" format, items acquired before are rejected.
	MinAcquisitionDate string `yaml:"minAcquisitionDate" validate:"dateonly"`
	// DateLayout forces Go time layout for text dates instead of detecting by shape.
	DateLayout string `yaml:"dateLayout,omitempty"`
	// IgnoreTexts are first cells of boilerplate rows like repeated column headers.
	IgnoreTexts  []string     `yaml:"ignoreTexts,omitempty"`
	ItemColumns  ItemColumns  `yaml:"itemColumns"`
	ValueColumns ValueColumns `yaml:"valueColumns"`
}

// TextConfig configures reading of delimited text exports.
type TextConfig struct {
	// Delimiter is one character or "auto".
	Delimiter string `yaml:"delimiter" validate:"required"`
	// Encoding is "auto", "utf-8" or "windows-1252".
	Encoding string `yaml:"encoding" validate:"oneof=auto utf-8 windows-1252"`
}

type Config struct {
	Language         string       `yaml:"language,omitempty" validate:"oneof=pt-BR en"`
	LogLevel         string       `yaml:"logLevel,omitempty" validate:"oneof=debug info warn error"`
	TimeZoneLocation string       `yaml:"timeZoneLocation,omitempty" validate:"timezone"`
	InputFilesGlob   string       `yaml:"inputFilesGlob,omitempty"`
	ListenAddress    string       `yaml:"listenAddress,omitempty" validate:"required"`
	MaxUploadSizeMB  int          `yaml:"maxUploadSizeMB,omitempty" validate:"min=1,max=1024"`
	Text             TextConfig   `yaml:"text"`
	Layout           ReportLayout `yaml:"layout"`
}

// DefaultLayout returns layout of the fixed-asset depreciation report ("Razão de Ativo").
func DefaultLayout() ReportLayout {
	return ReportLayout{
		BranchMarker:       "Filial :",
		BranchSeparator:    " - ",
		AccountPrefix:      "1.2.3.",
		ValueMarker:        currencySymbol,
		ItemCodeLength:     6,
		MinItemColumns:     10,
		MinAcquisitionDate: "1990-01-01",
		IgnoreTexts: []string{
			"Filial",
			"Conta Contábil",
			"Código",
			"Moeda",
		},
		ItemColumns: ItemColumns{
			ItemCode:        2,
			Description:     3,
			AcquisitionDate: 7,
			SubItemCode:     9,
		},
		ValueColumns: ValueColumns{
			OriginalValue:           2,
			UpdatedValue:            3,
			MonthlyDepreciation:     4,
			PeriodDepreciation:      5,
			AccumulatedDepreciation: 6,
		},
	}
}

// DefaultConfig returns configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Language:        "pt-BR",
		LogLevel:        "info",
		ListenAddress:   DEFAULT_LISTEN_ADDRESS,
		MaxUploadSizeMB: 32,
		Text: TextConfig{
			Delimiter: "auto",
			Encoding:  "auto",
		},
		Layout: DefaultLayout(),
	}
}

// MinAcquisitionTime returns parsed MinAcquisitionDate. Config is validated so error is impossible.
func (l ReportLayout) MinAcquisitionTime() time.Time {
	t, _ := time.Parse(OutputDateFormat, l.MinAcquisitionDate)
	return t
}

// readConfig reads YAML file over DefaultConfig. Empty filename means defaults only.
func readConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()
	if filename != "" {
		buf, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}

		decoder := yaml.NewDecoder(strings.NewReader(string(buf)))
		decoder.KnownFields(true) // Disallow unknown fields
		if err = decoder.Decode(cfg); err != nil {
			if err.Error() == "EOF" {
				return nil, fmt.Errorf("can't decode YAML from configuration file '%s': %v", filename, err)
			}
			return nil, err
		}
	}
	applyEnvOverrides(cfg)
	return finalizeConfig(cfg)
}

// applyEnvOverrides applies AM_ASSET_VIEW_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(ENV_LISTEN_ADDRESS); v != "" {
		cfg.ListenAddress = v
	}
	if v := os.Getenv(ENV_LOG_LEVEL); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(ENV_LANGUAGE); v != "" {
		cfg.Language = v
	}
}

func finalizeConfig(cfg *Config) (*Config, error) {
	if len(cfg.TimeZoneLocation) == 0 {
		tzname, err := tzlocal.RuntimeTZ()
		if err != nil {
			// Fallback to UTC if system timezone cannot be determined
			cfg.TimeZoneLocation = "UTC"
		} else {
			cfg.TimeZoneLocation = tzname
		}
	}
	if _, err := time.LoadLocation(cfg.TimeZoneLocation); err != nil {
		return nil, fmt.Errorf("invalid timezone location '%s': %w", cfg.TimeZoneLocation, err)
	}

	if cfg.Text.Delimiter != "auto" && len([]rune(cfg.Text.Delimiter)) != 1 {
		return nil, fmt.Errorf("text delimiter should be one character or 'auto', got '%s'", cfg.Text.Delimiter)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location returns loaded TimeZoneLocation.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.TimeZoneLocation)
	if err != nil {
		return time.UTC
	}
	return loc
}

// writeToFile writes the configuration to a file.
func (cfg *Config) writeToFile(filename string) error {
	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf, 0644)
}
