package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
)

type Args struct {
	Files       []string `arg:"positional" help:"Report files (.xlsx, .xls, .csv, .txt). By default are used files matching 'inputFilesGlob' from the configuration."`
	ConfigPath  string   `arg:"-c,--config" help:"Path to the configuration YAML file. By default are used built-in settings."`
	Output      string   `arg:"-o,--output" default:"Ativos.xlsx" help:"Path to the export file."`
	Format      string   `arg:"-f,--format" default:"xlsx" help:"Format of the export file: 'xlsx' or 'csv'."`
	Branches    []string `arg:"--branch,separate" help:"Export only records of the branch. May be repeated."`
	Accounts    []string `arg:"--account,separate" help:"Export only records of the account description. May be repeated."`
	FileFilter  []string `arg:"--file,separate" help:"Export only records of the file name. May be repeated."`
	Serve       bool     `arg:"--serve" help:"Start HTTP API after processing files."`
	WriteConfig string   `arg:"--write-config" help:"Write effective configuration into the file and exit."`
	Open        bool     `arg:"--open" help:"Open the export file in OS."`
}

// Version is application version string and should be updated with `go build -ldflags`.
var Version = "development"

func (Args) Version() string {
	return Version
}

func (Args) Description() string {
	return "AM-Asset-View is a local tool to merge fixed-asset depreciation reports into one dataset with aggregates."
}

func main() {
	args, isHelpRequested, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing arguments: %v", err)
	}
	if isHelpRequested {
		return
	}
	if err := runApplication(args, os.Stdout); err != nil {
		log.Fatalf("%s", err)
	}
}

// parseArgs parses command line arguments. Returns true if help was requested and printed.
func parseArgs(osArgs []string) (Args, bool, error) {
	var args Args
	p, err := arg.NewParser(arg.Config{}, &args)
	if err != nil {
		return args, false, fmt.Errorf("error creating argument parser: %w", err)
	}

	err = p.Parse(osArgs)
	if err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(os.Stdout)
			return args, true, nil
		}
		if errors.Is(err, arg.ErrVersion) {
			fmt.Println(Version)
			return args, true, nil
		}
		return args, false, err
	}
	return args, false, nil
}

// runApplication processes input files, prints the text report into stdout,
// writes the export file and optionally serves HTTP API.
func runApplication(args Args, stdout io.Writer) error {
	switch args.Format {
	case FORMAT_XLSX, FORMAT_CSV:
		// Valid formats
	default:
		return fmt.Errorf("invalid Format '%s', supported only: %s, %s", args.Format, FORMAT_XLSX, FORMAT_CSV)
	}

	if err := godotenv.Load(DOTENV_FILE_PATH); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("can't load '%s' file: %w", DOTENV_FILE_PATH, err)
	}

	configPath := ""
	if args.ConfigPath != "" {
		var err error
		configPath, err = getAbsolutePath(args.ConfigPath)
		if err != nil {
			return fmt.Errorf("can't find configuration file '%s': %w", args.ConfigPath, err)
		}
	}
	config, err := readConfig(configPath)
	if err != nil {
		return fmt.Errorf("configuration file '%s' is wrong: %w", configPath, err)
	}
	if args.WriteConfig != "" {
		if err := config.writeToFile(args.WriteConfig); err != nil {
			return fmt.Errorf("can't write configuration into '%s': %w", args.WriteConfig, err)
		}
		return nil
	}

	location := config.Location()
	logger := newLogger(os.Stderr, config.LogLevel, location)
	logger.Info().Str("version", Version).Str("config", configPath).Msg("Starting")
	i18n, err := NewI18n(config.Language)
	if err != nil {
		return fmt.Errorf("can't load translations: %w", err)
	}
	ctx, stop := signal.NotifyContext(withLogger(context.Background(), logger), os.Interrupt)
	defer stop()

	processor := BatchProcessor{Parser: NewReportParser(config, logger), I18n: i18n}
	store := NewBatchStore(location)

	files := args.Files
	var messages []Message
	if len(files) == 0 && config.InputFilesGlob != "" {
		var message *Message
		files, message, err = filesByGlob(config.InputFilesGlob, i18n)
		if err != nil {
			return err
		}
		if message != nil {
			messages = append(messages, *message)
		}
	}

	if len(files) > 0 {
		result, err := processor.ProcessFiles(ctx, files)
		if err != nil {
			return err
		}
		result.Messages = append(messages, result.Messages...)
		if err := dumpBatch(stdout, result, i18n); err != nil {
			return fmt.Errorf("can't dump report: %w", err)
		}

		filter := Filter{Files: args.FileFilter, Branches: args.Branches, Accounts: args.Accounts}
		if err := writeExport(args.Output, args.Format, result.Dataset.Filter(filter), i18n); err != nil {
			return err
		}
		logger.Info().Str("file", args.Output).Msg("Export written")
		if args.Open {
			if err := openFileInOS(args.Output); err != nil {
				return fmt.Errorf("can't open result file %s: %w", args.Output, err)
			}
		}

		if args.Serve {
			batch := store.Save(result)
			logger.Info().Str("batch", batch.ID).Msg("Batch of input files is available")
		}
	} else {
		for _, m := range messages {
			fmt.Fprintln(stdout, m.Text)
		}
		if !args.Serve {
			return errors.New("no input files, pass files as arguments or set 'inputFilesGlob' in configuration")
		}
	}

	if !args.Serve {
		return nil
	}
	server := NewServer(config, processor, store, logger)
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Can't shutdown server")
		}
	}()
	return server.Listen(config.ListenAddress)
}

// dumpBatch writes list of files, messages and aggregates.
func dumpBatch(w io.Writer, result *BatchResult, i18n *I18n) error {
	files := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, f.FileName)
	}
	if _, err := fmt.Fprintln(w, i18n.T("Files", "files", files)); err != nil {
		return err
	}
	if len(result.Messages) > 0 {
		if _, err := fmt.Fprintln(w, i18n.T("Messages")); err != nil {
			return err
		}
		for _, m := range result.Messages {
			if _, err := fmt.Fprintf(w, "  [%s] %s\n", m.Level, m.Text); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return DumpAggregates(w, result.Dataset, i18n)
}

// writeExport writes dataset into the file in the format.
func writeExport(path, format string, dataset *Dataset, i18n *I18n) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("can't create directory for '%s': %w", path, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create export file '%s': %w", path, err)
	}
	defer file.Close()

	write := WriteExcel
	if format == FORMAT_CSV {
		write = WriteCSV
	}
	if err := write(file, dataset, i18n); err != nil {
		return fmt.Errorf("can't write export file '%s': %w", path, err)
	}
	return file.Close()
}
