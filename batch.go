package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrParseFailed = errors.New("unexpected failure while parsing file")

// MessageLevel is a severity of the batch message.
type MessageLevel string

const (
	MessageInfo  MessageLevel = "info"
	MessageError MessageLevel = "error"
)

// Message is a not fatal issue with one file of the batch.
type Message struct {
	Level MessageLevel `json:"level"`
	File  string       `json:"file"`
	Text  string       `json:"text"`
}

// BatchResult is a dataset built from all good files and messages about others.
type BatchResult struct {
	Dataset  *Dataset      `json:"-"`
	Files    []FileResult  `json:"-"`
	Messages []Message     `json:"messages"`
	Stats    AssemblyStats `json:"-"`
}

// Upload is a file received over HTTP.
type Upload struct {
	Name string
	Data []byte
}

// BatchProcessor parses many files. One bad file never aborts the batch.
type BatchProcessor struct {
	Parser FileParser
	I18n   *I18n
}

// ProcessFiles parses files from disk in the given order.
func (b BatchProcessor) ProcessFiles(ctx context.Context, paths []string) (*BatchResult, error) {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	return b.process(ctx, names, func(i int) ([]AssetRecord, AssemblyStats, error) {
		return b.Parser.ParseRecordsFromFile(paths[i])
	})
}

// ProcessUploads parses uploaded files in the given order.
func (b BatchProcessor) ProcessUploads(ctx context.Context, uploads []Upload) (*BatchResult, error) {
	names := make([]string, len(uploads))
	for i, upload := range uploads {
		names[i] = filepath.Base(upload.Name)
	}
	return b.process(ctx, names, func(i int) ([]AssetRecord, AssemblyStats, error) {
		return b.Parser.ParseRecordsFromBytes(uploads[i].Name, uploads[i].Data)
	})
}

func (b BatchProcessor) process(
	ctx context.Context,
	names []string,
	parse func(i int) ([]AssetRecord, AssemblyStats, error),
) (*BatchResult, error) {
	log := loggerFromContext(ctx)
	result := &BatchResult{Messages: make([]Message, 0)}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch is interrupted after %d files: %w", i, err)
		}

		records, stats, err := parseRecovered(i, parse)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Can't read file")
			result.Messages = append(result.Messages, Message{
				Level: MessageError,
				File:  name,
				Text:  b.I18n.T("Critical error processing file", "file", name, "error", err),
			})
			continue
		}

		result.Stats.Add(stats)
		if len(records) == 0 {
			result.Messages = append(result.Messages, Message{
				Level: MessageInfo,
				File:  name,
				Text:  b.I18n.T("No relevant data found in file", "file", name),
			})
			continue
		}
		result.Files = append(result.Files, FileResult{FileName: name, Records: records})
	}
	result.Dataset = BuildDataset(result.Files)
	log.Info().
		Int("files", len(names)).
		Int("records", len(result.Dataset.Records)).
		Int("messages", len(result.Messages)).
		Msg("Batch processed")
	return result, nil
}

// parseRecovered calls parse and returns panic of it as an error of the file.
func parseRecovered(
	i int,
	parse func(i int) ([]AssetRecord, AssemblyStats, error),
) (records []AssetRecord, stats AssemblyStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, stats, err = nil, AssemblyStats{}, fmt.Errorf("%w: %v", ErrParseFailed, r)
		}
	}()
	return parse(i)
}

// filesByGlob returns files matching the glob, or message if there are none.
func filesByGlob(glob string, i18n *I18n) ([]string, *Message, error) {
	files, err := getFilesByGlob(glob)
	if err != nil {
		return nil, nil, fmt.Errorf("bad files pattern '%s': %w", glob, err)
	}
	if len(files) < 1 {
		workingDir, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("can't get working directory: %w", err)
		}
		return nil, &Message{
			Level: MessageInfo,
			File:  glob,
			Text:  i18n.T("No files match pattern", "dir", workingDir, "glob", glob),
		}, nil
	}
	return files, nil, nil
}
