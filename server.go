package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	uploadFormField = "files"
	contentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCsv  = "text/csv; charset=utf-8"
	requestIDHeader = "X-Request-ID"
	exportFileName  = "ativos"
)

// Server is HTTP API over batches of uploaded reports.
type Server struct {
	app       *fiber.App
	processor BatchProcessor
	store     *BatchStore
	log       zerolog.Logger
}

// batchResponse is JSON with an overview of the batch.
type batchResponse struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Files     []string      `json:"files"`
	Summary   Totals        `json:"summary"`
	Messages  []Message     `json:"messages"`
	Options   FilterOptions `json:"options"`
}

// NewServer creates fiber application with all routes registered.
func NewServer(cfg *Config, processor BatchProcessor, store *BatchStore, log zerolog.Logger) *Server {
	s := &Server{
		processor: processor,
		store:     store,
		log:       log,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "AM Asset View " + Version,
		BodyLimit:             cfg.MaxUploadSizeMB << 20,
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})
	s.app.Use(s.logRequests, recover.New())

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/batches", s.handleListBatches)
	api.Post("/batches", s.handleCreateBatch)
	api.Get("/batches/:id", s.handleGetBatch)
	api.Delete("/batches/:id", s.handleDeleteBatch)
	api.Get("/batches/:id/records", s.handleRecords)
	api.Get("/batches/:id/aggregates", s.handleAggregates)
	api.Get("/batches/:id/export.xlsx", s.handleExportXlsx)
	api.Get("/batches/:id/export.csv", s.handleExportCsv)
	return s
}

// Listen serves requests until Shutdown.
func (s *Server) Listen(address string) error {
	s.log.Info().Str("address", address).Msg("Listening")
	return s.app.Listen(address)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	requestID := c.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := s.log.With().Str("requestId", requestID).Logger()
	c.SetUserContext(withLogger(c.UserContext(), log))
	c.Set(requestIDHeader, requestID)

	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = statusOf(err)
	}
	event := log.Info()
	if status >= fiber.StatusInternalServerError {
		event = log.Error().Err(err)
	}
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
	return err
}

func statusOf(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, ErrBatchNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

func (s *Server) handleListBatches(c *fiber.Ctx) error {
	batches := s.store.List()
	result := make([]batchResponse, 0, len(batches))
	for _, batch := range batches {
		result = append(result, newBatchResponse(batch))
	}
	return c.JSON(result)
}

func (s *Server) handleCreateBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
	}
	headers := form.File[uploadFormField]
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("no files uploaded, use form field '%s'", uploadFormField))
	}

	uploads := make([]Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return fmt.Errorf("can't open uploaded '%s': %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("can't read uploaded '%s': %w", header.Filename, err)
		}
		uploads = append(uploads, Upload{Name: header.Filename, Data: data})
	}

	result, err := s.processor.ProcessUploads(c.UserContext(), uploads)
	if err != nil {
		return err
	}
	batch := s.store.Save(result)
	return c.Status(fiber.StatusCreated).JSON(newBatchResponse(batch))
}

func (s *Server) handleGetBatch(c *fiber.Ctx) error {
	batch, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newBatchResponse(batch))
}

func (s *Server) handleDeleteBatch(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRecords(c *fiber.Ctx) error {
	dataset, err := s.filteredDataset(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"summary": Summarize(dataset.Records),
		"records": dataset.Records,
	})
}

func (s *Server) handleAggregates(c *fiber.Ctx) error {
	kind, err := ParseAggregationKind(c.Query("by", string(AggregateBranch)))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	dataset, err := s.filteredDataset(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"by":     kind,
		"groups": Aggregate(dataset.Records, kind),
	})
}

func (s *Server) handleExportXlsx(c *fiber.Ctx) error {
	return s.export(c, FORMAT_XLSX, contentTypeXlsx, WriteExcel)
}

func (s *Server) handleExportCsv(c *fiber.Ctx) error {
	return s.export(c, FORMAT_CSV, contentTypeCsv, WriteCSV)
}

func (s *Server) export(
	c *fiber.Ctx,
	extension, contentType string,
	write func(io.Writer, *Dataset, *I18n) error,
) error {
	dataset, err := s.filteredDataset(c)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := write(buf, dataset, s.processor.I18n); err != nil {
		return fmt.Errorf("can't export %s: %w", extension, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, exportFileName, extension))
	return c.Send(buf.Bytes())
}

// filteredDataset returns dataset of the batch from the path filtered by query.
// Query parameters "file", "branch" and "account" may be repeated.
func (s *Server) filteredDataset(c *fiber.Ctx) (*Dataset, error) {
	batch, err := s.store.Get(c.Params("id"))
	if err != nil {
		return nil, err
	}
	filter := Filter{
		Files:    queryValues(c, "file"),
		Branches: queryValues(c, "branch"),
		Accounts: queryValues(c, "account"),
	}
	if filter.IsEmpty() {
		return batch.Result.Dataset, nil
	}
	return batch.Result.Dataset.Filter(filter), nil
}

func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if len(v) > 0 {
			values = append(values, string(v))
		}
	}
	return values
}

func newBatchResponse(batch Batch) batchResponse {
	files := make([]string, 0, len(batch.Result.Files))
	for _, f := range batch.Result.Files {
		files = append(files, f.FileName)
	}
	return batchResponse{
		ID:        batch.ID,
		CreatedAt: batch.CreatedAt,
		Files:     files,
		Summary:   Summarize(batch.Result.Dataset.Records),
		Messages:  batch.Result.Messages,
		Options:   batch.Result.Dataset.Options(),
	}
}
