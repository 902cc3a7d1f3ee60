// Package importer loads clients from CSV files into the client service.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/clientbook/clientbook/internal/logger"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/validation"
)

// Row is one parsed CSV record. Line is the 1-based line in the file.
type Row struct {
	Line int
	Form validation.ClientForm
}

// Parser converts a client CSV file into form rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	var names []string
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ExportParser())
	r.Register(LegacyParser())
	return r
}

// ClientCreator is the part of the client service the importer needs.
type ClientCreator interface {
	FindID(ctx context.Context, lastName, firstName, phone string) (uint, bool, error)
	Create(ctx context.Context, in validation.ClientInput) (*model.Client, error)
}

// RowError records a row that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result summarizes an import run.
type Result struct {
	Created []uint
	Skipped []int
	Failed  []RowError
}

// Importer validates rows and creates the clients that do not exist yet.
// A row whose last name, first name and phone match an existing client is
// skipped.
type Importer struct {
	clients ClientCreator
}

// New creates an Importer writing through clients.
func New(clients ClientCreator) *Importer {
	return &Importer{clients: clients}
}

// ImportFile opens path and imports it with parser.
func (im *Importer) ImportFile(ctx context.Context, parser Parser, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return im.Import(ctx, parser, f)
}

// Import parses r and imports every row. Invalid rows are collected in
// Result.Failed; store failures abort the run.
func (im *Importer) Import(ctx context.Context, parser Parser, r io.Reader) (Result, error) {
	rows, err := parser.Parse(r)
	if err != nil {
		return Result{}, err
	}

	log := logger.FromContext(ctx)
	var res Result
	for _, row := range rows {
		in, err := validation.ParseClient(row.Form)
		if err != nil {
			res.Failed = append(res.Failed, RowError{Line: row.Line, Err: err})
			continue
		}

		_, exists, err := im.clients.FindID(ctx, in.LastName, in.FirstName, in.Phone)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", row.Line, err)
		}
		if exists {
			log.Debug().Int("line", row.Line).Str("name", in.LastName).Msg("client already exists, skipping")
			res.Skipped = append(res.Skipped, row.Line)
			continue
		}

		c, err := im.clients.Create(ctx, in)
		if errors.Is(err, validation.ErrValidation) {
			res.Failed = append(res.Failed, RowError{Line: row.Line, Err: err})
			continue
		}
		if err != nil {
			return res, fmt.Errorf("line %d: %w", row.Line, err)
		}
		res.Created = append(res.Created, c.ID)
	}

	log.Info().
		Str("format", parser.Format()).
		Int("created", len(res.Created)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failed)).
		Msg("client import finished")
	return res, nil
}
