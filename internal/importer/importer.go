// Package importer loads internship listings from JSON documents.
// Each listing is checked against an embedded JSON Schema before it is
// converted, so one bad entry does not block the rest of a batch.
package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/khrees2412/internly/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed listing.schema.json
var listingSchema string

const dateLayout = "2006-01-02"

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(listingSchema))
})

// FieldError is a single schema violation
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation of one document
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// Rejection is a document that could not be imported
type Rejection struct {
	Index int
	Err   error
}

type listingDocument struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Company             string   `json:"company"`
	CompanyDomain       string   `json:"company_domain"`
	Platform            string   `json:"platform"`
	Location            string   `json:"location"`
	Duration            string   `json:"duration"`
	Stipend             string   `json:"stipend"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	Responsibilities    []string `json:"responsibilities"`
	ApplicationDeadline string   `json:"application_deadline"`
	StartDate           string   `json:"start_date"`
	SourceURL           string   `json:"source_url"`
}

// ReadFile parses the listings in a JSON file
func ReadFile(path string) ([]*models.InternshipListing, []Rejection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses either a single listing object or an array of them.
// Malformed JSON fails the whole read; documents that fail schema or
// model validation are reported as rejections by their array index.
func Read(r io.Reader) ([]*models.InternshipListing, []Rejection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read listings: %w", err)
	}

	var docs []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, nil, fmt.Errorf("invalid listings JSON: %w", err)
		}
	} else {
		if !json.Valid(trimmed) {
			return nil, nil, fmt.Errorf("invalid listings JSON")
		}
		docs = []json.RawMessage{trimmed}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load listing schema: %w", err)
	}

	listings := []*models.InternshipListing{}
	var rejected []Rejection
	for i, raw := range docs {
		l, err := convert(schema, raw)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, Err: err})
			continue
		}
		listings = append(listings, l)
	}
	return listings, rejected, nil
}

func convert(schema *gojsonschema.Schema, raw json.RawMessage) (*models.InternshipListing, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, schemaErr
	}

	var doc listingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	l := &models.InternshipListing{
		ID:               doc.ID,
		Title:            doc.Title,
		Company:          doc.Company,
		CompanyDomain:    doc.CompanyDomain,
		Platform:         doc.Platform,
		Location:         doc.Location,
		Duration:         doc.Duration,
		Stipend:          doc.Stipend,
		RequiredSkills:   orEmpty(doc.RequiredSkills),
		PreferredSkills:  orEmpty(doc.PreferredSkills),
		Responsibilities: orEmpty(doc.Responsibilities),
		SourceURL:        doc.SourceURL,
	}
	if l.ApplicationDeadline, err = parseDate(doc.ApplicationDeadline); err != nil {
		return nil, err
	}
	if l.StartDate, err = parseDate(doc.StartDate); err != nil {
		return nil, err
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return &t, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
