// Package ingest reads upstream raw events from JSON lines and writes JSON
// lines output.
package ingest

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tokenscope/internal/model"
)

//go:embed raw_event.schema.json
var rawEventSchema string

const rawEventSchemaURL = "https://tokenscope.local/schemas/raw_event.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// RawEventSchema returns the compiled schema of the upstream event shape.
func RawEventSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(rawEventSchemaURL, strings.NewReader(rawEventSchema)); err != nil {
			compileErr = fmt.Errorf("raw event schema load failed: %w", err)
			return
		}
		compiled, compileErr = c.Compile(rawEventSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("raw event schema compile failed: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// LineError reports an input line that could not be turned into a RawEvent.
// Reading may continue after it.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Line is one parsed input line.
type Line struct {
	Number int
	Event  model.RawEvent
}

// Reader yields validated raw events from a JSON lines stream. Blank lines
// are skipped.
type Reader struct {
	scanner  *bufio.Scanner
	schema   *jsonschema.Schema
	line     int
	validate bool
}

// NewReader wraps r. When validate is false lines are only unmarshalled.
func NewReader(r io.Reader, validate bool) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	reader := &Reader{scanner: scanner, validate: validate}
	if validate {
		s, err := RawEventSchema()
		if err != nil {
			return nil, err
		}
		reader.schema = s
	}
	return reader, nil
}

// Next returns the next event. It returns io.EOF at the end of input, a
// *LineError for a bad line, and any other error for a failed read.
func (r *Reader) Next() (Line, error) {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := r.parse(line)
		if err != nil {
			return Line{Number: r.line}, &LineError{Line: r.line, Err: err}
		}
		return Line{Number: r.line, Event: ev}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Line{}, fmt.Errorf("scan input: %w", err)
	}
	return Line{}, io.EOF
}

func (r *Reader) parse(line []byte) (model.RawEvent, error) {
	if r.schema != nil {
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		var doc interface{}
		if err := dec.Decode(&doc); err != nil {
			return model.RawEvent{}, fmt.Errorf("unmarshal: %w", err)
		}
		if err := r.schema.Validate(doc); err != nil {
			return model.RawEvent{}, fmt.Errorf("schema validation failed: %w", err)
		}
	}
	var ev model.RawEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return model.RawEvent{}, fmt.Errorf("unmarshal: %w", err)
	}
	return ev, nil
}
