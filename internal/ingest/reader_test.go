package ingest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

const validLine = `{"id":"0000219364632887296-0000000001","kind":"contract","ledger":51075046,` +
	`"ledgerClosedAt":"2024-03-01T10:00:00Z","transactionIndex":3,"operationIndex":0,` +
	`"inSuccessfulContractCall":true,` +
	`"txHash":"3389e9f0f1a65f19736cacf544c2e825313e8447f569233bb8db39aa607c8889",` +
	`"contractId":"CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",` +
	`"topics":["{\"type\":\"symbol\",\"value\":\"mint\"}"],` +
	`"value":"{\"type\":\"i128\",\"value\":\"5\"}"}`

func TestReaderValidLine(t *testing.T) {
	input := "\n" + validLine + "\n\n"
	r, err := NewReader(strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}

	line, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if line.Number != 2 {
		t.Fatalf("line number = %d", line.Number)
	}
	if line.Event.Ledger != 51075046 || line.Event.Kind != "contract" || len(line.Event.Topics) != 1 {
		t.Fatalf("unexpected event %+v", line.Event)
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReaderSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"bad kind":     strings.Replace(validLine, `"kind":"contract"`, `"kind":"diagnostic"`, 1),
		"bad id":       strings.Replace(validLine, `0000219364632887296-0000000001`, `42`, 1),
		"no topics":    strings.Replace(validLine, `"topics":["{\"type\":\"symbol\",\"value\":\"mint\"}"]`, `"topics":[]`, 1),
		"bad tx hash":  strings.Replace(validLine, `3389e9f0`, `zz89e9f0`, 1),
		"not json":     `{"id":`,
		"ledger sign":  strings.Replace(validLine, `"ledger":51075046`, `"ledger":-1`, 1),
		"missing vals": `{"id":"0000219364632887296-0000000001","kind":"system","ledger":1}`,
	}

	for name, input := range cases {
		r, err := NewReader(strings.NewReader(input), true)
		if err != nil {
			t.Fatalf("reader: %v", err)
		}
		_, err = r.Next()
		var lineErr *LineError
		if !errors.As(err, &lineErr) || lineErr.Line != 1 {
			t.Errorf("%s: expected LineError on line 1, got %v", name, err)
		}
	}
}

func TestReaderContinuesAfterBadLine(t *testing.T) {
	input := "garbage\n" + validLine + "\n"
	r, err := NewReader(strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	if _, err := r.Next(); err == nil {
		t.Fatalf("expected error on first line")
	}
	line, err := r.Next()
	if err != nil || line.Number != 2 {
		t.Fatalf("expected second line to parse: %v", err)
	}
}

func TestReaderWithoutValidation(t *testing.T) {
	input := strings.Replace(validLine, `"kind":"contract"`, `"kind":"diagnostic"`, 1)
	r, err := NewReader(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	line, err := r.Next()
	if err != nil || line.Event.Kind != "diagnostic" {
		t.Fatalf("unvalidated read: %+v %v", line, err)
	}
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)
	if err := w.Write(map[string]int{"a": 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Write([]string{"b"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := buf.String(); got != "{\"a\":1}\n[\"b\"]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
