package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"tokenscope/internal/config"
	"tokenscope/internal/decoder"
	"tokenscope/internal/metrics"
	"tokenscope/internal/model"
	"tokenscope/internal/scval"
	"tokenscope/internal/strkey"
	"tokenscope/internal/token"
)

type memorySink struct {
	items []interface{}
}

func (s *memorySink) Write(value interface{}) error {
	s.items = append(s.items, value)
	return nil
}

func rawLine(t *testing.T, kind string, topics []scval.Value, value scval.Value) string {
	t.Helper()
	codec := scval.JSONCodec{}
	raw := model.RawEvent{
		ID:                       "0000219364632887296-0000000001",
		Kind:                     kind,
		Ledger:                   51_075_046,
		LedgerClosedAt:           "2024-03-01T10:00:00Z",
		InSuccessfulContractCall: true,
		TxHash:                   "3389e9f0f1a65f19736cacf544c2e825313e8447f569233bb8db39aa607c8889",
		ContractID:               strkey.EncodeContract([32]byte{7}),
	}
	for _, topic := range topics {
		enc, err := codec.EncodeValue(topic)
		if err != nil {
			t.Fatalf("encode topic: %v", err)
		}
		raw.Topics = append(raw.Topics, enc)
	}
	val, err := codec.EncodeValue(value)
	if err != nil {
		t.Fatalf("encode value: %v", err)
	}
	raw.Value = val
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestDecodeStream(t *testing.T) {
	from := strkey.EncodeAccount([32]byte{1})
	to := strkey.EncodeAccount([32]byte{2})

	lines := []string{
		rawLine(t, "contract", []scval.Value{scval.Symbol("transfer"), scval.Address(from), scval.Address(to)}, scval.MustI128(10)),
		rawLine(t, "contract", []scval.Value{scval.Symbol("swap"), scval.Address(from)}, scval.MustI128(10)),
		rawLine(t, "contract", []scval.Value{scval.Symbol("transfer"), scval.Address(from)}, scval.MustI128(10)),
		rawLine(t, "system", []scval.Value{scval.Symbol("transfer"), scval.Address(from), scval.Address(to)}, scval.MustI128(10)),
		`{"id":"broken"}`,
	}

	dec, err := decoder.NewTokenDecoder(decoder.DecoderConfig{})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	out, errOut := &memorySink{}, &memorySink{}
	stats, err := decodeStream(context.Background(), strings.NewReader(strings.Join(lines, "\n")), dec, decoder.DecodeContext{}, true, out, errOut)
	if err != nil {
		t.Fatalf("decode stream: %v", err)
	}

	if stats.total != 5 || stats.decoded != 1 || stats.skipped != 2 || stats.failed != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	typed, ok := out.items[0].(*model.TypedEvent)
	if !ok || typed.EventName != "transfer" {
		t.Fatalf("unexpected output %#v", out.items[0])
	}
	if len(errOut.items) != 2 {
		t.Fatalf("expected 2 error records, got %d", len(errOut.items))
	}
	if rec := errOut.items[0].(model.DecodeError); rec.Line != 3 || rec.Topic0 == "" {
		t.Fatalf("unexpected decode error %+v", rec)
	}
	if rec := errOut.items[1].(model.DecodeError); rec.Line != 5 {
		t.Fatalf("unexpected ingest error %+v", rec)
	}
}

func TestDecodeStreamBucketsSkippedNames(t *testing.T) {
	from := strkey.EncodeAccount([32]byte{1})
	to := strkey.EncodeAccount([32]byte{2})
	lines := []string{
		rawLine(t, "contract", []scval.Value{scval.Symbol("swap"), scval.Address(from)}, scval.MustI128(1)),
		rawLine(t, "contract", []scval.Value{scval.Symbol("x9f3a7c"), scval.Address(from)}, scval.MustI128(1)),
		rawLine(t, "contract", []scval.Value{scval.Symbol("burn"), scval.Address(from)}, scval.MustI128(1)),
		rawLine(t, "system", []scval.Value{scval.Symbol("transfer"), scval.Address(from), scval.Address(to)}, scval.MustI128(1)),
	}

	dec, err := decoder.NewTokenDecoder(decoder.DecoderConfig{Operations: []string{"transfer"}})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	m := metrics.New()
	stats, err := decodeStream(context.Background(), strings.NewReader(strings.Join(lines, "\n")), dec,
		decoder.DecodeContext{Metrics: m}, true, &memorySink{}, &memorySink{})
	if err != nil {
		t.Fatalf("decode stream: %v", err)
	}
	if stats.skipped != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	path := filepath.Join(t.TempDir(), "decode.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`tokenscope_events_skipped_total{event="other"} 2`,
		`tokenscope_events_skipped_total{event="burn"} 1`,
		`tokenscope_events_skipped_total{event="system"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %s in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "swap") || strings.Contains(text, "x9f3a7c") {
		t.Fatalf("raw event names leaked into labels:\n%s", text)
	}
}

func TestWriteFilter(t *testing.T) {
	to := strkey.EncodeAccount([32]byte{2})
	var buf bytes.Buffer
	err := writeFilter(&buf, config.FilterConfig{
		Standard: "sac",
		Event:    "transfer",
		Revision: "any",
		Fields:   map[string]string{"to": to},
	})
	if err != nil {
		t.Fatalf("write filter: %v", err)
	}

	var got filterOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Layout != "sac/transfer/any" || len(got.Topics) != 4 {
		t.Fatalf("unexpected filter %+v", got)
	}
	if got.Topics[1] != "*" || got.Topics[3] != "*" || got.Topics[2] == "*" {
		t.Fatalf("unexpected wildcard layout %v", got.Topics)
	}

	err = writeFilter(&buf, config.FilterConfig{Standard: "sep41", Event: "transfer", Revision: "any", Fields: map[string]string{"amount": "1"}})
	if err == nil {
		t.Fatalf("value field must not be accepted as a topic")
	}
}

func TestWriteFilterRejectsUnknownLayouts(t *testing.T) {
	cases := []config.FilterConfig{
		{Standard: "erc20", Event: "transfer", Revision: "any"},
		{Standard: "sep41", Event: "swap", Revision: "any"},
		{Standard: "sep41", Event: "mint", Revision: "legacy"},
		{Standard: "sep41", Event: "burn", Muxed: true},
		{Standard: "sep41"},
	}
	for _, cfg := range cases {
		if err := writeFilter(io.Discard, cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestWriteSchemasYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSchemas(&buf, []string{"sac"}, []string{"mint"}, "yaml"); err != nil {
		t.Fatalf("write schemas: %v", err)
	}

	var entries []token.Entry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 sac mint layouts, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Standard != token.StandardSAC || e.Operation != token.OpMint {
			t.Fatalf("unexpected entry %+v", e)
		}
	}

	if err := writeSchemas(&buf, nil, nil, "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestEventIDCommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"eventid", "create", "--ledger", "51075046", "--tx", "3", "--op", "0", "--index", "1"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create: %v", err)
	}
	id := strings.TrimSpace(out.String())
	if len(id) != 30 || !strings.HasSuffix(id, "-0000000000") {
		t.Fatalf("unexpected id %q", id)
	}

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"eventid", "parse", id})
	if err := root.Execute(); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out.String(), "51075046") {
		t.Fatalf("unexpected parse output %s", out.String())
	}
}
