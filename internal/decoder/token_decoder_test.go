package decoder

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"tokenscope/internal/errs"
	"tokenscope/internal/event"
	"tokenscope/internal/metrics"
	"tokenscope/internal/model"
	"tokenscope/internal/scval"
	"tokenscope/internal/strkey"
)

var (
	issuer   = strkey.EncodeAccount([32]byte{0x10})
	holder   = strkey.EncodeAccount([32]byte{0x20})
	receiver = strkey.EncodeAccount([32]byte{0x30})
	tokenID  = strkey.EncodeContract([32]byte{0x40})
)

func buildRecord(t *testing.T, topics []scval.Value, value scval.Value) *event.Record {
	t.Helper()
	codec := scval.JSONCodec{}
	raw := make([]string, 0, len(topics))
	for _, topic := range topics {
		enc, err := codec.EncodeValue(topic)
		if err != nil {
			t.Fatalf("encode topic: %v", err)
		}
		raw = append(raw, enc)
	}
	val, err := codec.EncodeValue(value)
	if err != nil {
		t.Fatalf("encode value: %v", err)
	}
	rec, err := event.New(event.Fields{
		ID:                       "0000219364632887296-0000000002",
		Kind:                     event.KindContract,
		Ledger:                   51_075_046,
		LedgerClosedAt:           time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		InSuccessfulContractCall: true,
		TxHash:                   "3389e9f0f1a65f19736cacf544c2e825313e8447f569233bb8db39aa607c8889",
		ContractID:               tokenID,
		Topics:                   raw,
		Value:                    val,
	}, event.Options{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return rec
}

func TestTokenDecoderTransfer(t *testing.T) {
	decoder, err := NewTokenDecoder(DecoderConfig{})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	m := metrics.New()
	ctx := DecodeContext{Logger: zap.NewNop(), Metrics: m, IncludeRaw: true}

	rec := buildRecord(t,
		[]scval.Value{scval.Symbol("transfer"), scval.Address(holder), scval.Address(receiver), scval.String("USDC:" + issuer)},
		scval.Map(scval.Entry("amount", scval.MustI128(1_000_000)), scval.Entry("to_muxed_id", scval.U64(99))),
	)

	if !decoder.CanDecode("transfer") || decoder.CanDecode("swap") {
		t.Fatalf("unexpected CanDecode result")
	}

	ev, err := decoder.Decode(rec, ctx)
	if err != nil {
		t.Fatalf("decode transfer: %v", err)
	}
	transfer, ok := ev.Decoded.(model.TransferEventData)
	if !ok {
		t.Fatalf("decoded type mismatch: %T", ev.Decoded)
	}
	if transfer.From != holder || transfer.To != receiver || transfer.Amount != "1000000" {
		t.Fatalf("transfer mismatch: %+v", transfer)
	}
	if transfer.ToMuxedID != "99" || transfer.Asset != "USDC:"+issuer {
		t.Fatalf("muxed fields mismatch: %+v", transfer)
	}
	if ev.Standard != "sac" || ev.Revision != "cap67" || !ev.Muxed {
		t.Fatalf("layout mismatch: %s %s %v", ev.Standard, ev.Revision, ev.Muxed)
	}
	if ev.LedgerClosedAt != "2024-03-01T10:00:00Z" || ev.ContractID != tokenID {
		t.Fatalf("metadata mismatch: %+v", ev)
	}
	if ev.Raw == nil || ev.Raw.Topic0 != rec.RawTopics()[0] {
		t.Fatalf("raw reference missing")
	}
}

func TestTokenDecoderApproveAndMint(t *testing.T) {
	decoder, err := NewTokenDecoder(DecoderConfig{Standards: []string{"sep41"}})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	ctx := DecodeContext{}

	approve := buildRecord(t,
		[]scval.Value{scval.Symbol("approve"), scval.Address(holder), scval.Address(receiver)},
		scval.Vec(scval.MustI128(77), scval.U32(600_000)),
	)
	ev, err := decoder.Decode(approve, ctx)
	if err != nil {
		t.Fatalf("decode approve: %v", err)
	}
	data := ev.Decoded.(model.ApproveEventData)
	if data.Amount != "77" || data.LiveUntilLedger != 600_000 || data.Asset != "" {
		t.Fatalf("approve mismatch: %+v", data)
	}
	if ev.Raw != nil {
		t.Fatalf("raw reference must be opt-in")
	}

	mint := buildRecord(t,
		[]scval.Value{scval.Symbol("mint"), scval.Address(receiver)},
		scval.MustI128(5),
	)
	ev, err = decoder.Decode(mint, ctx)
	if err != nil {
		t.Fatalf("decode mint: %v", err)
	}
	if m := ev.Decoded.(model.MintEventData); m.To != receiver || m.Amount != "5" || m.Admin != "" {
		t.Fatalf("mint mismatch: %+v", m)
	}
}

func TestTokenDecoderInvalidAsset(t *testing.T) {
	decoder, err := NewTokenDecoder(DecoderConfig{Operations: []string{"burn"}})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	rec := buildRecord(t,
		[]scval.Value{scval.Symbol("burn"), scval.Address(holder), scval.String("invalid-asset")},
		scval.MustI128(3),
	)

	ev, err := decoder.Decode(rec, DecodeContext{})
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if burn := ev.Decoded.(model.BurnEventData); burn.Asset != "invalid-asset" {
		t.Fatalf("asset should be kept verbatim: %+v", burn)
	}

	_, err = decoder.Decode(rec, DecodeContext{StrictAsset: true})
	if !errors.Is(err, errs.ErrInvalidDomainValue) {
		t.Fatalf("expected invalid domain value, got %v", err)
	}
}

func TestTokenDecoderRejectsDisabledLayouts(t *testing.T) {
	decoder, err := NewTokenDecoder(DecoderConfig{Operations: []string{"mint"}})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	rec := buildRecord(t,
		[]scval.Value{scval.Symbol("burn"), scval.Address(holder)},
		scval.MustI128(3),
	)
	if _, err := decoder.Decode(rec, DecodeContext{}); !errors.Is(err, errs.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestNewTokenDecoderValidatesConfig(t *testing.T) {
	if _, err := NewTokenDecoder(DecoderConfig{Standards: []string{"erc20"}}); err == nil {
		t.Fatalf("expected unknown standard error")
	}
	if _, err := NewTokenDecoder(DecoderConfig{Operations: []string{"swap"}}); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}
