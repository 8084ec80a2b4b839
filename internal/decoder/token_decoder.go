package decoder

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tokenscope/internal/event"
	"tokenscope/internal/model"
	"tokenscope/internal/scval"
	"tokenscope/internal/token"
)

// DecoderConfig configures decoder behavior. Empty lists enable everything.
type DecoderConfig struct {
	Standards  []string
	Operations []string
	Addresses  token.AddressValidator
}

// TokenDecoder decodes SEP-41 and asset contract token events.
type TokenDecoder struct {
	classifier *token.Classifier
	names      map[string]struct{}
}

// NewTokenDecoder builds a token decoder.
func NewTokenDecoder(cfg DecoderConfig) (*TokenDecoder, error) {
	standards := make([]token.Standard, 0, len(cfg.Standards))
	for _, s := range cfg.Standards {
		std, err := token.ParseStandard(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return nil, err
		}
		standards = append(standards, std)
	}
	ops := make([]token.Operation, 0, len(cfg.Operations))
	for _, s := range cfg.Operations {
		op, err := token.ParseOperation(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return nil, fmt.Errorf("unsupported event name in config: %w", err)
		}
		ops = append(ops, op)
	}

	entries := token.Filter(standards, ops)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no token layouts enabled")
	}
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Schema.Name] = struct{}{}
	}

	return &TokenDecoder{
		classifier: token.NewClassifier(entries, cfg.Addresses),
		names:      names,
	}, nil
}

// CanDecode checks if an event name is enabled.
func (d *TokenDecoder) CanDecode(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Decode converts a Record into a TypedEvent.
func (d *TokenDecoder) Decode(rec *event.Record, ctx DecodeContext) (*model.TypedEvent, error) {
	ev, err := d.classifier.ClassifyStrict(rec)
	if err != nil {
		return nil, err
	}

	decoded, err := payload(ev, ctx)
	if err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", ev.Entry().Key(), rec.ID(), err)
	}

	entry := ev.Entry()
	ctx.logger().Debug("decoded token event",
		zap.String("id", rec.ID()),
		zap.String("layout", entry.Key()),
	)
	ctx.Metrics.Decoded(string(entry.Operation), string(entry.Standard))

	return buildTypedEvent(rec, entry, decoded, ctx.IncludeRaw), nil
}

func buildTypedEvent(rec *event.Record, entry token.Entry, decoded interface{}, includeRaw bool) *model.TypedEvent {
	var raw *model.RawRef
	if includeRaw {
		topics := rec.RawTopics()
		raw = &model.RawRef{Topic0: topics[0], Value: rec.RawValue()}
	}
	closedAt := ""
	if !rec.LedgerClosedAt().IsZero() {
		closedAt = rec.LedgerClosedAt().UTC().Format(time.RFC3339)
	}
	return &model.TypedEvent{
		ID:                       rec.ID(),
		Ledger:                   rec.Ledger(),
		LedgerClosedAt:           closedAt,
		TxHash:                   rec.TxHash(),
		ContractID:               rec.ContractID(),
		InSuccessfulContractCall: rec.InSuccessfulContractCall(),
		EventName:                string(entry.Operation),
		Standard:                 string(entry.Standard),
		Revision:                 string(entry.Revision),
		Muxed:                    entry.Muxed,
		Decoded:                  decoded,
		Raw:                      raw,
	}
}

// payload maps a classified event into its JSON payload struct. A malformed
// asset descriptor is kept verbatim and logged unless StrictAsset is set.
func payload(ev token.Event, ctx DecodeContext) (interface{}, error) {
	assetName, err := assetString(ev, ctx)
	if err != nil {
		return nil, err
	}

	switch e := ev.(type) {
	case *token.Transfer:
		amount, err := e.Amount()
		if err != nil {
			return nil, err
		}
		return model.TransferEventData{
			From:      e.From(),
			To:        e.To(),
			Amount:    amount.String(),
			ToMuxedID: muxedID(e.ToMuxedID()),
			Asset:     assetName,
		}, nil
	case *token.Mint:
		amount, err := e.Amount()
		if err != nil {
			return nil, err
		}
		return model.MintEventData{
			Admin:     e.Admin(),
			To:        e.To(),
			Amount:    amount.String(),
			ToMuxedID: muxedID(e.ToMuxedID()),
			Asset:     assetName,
		}, nil
	case *token.Burn:
		amount, err := e.Amount()
		if err != nil {
			return nil, err
		}
		return model.BurnEventData{From: e.From(), Amount: amount.String(), Asset: assetName}, nil
	case *token.Approve:
		amount, err := e.Amount()
		if err != nil {
			return nil, err
		}
		liveUntil, err := e.LiveUntilLedger()
		if err != nil {
			return nil, err
		}
		return model.ApproveEventData{
			From:            e.From(),
			Spender:         e.Spender(),
			Amount:          amount.String(),
			LiveUntilLedger: liveUntil,
			Asset:           assetName,
		}, nil
	case *token.Clawback:
		amount, err := e.Amount()
		if err != nil {
			return nil, err
		}
		return model.ClawbackEventData{Admin: e.Admin(), From: e.From(), Amount: amount.String(), Asset: assetName}, nil
	case *token.SetAdmin:
		return model.SetAdminEventData{Admin: e.Admin(), NewAdmin: e.NewAdmin(), Asset: assetName}, nil
	case *token.SetAuthorized:
		return model.SetAuthorizedEventData{Admin: e.Admin(), ID: e.ID(), Authorize: e.Authorized(), Asset: assetName}, nil
	default:
		return nil, fmt.Errorf("unsupported event type %T", ev)
	}
}

func assetString(ev token.Event, ctx DecodeContext) (string, error) {
	if !ev.HasAsset() {
		return "", nil
	}
	desc, err := ev.Asset()
	if err == nil {
		return desc.String(), nil
	}
	if ctx.StrictAsset {
		return "", err
	}
	raw, _ := ev.Fields().Text(token.FieldAsset)
	ctx.logger().Warn("invalid asset descriptor",
		zap.String("id", ev.RecordID()),
		zap.String("asset", raw),
		zap.Error(err),
	)
	return raw, nil
}

func muxedID(v scval.Value, ok bool) string {
	if !ok {
		return ""
	}
	if n, isUint := v.AsUint64(); isUint {
		return fmt.Sprintf("%d", n)
	}
	if s, isText := v.AsText(); isText {
		return s
	}
	return v.String()
}
