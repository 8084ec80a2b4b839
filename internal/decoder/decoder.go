package decoder

import (
	"go.uber.org/zap"

	"tokenscope/internal/event"
	"tokenscope/internal/metrics"
	"tokenscope/internal/model"
)

// Decoder defines a record decoder.
type Decoder interface {
	CanDecode(name string) bool
	Decode(rec *event.Record, ctx DecodeContext) (*model.TypedEvent, error)
}

// DecodeContext provides shared dependencies for decoders.
type DecodeContext struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	IncludeRaw  bool
	StrictAsset bool
}

func (c DecodeContext) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
