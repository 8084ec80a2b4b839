package schema

import (
	"fmt"

	"tokenscope/internal/scval"
)

// Wildcard is the sentinel placed in a topic filter slot that matches any
// value. It is the only wildcard form a TopicFilter carries.
const Wildcard = "*"

// TopicFilter is an ordered list of encoded topic values or Wildcard, one
// slot per topic of the schema it was built from.
type TopicFilter []string

// IsWildcard reports whether slot i matches anything.
func (f TopicFilter) IsWildcard(i int) bool {
	return i >= 0 && i < len(f) && f[i] == Wildcard
}

// Strings returns the slots as a plain slice for a subscription request.
func (f TopicFilter) Strings() []string {
	return append([]string(nil), f...)
}

// Accepts reports whether decoded topics satisfy the filter. Concrete slots
// are compared by decoded value, so encodings need not be byte-identical.
func (f TopicFilter) Accepts(topics []scval.Value, codec scval.Codec) bool {
	if len(topics) != len(f) {
		return false
	}
	for i, slot := range f {
		if slot == Wildcard {
			continue
		}
		want, err := codec.Decode(slot)
		if err != nil || !want.Equal(topics[i]) {
			return false
		}
	}
	return true
}

// ToTopicFilter builds the filter for s. partial holds concrete values keyed
// by topic field name; missing fields become Wildcard. Output order follows
// the schema's declaration order, never the order of partial.
func ToTopicFilter(s Schema, partial map[string]any, codec scval.Codec) (TopicFilter, error) {
	if codec == nil {
		codec = scval.JSONCodec{}
	}
	for name := range partial {
		if _, _, ok := s.TopicField(name); !ok {
			return nil, fmt.Errorf("%w %q: schema %s topics are %v", ErrUnknownField, name, s.Name, topicNames(s))
		}
	}

	filter := make(TopicFilter, 0, s.TopicCount())
	name, err := codec.Encode(s.Name, scval.KindSymbol)
	if err != nil {
		return nil, fmt.Errorf("encode schema name %s: %w", s.Name, err)
	}
	filter = append(filter, name)

	for _, field := range s.Topics {
		value, ok := partial[field.Name]
		if !ok {
			filter = append(filter, Wildcard)
			continue
		}
		hint, ok := field.Type.Kind()
		if !ok {
			return nil, fmt.Errorf("schema %s field %s has unknown type %q", s.Name, field.Name, field.Type)
		}
		encoded, err := codec.Encode(value, hint)
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", s.Name, field.Name, err)
		}
		filter = append(filter, encoded)
	}
	return filter, nil
}

func topicNames(s Schema) []string {
	names := make([]string, 0, len(s.Topics))
	for _, f := range s.Topics {
		names = append(names, f.Name)
	}
	return names
}
