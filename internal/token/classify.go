package token

import (
	"tokenscope/internal/errs"
	"tokenscope/internal/schema"
)

// Classifier matches records against a set of catalog entries.
type Classifier struct {
	entries []Entry
	addrs   AddressValidator
}

// NewClassifier builds a classifier over entries, in the order given. A nil
// entries slice selects the full catalog; a nil validator selects strkey.
func NewClassifier(entries []Entry, addrs AddressValidator) *Classifier {
	if entries == nil {
		entries = catalog
	}
	if addrs == nil {
		addrs = defaultValidator
	}
	return &Classifier{entries: append([]Entry(nil), entries...), addrs: addrs}
}

// Entries returns the entries the classifier walks.
func (c *Classifier) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Classify returns the event built from the first entry src matches.
func (c *Classifier) Classify(src schema.Source) (Event, bool) {
	for _, entry := range c.entries {
		fields, ok := schema.TryExtract(src, entry.Schema)
		if ok && muxedPayloadOK(entry, fields) {
			return newEvent(entry, fields, c.addrs), true
		}
	}
	return nil, false
}

// ClassifyStrict is Classify reporting a SchemaMismatchError when no entry
// matches.
func (c *Classifier) ClassifyStrict(src schema.Source) (Event, error) {
	if ev, ok := c.Classify(src); ok {
		return ev, nil
	}
	id := ""
	if src != nil {
		id = src.ID()
	}
	return nil, &errs.SchemaMismatchError{Schema: "token catalog", RecordID: id, Reason: "no token event layout matched"}
}

// As extracts src with one specific entry.
func (c *Classifier) As(src schema.Source, entry Entry) (Event, error) {
	fields, err := schema.Extract(src, entry.Schema)
	if err != nil {
		return nil, err
	}
	if !muxedPayloadOK(entry, fields) {
		return nil, &errs.SchemaMismatchError{Schema: entry.Key(), RecordID: fields.RecordID(), Reason: "value is not a map with an integer amount"}
	}
	return newEvent(entry, fields, c.addrs), nil
}

// muxedPayloadOK checks what the map field type alone cannot: a muxed entry
// only accepts a map carrying an integer amount.
func muxedPayloadOK(entry Entry, fields schema.Extracted) bool {
	if !entry.Muxed {
		return true
	}
	v, ok := fields.Value(FieldAmount)
	return ok && IsMuxedData(v)
}

var defaultClassifier = NewClassifier(nil, nil)

// Classify matches src against the full catalog.
func Classify(src schema.Source) (Event, bool) { return defaultClassifier.Classify(src) }

// ClassifyStrict matches src against the full catalog, failing on no match.
func ClassifyStrict(src schema.Source) (Event, error) { return defaultClassifier.ClassifyStrict(src) }
