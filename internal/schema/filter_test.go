package schema

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tokenscope/internal/scval"
)

func TestToTopicFilterWildcards(t *testing.T) {
	codec := scval.JSONCodec{}

	filter, err := ToTopicFilter(transferSchema, map[string]any{"to": bob}, codec)
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}
	if len(filter) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(filter))
	}

	name, _ := codec.Encode("transfer", scval.KindSymbol)
	to, _ := codec.Encode(bob, scval.KindAddress)
	if filter[0] != name {
		t.Fatalf("slot 0 = %s, want %s", filter[0], name)
	}
	if !filter.IsWildcard(1) || filter[1] != Wildcard {
		t.Fatalf("slot 1 should be a wildcard, got %s", filter[1])
	}
	if filter[2] != to {
		t.Fatalf("slot 2 = %s, want %s", filter[2], to)
	}
}

func TestToTopicFilterEmptyPartial(t *testing.T) {
	filter, err := ToTopicFilter(mintSchema, nil, nil)
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}
	if len(filter) != 2 || !filter.IsWildcard(1) || filter.IsWildcard(0) {
		t.Fatalf("unexpected filter %v", filter)
	}
}

func TestToTopicFilterRejectsUnknownFields(t *testing.T) {
	for _, key := range []string{"amount", "spender"} {
		_, err := ToTopicFilter(transferSchema, map[string]any{key: "x"}, nil)
		if !errors.Is(err, ErrUnknownField) {
			t.Errorf("%s: expected ErrUnknownField, got %v", key, err)
		}
	}
}

func TestToTopicFilterRejectsBadValues(t *testing.T) {
	if _, err := ToTopicFilter(transferSchema, map[string]any{"from": 12}, nil); err == nil {
		t.Fatalf("expected encode error for non-string address")
	}
}

func TestTopicFilterAccepts(t *testing.T) {
	codec := scval.JSONCodec{}
	filter, err := ToTopicFilter(transferSchema, map[string]any{"from": alice}, codec)
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}

	hit := []scval.Value{scval.Symbol("transfer"), scval.Address(alice), scval.Address(bob)}
	miss := []scval.Value{scval.Symbol("transfer"), scval.Address(bob), scval.Address(alice)}
	if !filter.Accepts(hit, codec) {
		t.Fatalf("expected filter to accept %v", hit)
	}
	if filter.Accepts(miss, codec) {
		t.Fatalf("expected filter to reject %v", miss)
	}
	if filter.Accepts(hit[:2], codec) {
		t.Fatalf("length mismatch must be rejected")
	}
}

func TestToTopicFilterShapeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("slot count and wildcard positions follow the schema", prop.ForAll(
		func(withFrom, withTo bool) bool {
			partial := map[string]any{}
			if withFrom {
				partial["from"] = alice
			}
			if withTo {
				partial["to"] = bob
			}
			filter, err := ToTopicFilter(transferSchema, partial, nil)
			if err != nil || len(filter) != transferSchema.TopicCount() {
				return false
			}
			return filter.IsWildcard(1) == !withFrom && filter.IsWildcard(2) == !withTo && !filter.IsWildcard(0)
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
