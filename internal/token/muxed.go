package token

import "tokenscope/internal/scval"

// IsMuxedData reports whether v is the map payload introduced with muxed
// transfers: a map with an integer amount, with or without a muxed id. Bare
// integers and vectors are not muxed data.
func IsMuxedData(v scval.Value) bool {
	if v.Kind() != scval.KindMap {
		return false
	}
	amount, ok := v.Field(FieldAmount)
	return ok && amount.Kind().IsInteger()
}
