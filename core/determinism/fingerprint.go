package determinism

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// quoteNamespace scopes every fingerprint so that IDs never collide with
// UUIDs minted elsewhere.
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("translation-quote/v1"))

// Fingerprint returns a stable UUID (v5) of v's JSON encoding. Struct fields
// encode in declaration order and map keys sorted, so equal inputs always
// produce equal fingerprints.
func Fingerprint(v any) (uuid.UUID, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(quoteNamespace, data), nil
}

// SortedKeys returns map keys in ascending order.
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
