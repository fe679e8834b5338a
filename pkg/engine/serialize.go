package engine

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"perfscore/pkg/schema"
)

// serializedResolver is the JSON-serializable representation of Resolver.
// The mapping travels as built; nothing is re-scored on the receiving end.
type serializedResolver struct {
	SalesNames []string           `json:"salesNames"`
	Mapping    schema.NameMapping `json:"mapping"`
	Stats      ResolverStats      `json:"stats"`
}

// SerializeResolver converts a Resolver to a JSON string for transfer
// between WebAssembly workers.
func SerializeResolver(r *Resolver) string {
	sr := serializedResolver{
		Mapping: r.mapping,
		Stats:   r.stats,
	}
	for _, key := range r.salesKeys {
		sr.SalesNames = append(sr.SalesNames, r.displayNames[key])
	}

	data, err := json.Marshal(sr)
	if err != nil {
		return `{"salesNames":[],"mapping":{},"stats":{}}`
	}
	return string(data)
}

// DeserializeResolver reconstructs a Resolver from SerializeResolver output.
func DeserializeResolver(data []byte) (*Resolver, error) {
	var sr serializedResolver
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, eris.Wrap(err, "failed to deserialize name mapping")
	}

	// Rebuild sales identities only; monitoring entries come from the snapshot.
	r := BuildResolver(sr.SalesNames)
	for name, key := range sr.Mapping {
		r.mapping[name] = key
	}
	r.stats = sr.Stats
	if r.stats.ByTier == nil {
		r.stats.ByTier = make(map[string]int)
	}
	return r, nil
}
