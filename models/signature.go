package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	TypeFunction = "function"
	TypeEvent    = "event"
)

// Signature is one text signature the upstream knows for a hash.
type Signature struct {
	Name                string `json:"name"`
	Filtered            bool   `json:"filtered"`
	HasVerifiedContract bool   `json:"hasVerifiedContract"`
}

// HashGroup holds every signature registered under a single selector or topic hash.
type HashGroup struct {
	Hash       string
	Signatures []Signature
}

// SignatureGroups is the upstream's hash-keyed object kept in document order.
// A hash whose bucket is null decodes to a group without signatures.
type SignatureGroups []HashGroup

func (g *SignatureGroups) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("signature groups: invalid json")
	}
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*g = nil
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("signature groups: expected object, got %s", parsed.Type)
	}

	groups := SignatureGroups{}
	var decodeErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		group := HashGroup{Hash: key.String()}
		if value.Type != gjson.Null {
			if err := json.Unmarshal([]byte(value.Raw), &group.Signatures); err != nil {
				decodeErr = fmt.Errorf("signature groups: bucket %s: %w", group.Hash, err)
				return false
			}
		}
		groups = append(groups, group)
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*g = groups
	return nil
}

func (g SignatureGroups) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	for _, group := range g {
		signatures := group.Signatures
		if signatures == nil {
			signatures = []Signature{}
		}
		raw, err := json.Marshal(signatures)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, escapePathKey(group.Hash), raw)
		if err != nil {
			return nil, fmt.Errorf("signature groups: bucket %s: %w", group.Hash, err)
		}
	}
	return out, nil
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)

func escapePathKey(key string) string {
	return pathEscaper.Replace(key)
}

// LookupResult is the result object of both the search and the lookup endpoints.
// A nil category means the upstream did not return it at all.
type LookupResult struct {
	Function SignatureGroups `json:"function,omitempty"`
	Event    SignatureGroups `json:"event,omitempty"`
}

type LookupResponse struct {
	Ok     bool         `json:"ok"`
	Error  string       `json:"error,omitempty"`
	Result LookupResult `json:"result"`
}

// SearchResult is one row of the flattened result table.
type SearchResult struct {
	Name                string `json:"name"`
	HexSignature        string `json:"hex_signature"`
	Filtered            bool   `json:"filtered"`
	Type                string `json:"type"`
	HasVerifiedContract bool   `json:"hasVerifiedContract"`
}

// Flatten turns the hash-keyed grouping into a flat list: function results first,
// then event results, each in the order the upstream returned them.
func (r LookupResult) Flatten() []SearchResult {
	results := []SearchResult{}
	results = appendGroups(results, r.Function, TypeFunction)
	results = appendGroups(results, r.Event, TypeEvent)
	return results
}

func appendGroups(results []SearchResult, groups SignatureGroups, kind string) []SearchResult {
	for _, group := range groups {
		for _, sig := range group.Signatures {
			results = append(results, SearchResult{
				Name:                sig.Name,
				HexSignature:        group.Hash,
				Filtered:            sig.Filtered,
				Type:                kind,
				HasVerifiedContract: sig.HasVerifiedContract,
			})
		}
	}
	return results
}
