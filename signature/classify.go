// Package signature holds the query classification, signature normalization and
// import summary logic shared by the web pages, the JSON API and the CLI.
package signature

import (
	"fmt"
	"regexp"
	"strings"
)

type Kind string

const (
	KindText    Kind = "text"
	KindHash    Kind = "hash"
	KindInvalid Kind = "invalid"
)

type SelectorType string

const (
	SelectorFunction SelectorType = "function"
	SelectorEvent    SelectorType = "event"
)

const (
	functionHexLength = 8
	eventHexLength    = 64
)

const (
	ReasonEmpty     = "Please enter a search query."
	ReasonBadHex    = "Invalid hex format. Use only 0-9 and a-f characters."
	reasonBadLength = "Invalid hash length. Expected 4 bytes (8 hex characters) or 32 bytes (64 hex characters), got %d characters."
)

var hexPattern = regexp.MustCompile(`^[a-fA-F0-9]+$`)

// Query is a classified user query. Hex is set only for KindHash and is always
// 0x-prefixed lowercase with 8 or 64 digits.
type Query struct {
	Kind         Kind
	Term         string
	SelectorType SelectorType
	Hex          string
	Reason       string
}

func (q Query) IsHash() bool    { return q.Kind == KindHash }
func (q Query) IsText() bool    { return q.Kind == KindText }
func (q Query) IsInvalid() bool { return q.Kind == KindInvalid }

// Classify decides whether input is a free-text search term or a selector/topic
// hash. An 8 character string made only of hex digits counts as a selector even
// without the 0x prefix, so "deadbeef" is a hash and "transfer" is text.
func Classify(input string) Query {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return invalid(ReasonEmpty)
	}
	if !looksLikeHash(trimmed) {
		return Query{Kind: KindText, Term: trimmed}
	}

	hex := strings.ToLower(trimmed)
	if !strings.HasPrefix(hex, "0x") {
		hex = "0x" + hex
	}
	digits := hex[2:]
	if !hexPattern.MatchString(digits) {
		return invalid(ReasonBadHex)
	}

	switch len(digits) {
	case functionHexLength:
		return Query{Kind: KindHash, SelectorType: SelectorFunction, Hex: hex}
	case eventHexLength:
		return Query{Kind: KindHash, SelectorType: SelectorEvent, Hex: hex}
	default:
		return invalid(fmt.Sprintf(reasonBadLength, len(digits)))
	}
}

func looksLikeHash(s string) bool {
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		return true
	}
	return len(s) == functionHexLength && hexPattern.MatchString(s)
}

func invalid(reason string) Query {
	return Query{Kind: KindInvalid, Reason: reason}
}
