package models

import (
	"encoding/json"
	"strings"
)

type StatsCount struct {
	Function int64 `json:"function"`
	Event    int64 `json:"event"`
	Error    int64 `json:"error"`
	Unknown  int64 `json:"unknown"`
	Total    int64 `json:"total"`
}

type StatsMetadata struct {
	RefreshedAt json.RawMessage `json:"refreshed_at,omitempty"`
}

// Refreshed renders refreshed_at whether the upstream sent a string or a number.
func (m StatsMetadata) Refreshed() string {
	raw := strings.TrimSpace(string(m.RefreshedAt))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(m.RefreshedAt, &s); err == nil {
		return s
	}
	return raw
}

type Stats struct {
	Count    StatsCount    `json:"count"`
	Metadata StatsMetadata `json:"metadata"`
}

type StatsResponse struct {
	Ok     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Result Stats  `json:"result"`
}
