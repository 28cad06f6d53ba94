package signature

import (
	"fmt"
	"sort"

	"signature-explorer/models"
)

type Status string

const (
	StatusImported   Status = "imported"
	StatusDuplicated Status = "duplicated"
	StatusInvalid    Status = "invalid"
)

// Summary tallies the six partitions of an import result.
type Summary struct {
	FunctionsImported   int `json:"functions_imported"`
	EventsImported      int `json:"events_imported"`
	FunctionsDuplicated int `json:"functions_duplicated"`
	EventsDuplicated    int `json:"events_duplicated"`
	FunctionsInvalid    int `json:"functions_invalid"`
	EventsInvalid       int `json:"events_invalid"`
}

func Summarize(result models.ImportResult) Summary {
	return Summary{
		FunctionsImported:   len(result.Function.Imported),
		EventsImported:      len(result.Event.Imported),
		FunctionsDuplicated: len(result.Function.Duplicated),
		EventsDuplicated:    len(result.Event.Duplicated),
		FunctionsInvalid:    len(result.Function.Invalid),
		EventsInvalid:       len(result.Event.Invalid),
	}
}

func (s Summary) Invalid() int {
	return s.FunctionsInvalid + s.EventsInvalid
}

func (s Summary) Message() string {
	msg := fmt.Sprintf("Imported %d functions and %d events! Skipped %d functions and %d events.",
		s.FunctionsImported, s.EventsImported, s.FunctionsDuplicated, s.EventsDuplicated)
	if n := s.Invalid(); n > 0 {
		msg += fmt.Sprintf(" %d signatures were invalid.", n)
	}
	return msg
}

// Record builds the history row for a submitted request and its summary.
func (s Summary) Record(source, requestID string, req models.ImportRequest) models.ImportRecord {
	return models.ImportRecord{
		RequestID:           requestID,
		Source:              source,
		FunctionsSubmitted:  len(req.Function),
		EventsSubmitted:     len(req.Event),
		FunctionsImported:   s.FunctionsImported,
		EventsImported:      s.EventsImported,
		FunctionsDuplicated: s.FunctionsDuplicated,
		EventsDuplicated:    s.EventsDuplicated,
		FunctionsInvalid:    s.FunctionsInvalid,
		EventsInvalid:       s.EventsInvalid,
		Message:             s.Message(),
	}
}

// Row is one line of the import result table.
type Row struct {
	Signature string `json:"signature"`
	Hash      string `json:"hash"`
	Type      string `json:"type"`
	Status    Status `json:"status"`
}

// Rows lists imported, then duplicated, then invalid signatures; functions precede
// events within a status and map entries are sorted by signature.
func Rows(result models.ImportResult) []Row {
	rows := []Row{}
	rows = appendMapRows(rows, result.Function.Imported, models.TypeFunction, StatusImported)
	rows = appendMapRows(rows, result.Event.Imported, models.TypeEvent, StatusImported)
	rows = appendMapRows(rows, result.Function.Duplicated, models.TypeFunction, StatusDuplicated)
	rows = appendMapRows(rows, result.Event.Duplicated, models.TypeEvent, StatusDuplicated)
	for _, sig := range result.Function.Invalid {
		rows = append(rows, Row{Signature: sig, Type: models.TypeFunction, Status: StatusInvalid})
	}
	for _, sig := range result.Event.Invalid {
		rows = append(rows, Row{Signature: sig, Type: models.TypeEvent, Status: StatusInvalid})
	}
	return rows
}

func appendMapRows(rows []Row, entries map[string]string, kind string, status Status) []Row {
	sigs := make([]string, 0, len(entries))
	for sig := range entries {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	for _, sig := range sigs {
		rows = append(rows, Row{Signature: sig, Hash: entries[sig], Type: kind, Status: status})
	}
	return rows
}
