package models

import "time"

// ImportRequest is the body of the upstream import endpoint. Errors travel in
// Function because they are identified by a 4-byte selector too.
type ImportRequest struct {
	Function []string `json:"function"`
	Event    []string `json:"event"`
}

func NewImportRequest() ImportRequest {
	return ImportRequest{Function: []string{}, Event: []string{}}
}

func (r ImportRequest) Empty() bool {
	return len(r.Function) == 0 && len(r.Event) == 0
}

// ImportDetails partitions the submitted signatures of one category.
type ImportDetails struct {
	Imported   map[string]string `json:"imported"`
	Duplicated map[string]string `json:"duplicated"`
	Invalid    []string          `json:"invalid"`
}

type ImportResult struct {
	Function ImportDetails `json:"function"`
	Event    ImportDetails `json:"event"`
}

type ImportResponse struct {
	Ok     bool         `json:"ok"`
	Error  string       `json:"error,omitempty"`
	Result ImportResult `json:"result"`
}

// ImportRecord is one stored import submission.
type ImportRecord struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	CreatedAt           time.Time `json:"created_at" gorm:"index"`
	RequestID           string    `json:"request_id" gorm:"index"`
	Source              string    `json:"source"`
	FunctionsSubmitted  int       `json:"functions_submitted"`
	EventsSubmitted     int       `json:"events_submitted"`
	FunctionsImported   int       `json:"functions_imported"`
	EventsImported      int       `json:"events_imported"`
	FunctionsDuplicated int       `json:"functions_duplicated"`
	EventsDuplicated    int       `json:"events_duplicated"`
	FunctionsInvalid    int       `json:"functions_invalid"`
	EventsInvalid       int       `json:"events_invalid"`
	Message             string    `json:"message"`
}
