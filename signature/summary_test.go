package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-explorer/models"
)

func sampleResult() models.ImportResult {
	return models.ImportResult{
		Function: models.ImportDetails{
			Imported: map[string]string{
				"transferFrom(address,address,uint256)": "0x23b872dd",
				"transfer(address,uint256)":             "0xa9059cbb",
			},
			Duplicated: map[string]string{"approve(address,uint256)": "0x095ea7b3"},
			Invalid:    []string{"bad("},
		},
		Event: models.ImportDetails{
			Imported:   map[string]string{},
			Duplicated: map[string]string{"Transfer(address,address,uint256)": "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResult())

	assert.Equal(t, Summary{
		FunctionsImported:   2,
		EventsImported:      0,
		FunctionsDuplicated: 1,
		EventsDuplicated:    1,
		FunctionsInvalid:    1,
		EventsInvalid:       0,
	}, s)
	assert.Equal(t, 1, s.Invalid())
	assert.Equal(t, "Imported 2 functions and 0 events! Skipped 1 functions and 1 events. 1 signatures were invalid.", s.Message())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(models.ImportResult{})
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, "Imported 0 functions and 0 events! Skipped 0 functions and 0 events.", s.Message())
}

func TestSummaryRecord(t *testing.T) {
	req := models.ImportRequest{Function: []string{"a()", "b()", "bad("}, Event: []string{"E()"}}
	rec := Summarize(sampleResult()).Record("web", "req-1", req)

	assert.Equal(t, "web", rec.Source)
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, 3, rec.FunctionsSubmitted)
	assert.Equal(t, 1, rec.EventsSubmitted)
	assert.Equal(t, 2, rec.FunctionsImported)
	assert.Equal(t, 1, rec.FunctionsInvalid)
	assert.Contains(t, rec.Message, "Imported 2 functions")
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())
	require.Len(t, rows, 5)

	assert.Equal(t, Row{Signature: "transfer(address,uint256)", Hash: "0xa9059cbb", Type: "function", Status: StatusImported}, rows[0])
	assert.Equal(t, "transferFrom(address,address,uint256)", rows[1].Signature)
	assert.Equal(t, StatusDuplicated, rows[2].Status)
	assert.Equal(t, "function", rows[2].Type)
	assert.Equal(t, StatusDuplicated, rows[3].Status)
	assert.Equal(t, "event", rows[3].Type)
	assert.Equal(t, Row{Signature: "bad(", Type: "function", Status: StatusInvalid}, rows[4])
}
