package signature

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"signature-explorer/models"
)

const commentPrefix = "//"

// BuildImportRequest turns pasted text into an import request. A bracketed JSON
// array is read as an ABI; anything else, including text that is not valid JSON,
// is read line by line. It never fails: unusable input yields empty lists and the
// upstream import endpoint does the signature-level validation.
func BuildImportRequest(raw string) models.ImportRequest {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if req, err := fromABI(trimmed); err == nil {
			return req
		}
	}
	return fromLines(trimmed)
}

// fromABI collects canonical signatures in document order, functions first and
// then errors. Each fragment is parsed on its own so a rejected one is skipped
// without losing the rest.
func fromABI(doc string) (models.ImportRequest, error) {
	var fragments []json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fragments); err != nil {
		return models.ImportRequest{}, err
	}

	req := models.NewImportRequest()
	var errs []string
	for _, fragment := range fragments {
		parsed, ok := parseFragment(fragment)
		if !ok {
			continue
		}
		for _, method := range parsed.Methods {
			req.Function = append(req.Function, method.Sig)
		}
		for _, e := range parsed.Errors {
			errs = append(errs, e.Sig)
		}
		for _, event := range parsed.Events {
			req.Event = append(req.Event, event.Sig)
		}
	}
	req.Function = append(req.Function, errs...)
	return req, nil
}

// parseFragment reads a single ABI entry. A missing type means function.
func parseFragment(fragment json.RawMessage) (abi.ABI, bool) {
	if !gjson.ValidBytes(fragment) || !gjson.ParseBytes(fragment).IsObject() {
		return abi.ABI{}, false
	}
	if !gjson.GetBytes(fragment, "type").Exists() {
		withType, err := sjson.SetBytes(fragment, "type", "function")
		if err != nil {
			return abi.ABI{}, false
		}
		fragment = withType
	}

	parsed, err := abi.JSON(strings.NewReader("[" + string(fragment) + "]"))
	if err != nil {
		return abi.ABI{}, false
	}
	return parsed, true
}

func fromLines(text string) models.ImportRequest {
	req := models.NewImportRequest()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		switch {
		case strings.HasPrefix(line, "function "):
			req.Function = append(req.Function, strings.TrimPrefix(line, "function "))
		case strings.HasPrefix(line, "error "):
			req.Function = append(req.Function, strings.TrimPrefix(line, "error "))
		case strings.HasPrefix(line, "event "):
			req.Event = append(req.Event, strings.TrimPrefix(line, "event "))
		case strings.Contains(line, "(") && strings.Contains(line, ")"):
			if strings.Contains(strings.ToLower(line), "event") {
				req.Event = append(req.Event, line)
			} else {
				req.Function = append(req.Function, line)
			}
		}
	}
	return req
}
