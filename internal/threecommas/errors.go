package threecommas

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// extractor pulls a display-ready message out of a decoded vendor error
// payload, reporting whether it applied.
type extractor func(fields map[string]json.RawMessage) (string, bool)

// The chain order mirrors the vendor's observed response variance: an
// "errors" array of {msg} entries, then a string "error"/"message" field,
// then an object "error"/"errors" field, then the payload as-is. First
// match wins.
var extractors = []extractor{
	fromErrorsArray,
	fromStringField,
	fromObjectField,
}

// ExtractMessage turns whatever error body the vendor returned into a single
// display-ready string.
func ExtractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return strings.TrimSpace(string(body))
	}
	for _, extract := range extractors {
		if msg, ok := extract(fields); ok {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}

func fromErrorsArray(fields map[string]json.RawMessage) (string, bool) {
	raw, ok := fields["errors"]
	if !ok {
		return "", false
	}
	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return "", false
	}
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.Msg
	}
	return strings.Join(msgs, "; "), true
}

func fromStringField(fields map[string]json.RawMessage) (string, bool) {
	for _, key := range []string{"error", "message"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return "", false
}

func fromObjectField(fields map[string]json.RawMessage) (string, bool) {
	for _, key := range []string{"error", "errors"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err == nil {
			return string(raw), true
		}
	}
	return "", false
}

// VendorError is any failed call to the bot-management API. Exactly one of
// Body (the vendor's raw response) or Err (the local transport fault) is
// set.
type VendorError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *VendorError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("3Commas API error (status %d): %s", e.Status, ExtractMessage(e.Body))
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// Raw is the value surfaced under the "error" key of the failure envelope:
// the vendor body when one exists, otherwise the local error text.
func (e *VendorError) Raw() any {
	if len(e.Body) > 0 {
		var raw json.RawMessage
		if err := json.Unmarshal(e.Body, &raw); err == nil {
			return raw
		}
		return string(e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return nil
}
