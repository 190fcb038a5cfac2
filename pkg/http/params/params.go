// Package params decodes request inputs shared by the HTTP handlers.
package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const maxBodyBytes = 1 << 20

// FlexInt accepts either a JSON number or a string holding an integer, so
// `"difficulty": 2` and `"difficulty": "2"` decode the same way. Values
// outside the int32 range are rejected.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		raw = n.String()
	}
	// ids, categories and difficulties all live in int32 columns
	i, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("integer out of range: %s", raw)
	}
	if err != nil {
		return fmt.Errorf("not an integer: %q", raw)
	}
	*f = FlexInt(i)
	return nil
}

// Ptr returns f as *int, or nil when f is nil.
func (f *FlexInt) Ptr() *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// DecodeJSON reads a JSON body into v. Any decoding failure, including an
// empty body, is reported as trivia.ErrInvalidInput.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty body: %w", trivia.ErrInvalidInput)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty body: %w", trivia.ErrInvalidInput)
		}
		return fmt.Errorf("decode body: %w: %v", trivia.ErrInvalidInput, err)
	}
	return nil
}

// Page reads the 1-based ?page= parameter. Missing or non-numeric values
// fall back to 1; numbers below 1 are rejected.
func Page(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1, nil
	}
	if page < 1 {
		return 0, fmt.Errorf("page must be >= 1, got %d: %w", page, trivia.ErrInvalidInput)
	}
	return page, nil
}

// PathInt parses the named path wildcard as an integer id. Ids outside the
// int32 range of the id columns cannot name a row and are ErrNotFound.
func PathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	n, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%s %s: %w", name, raw, trivia.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", name, raw, trivia.ErrInvalidInput)
	}
	return int(n), nil
}
