package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodySize is the request body limit applied when none is configured.
const DefaultMaxBodySize int64 = 1 << 20

// Body decoding errors.
var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrInvalidBody  = errors.New("request body is not valid JSON")
)

// DecodeJSON reads at most maxBytes from the request body and decodes it
// into dst. It returns ErrBodyTooLarge when the limit is exceeded and
// ErrInvalidBody (wrapped) for empty or malformed JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
