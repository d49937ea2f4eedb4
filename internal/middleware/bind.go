package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Neb-Ur/service-app-backend/pkg/e"
	"github.com/Neb-Ur/service-app-backend/pkg/validator"
)

const maxBodyBytes = 1 << 20

// DecodeJSON strictly decodes one JSON object from the body into target and
// validates it. Every failure wraps e.ErrInvalidInput.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON: %w", e.ErrInvalidInput)
	}
	// no trailing data after the first object
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON: %w", e.ErrInvalidInput)
	}

	if err := validator.ValidateStruct(target); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), e.ErrInvalidInput)
	}
	return nil
}
