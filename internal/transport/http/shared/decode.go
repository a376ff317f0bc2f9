package shared

import (
	"encoding/json"
	"errors"
	"net/http"
)

// DecodeJSON parses the request body into dst, rejecting unknown fields
// and trailing content.
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
