package rest

import (
	"encoding/json"
	"net/http"

	"github.com/authkit/authkit-server/internal/apierrors"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	apiErr := apierrors.From(err)
	writeJSON(w, apiErr.HTTPStatus, errorResponse{Error: apiErr.Kind, Message: apiErr.Message})
}

// decode reads a JSON body into v. Malformed bodies are validation errors.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierrors.Validation("invalid request body")
	}
	return nil
}
