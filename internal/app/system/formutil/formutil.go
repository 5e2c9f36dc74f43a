// Package formutil reads request input for danahub's endpoints.
//
// Every write endpoint accepts either a JSON body or an urlencoded form.
// Handlers call Bind with a function that fills the target from form values;
// JSON bodies are decoded straight into the target.
//
//	var in models.FamilyFields
//	err := formutil.Bind(r, &in, func(f url.Values) {
//		in.FamilyName = f.Get("familyName")
//	})
package formutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrBadRequest marks input that could not be read at all (malformed JSON,
// a non-numeric id). Validation problems are reported as field errors instead.
var ErrBadRequest = errors.New("bad request")

const maxBody = 1 << 20

// IsJSON reports whether the request body is JSON.
func IsJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// WantsJSON reports whether the caller expects a JSON reply rather than a
// redirect: JSON bodies, and anything that does not ask for HTML.
func WantsJSON(r *http.Request) bool {
	if IsJSON(r) {
		return true
	}
	return !strings.Contains(r.Header.Get("Accept"), "text/html")
}

// Bind fills dst from a JSON body, or calls form with the parsed form values.
func Bind(r *http.Request, dst any, form func(url.Values)) error {
	if IsJSON(r) {
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody))
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return nil
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	form(r.PostForm)
	return nil
}

// URLID parses the chi URL parameter name as a positive id.
func URLID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return id, nil
}

// Int64 parses an optional form number. Blank is 0; garbage is -1 so the
// validator rejects it rather than silently treating it as absent.
func Int64(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

// Truthy reports checkbox-style acknowledgements: "yes", "true", "on", "1".
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	}
	return false
}
