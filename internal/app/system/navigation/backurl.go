// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// actionSuffixes are write endpoints a form post must never bounce back to.
var actionSuffixes = []string{"/edit", "/delete", "/confirm"}

// BackURL returns where a form post should land afterwards.
//
// A "return" value (query first, then form) wins when it is a local URL
// under the same top-level section as fallback and is not itself an action
// endpoint. Anything else, including open redirects, yields fallback.
func BackURL(r *http.Request, fallback string) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret == "" {
		return fallback
	}

	path := ret
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if Section(path) != Section(fallback) {
		return fallback
	}
	for _, s := range actionSuffixes {
		if strings.HasSuffix(path, s) {
			return fallback
		}
	}
	return ret
}

// Section is the first path segment: "/danas/3/edit" -> "/danas".
func Section(p string) string {
	p = "/" + strings.TrimLeft(p, "/")
	if i := strings.Index(p[1:], "/"); i >= 0 {
		return p[:i+1]
	}
	return p
}
