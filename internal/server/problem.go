package server

import (
	"encoding/json"
	"net/http"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusBadRequest:            {typeURI: "/errors/bad-request", title: "Bad Request"},
	http.StatusUnprocessableEntity:   {typeURI: "/errors/no-suitable-recipes", title: "No Suitable Recipes"},
	http.StatusRequestEntityTooLarge: {typeURI: "/errors/payload-too-large", title: "Payload Too Large"},
	http.StatusInternalServerError:   {typeURI: "/errors/internal-error", title: "Internal Server Error"},
}

func problemFor(r *http.Request, status int, detail string) Problem {
	pt, ok := problemTypes[status]
	if !ok {
		pt.typeURI = "about:blank"
		pt.title = http.StatusText(status)
	}
	return Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}
}

func writeProblemJSON(w http.ResponseWriter, p Problem) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}
