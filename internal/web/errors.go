package web

import (
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/QuantumGhost/folio/internal/jsontree"
	"github.com/morikuni/failure"
	"net/http"
)

const PathNotFound failure.StringCode = "PathNotFound"

func statusOf(err error) int {
	switch {
	case failure.Is(err, content.NotFound, PathNotFound):
		return http.StatusNotFound
	case failure.Is(err, jsontree.InvalidURL):
		return http.StatusBadRequest
	case failure.Is(err, content.OriginUnavailable, jsontree.OriginUnavailable, jsontree.InvalidPayload):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// messageOf is the text shown to the visitor. Only messages attached on
// purpose are exposed.
func messageOf(err error) string {
	if msg, ok := failure.MessageOf(err); ok && msg != "" {
		return msg
	}
	return http.StatusText(statusOf(err))
}
