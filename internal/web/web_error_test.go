package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownEventShowsNotFoundPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/events/NOPE00")
	require.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "Not Found", doc.Find("h1").First().Text())
	assert.Equal(t, 1, doc.Find(`a[href="/"]`).Length())
}

func TestUnknownStreamIsNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/events/NOPE00/stream")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/lobby/ABC")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestResponsesCarryRequestID(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
