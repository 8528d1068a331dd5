package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/raidroster/internal/factory"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/testutil"
	"github.com/mcoot/raidroster/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:           testutil.NopLogger(),
		Catalogue:        app.Catalogue,
		EventController:  app.EventController,
		RosterController: app.RosterController,
		HubManager:       app.HubManager,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createEvent schedules an event with a known id
func (ts *webTestServer) createEvent(id model.EventID, name string) {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(string(id))
	_, err := ts.app.EventController.CreateEvent(ts.t.Context(), model.EventTypeTrial, name,
		time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC))
	require.NoError(ts.t, err)
}

// signal dispatches an action for a user
func (ts *webTestServer) signal(id model.EventID, user model.UserID, action model.Action) {
	ts.t.Helper()
	_, err := ts.app.RosterController.Dispatch(ts.t.Context(), rosterSignal(id, user, action))
	require.NoError(ts.t, err)
}

func rosterSignal(id model.EventID, user model.UserID, action model.Action) roster.Signal {
	return roster.Signal{EventID: id, UserID: user, Action: action}
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// fieldValues returns the list items of the roster field whose heading contains name
func fieldValues(doc *goquery.Document, name string) []string {
	var values []string
	doc.Find("#roster section.field").Each(func(_ int, s *goquery.Selection) {
		if !strings.Contains(s.Find("h2").Text(), name) {
			return
		}
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			values = append(values, li.Text())
		})
	})
	return values
}

func TestHomeListsTemplates(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	var names []string
	doc.Find(`section.templates[data-type="trial"] li`).Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	assert.Equal(t, []string{"Cloudrest", "Kyne's Aegis", "Sunspire"}, names)
}

func TestEventPageRendersRoster(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createEvent("KYN001", "Kyne's Aegis")
	ts.signal("KYN001", "alice", model.RoleAction(model.RoleTank0))
	ts.signal("KYN001", "alice", model.ActionLeader)
	ts.signal("KYN001", "bob", model.ActionFill)

	rr := ts.get("/events/KYN001")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "Kyne's Aegis", strings.TrimSpace(doc.Find("#roster h1.roster-title").Text()))
	assert.Equal(t, []string{"<@alice>"}, fieldValues(doc, "Leader"))
	assert.Equal(t, []string{"<@alice>"}, fieldValues(doc, "Tank (1/2)"))
	assert.Equal(t, []string{"<@bob>"}, fieldValues(doc, "Fill"))
	assert.Equal(t, []string{"None"}, fieldValues(doc, "Healer (0/2)"))
	assert.Contains(t, doc.Find("#roster footer").Text(), "Event ID KYN001 | Happening on 2024-01-05 20:00 UTC")

	// Hidden roles are neither rendered nor offered
	assert.Empty(t, fieldValues(doc, "Off Tank"))
	var actions []string
	doc.Find("ul.actions li").Each(func(_ int, s *goquery.Selection) {
		a, _ := s.Attr("data-action")
		actions = append(actions, a)
	})
	assert.Equal(t, []string{"leader", "dps0", "healer0", "tank0", "fill", "clear"}, actions)
}

func TestEventPageSubscribesWhileOpen(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createEvent("SUN001", "Sunspire")

	doc := parseHTML(ts.get("/events/SUN001").Body)
	connect, ok := doc.Find("#event").Attr("sse-connect")
	require.True(t, ok)
	assert.Equal(t, "/events/SUN001/stream", connect)
	assert.Equal(t, 1, doc.Find(`[sse-swap="roster-html"]`).Length())
	assert.Equal(t, 1, doc.Find("#roster-frame #roster").Length())
}

func TestClosedEventPageDoesNotSubscribe(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createEvent("SUN001", "Sunspire")
	_, err := ts.app.EventController.CloseEvent(t.Context(), "SUN001")
	require.NoError(t, err)

	doc := parseHTML(ts.get("/events/SUN001").Body)
	_, ok := doc.Find("#event").Attr("sse-connect")
	assert.False(t, ok)
	assert.Equal(t, "Registration closed", doc.Find("p.closed").Text())
}

func TestEscapesUserContent(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createEvent("SUN001", "Sunspire")
	ts.signal("SUN001", "<script>alert(1)</script>", model.ActionFill)

	rr := ts.get("/events/SUN001")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
	assert.Equal(t, []string{"<@<script>alert(1)</script>>"}, fieldValues(parseHTML(strings.NewReader(rr.Body.String())), "Fill"))
}
