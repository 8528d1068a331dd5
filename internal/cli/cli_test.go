package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/raidroster/internal/api"
	"github.com/mcoot/raidroster/internal/factory"
	"github.com/mcoot/raidroster/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		Auth:             s.app.AuthService,
		Catalogue:        s.app.Catalogue,
		EventController:  s.app.EventController,
		RosterController: s.app.RosterController,
		HubManager:       s.app.HubManager,
	}))
	s.T().Setenv("RAIDROSTER_TOKEN_FILE", s.T().TempDir()+"/token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
	_ = s.app.Close()
}

func (s *CLISuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.server.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) runJSON(v any, args ...string) {
	out, err := s.run(append([]string{"--output", "json"}, args...)...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), v), out)
}

func (s *CLISuite) createEvent(id, name string) {
	s.app.MockRandom.QueueString(id)
	_, err := s.run("event", "create", name, "--at", "2024-01-05T20:00:00Z")
	s.Require().NoError(err)
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err)
	s.Equal("Status: ok\n", out)
}

func (s *CLISuite) TestTemplates() {
	var result Templates
	s.runJSON(&result, "templates")
	s.Equal([]string{"Cloudrest", "Kyne's Aegis", "Sunspire"}, result.Names)

	_, err := s.run("templates", "dungeon")
	s.ErrorContains(err, "UNKNOWN_EVENT_TYPE")
}

func (s *CLISuite) TestEventCreateText() {
	s.app.MockRandom.QueueString("SUN001")

	out, err := s.run("event", "create", "Sunspire", "--at", "2024-01-05T20:00:00Z")
	s.Require().NoError(err)
	s.Contains(out, "Event: SUN001")
	s.Contains(out, "Template: trial / Sunspire")
	s.Contains(out, "Event ID SUN001 | Happening on 2024-01-05 20:00 UTC")
	s.Contains(out, "leader")
}

func (s *CLISuite) TestEventCreateRejectsBadTime() {
	_, err := s.run("event", "create", "Sunspire", "--at", "tomorrow")
	s.ErrorContains(err, "RFC 3339")
}

func (s *CLISuite) TestSignalAndRoster() {
	s.createEvent("KYN001", "Kyne's Aegis")

	var result SignalResult
	s.runJSON(&result, "signal", "KYN001", "alice", "tank0")
	s.True(result.Changed)
	s.Require().NotNil(result.Document)

	s.runJSON(&result, "signal", "KYN001", "alice", "--emoji", "\U0001f451")
	s.True(result.Changed)

	out, err := s.run("signal", "KYN001", "bob", "clear")
	s.Require().NoError(err)
	s.Equal("No change\n", out)

	var roster Roster
	s.runJSON(&roster, "roster", "show", "KYN001")
	s.Equal("alice", roster.Leader)
	s.Equal([]string{"alice"}, roster.Roles["tank0"])

	out, err = s.run("roster", "show", "KYN001")
	s.Require().NoError(err)
	s.Contains(out, "leader: alice")
	s.Contains(out, "tank0: alice")
}

func (s *CLISuite) TestSignalArgumentValidation() {
	_, err := s.run("signal", "KYN001", "alice")
	s.ErrorContains(err, "exactly one")

	_, err = s.run("signal", "KYN001", "alice", "fill", "--emoji", "x")
	s.ErrorContains(err, "exactly one")
}

func (s *CLISuite) TestActions() {
	s.createEvent("KYN001", "Kyne's Aegis")

	var actions []Action
	s.runJSON(&actions, "actions", "KYN001")
	s.Len(actions, 6)
	s.Equal("leader", actions[0].Action)
}

func (s *CLISuite) TestAttachAndClose() {
	s.createEvent("CLD001", "Cloudrest")
	_, err := s.run("signal", "CLD001", "alice", "dps0")
	s.Require().NoError(err)

	var event Event
	s.runJSON(&event, "event", "attach", "CLD001", "chan-1", "msg-1")
	s.Equal("msg-1", event.MessageID)

	var closed CloseResult
	s.runJSON(&closed, "event", "close", "CLD001")
	s.Equal("closed", closed.Event.State)
	s.Equal([]string{"alice"}, closed.Participants)

	_, err = s.run("signal", "CLD001", "bob", "fill")
	s.ErrorContains(err, "EVENT_CLOSED")
}

func (s *CLISuite) TestEventNotFound() {
	_, err := s.run("event", "get", "NOPE00")
	s.ErrorContains(err, "EVENT_NOT_FOUND")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.Status)
}

func (s *CLISuite) TestStreamUnknownEvent() {
	_, err := s.run("stream", "NOPE00")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.Status)
}

func (s *CLISuite) TestClientPlainErrorBody() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").Get(context.Background(), "/api/v1/health", nil)

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadGateway, apiErr.Status)
	s.Equal("HTTP 502: upstream down", apiErr.Error())
}

func (s *CLISuite) TestHashToken() {
	out, err := s.run("hash-token", "secret")
	s.Require().NoError(err)
	s.Contains(out, "$2a$")
}
