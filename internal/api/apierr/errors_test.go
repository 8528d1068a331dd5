package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/raidroster/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", model.ErrEventNotFound, http.StatusNotFound, CodeEventNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", model.ErrEventNotFound), http.StatusNotFound, CodeEventNotFound},
		{"closed", model.ErrEventClosed, http.StatusConflict, CodeEventClosed},
		{"unknown type", model.ErrUnknownEventType, http.StatusUnprocessableEntity, CodeUnknownEventType},
		{"unknown template", model.ErrTemplateNotFound, http.StatusUnprocessableEntity, CodeTemplateNotFound},
		{"unknown action", model.ErrUnknownAction, http.StatusBadRequest, CodeUnknownAction},
		{"unauthorized", model.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"invalid request", NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, Status(tt.err))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("dial tcp 10.0.0.1:6379: refused"))

	assert.NotContains(t, rr.Body.String(), "10.0.0.1")
}
