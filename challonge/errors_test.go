package challonge

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantMsgs []string
	}{
		{
			name:   "ok passes body through",
			status: http.StatusOK,
			body:   `{"tournament":{"id":1}}`,
		},
		{
			name:     "validation failed joins messages",
			status:   http.StatusUnprocessableEntity,
			body:     `{"errors":["Name can't be blank","Url has already been taken"]}`,
			wantErr:  ErrValidationFailed,
			wantMsgs: []string{"Name can't be blank", "Url has already been taken"},
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"errors":["Invalid credentials"]}`,
			wantErr:  ErrUnauthorized,
			wantMsgs: []string{"Invalid credentials"},
		},
		{
			name:    "not found with html body",
			status:  http.StatusNotFound,
			body:    `<html>not found</html>`,
			wantErr: ErrNotFound,
		},
		{
			name:    "unsupported format with empty body",
			status:  http.StatusNotAcceptable,
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"errors":[]}`,
			wantErr:  ErrServerError,
			wantMsgs: []string{},
		},
		{
			name:   "undocumented status passes through",
			status: http.StatusServiceUnavailable,
			body:   `maintenance`,
		},
		{
			name:   "redirect passes through",
			status: http.StatusFound,
			body:   ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := CheckResponse(tt.status, []byte(tt.body))
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, tt.body, string(body))
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, body)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.wantMsgs, apiErr.Messages)
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	_, err := CheckResponse(http.StatusUnprocessableEntity,
		[]byte(`{"errors":["Name can't be blank","Url has already been taken"]}`))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindValidationFailed, apiErr.Kind)
	require.Equal(t, "Name can't be blank ; Url has already been taken", apiErr.Message())
	require.Equal(t, "challonge: validation failed (422): Name can't be blank ; Url has already been taken", apiErr.Error())
}

func TestAPIErrorIsMatchesKindOnly(t *testing.T) {
	err := &APIError{Kind: KindNotFound, StatusCode: http.StatusNotFound}

	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrServerError)
	require.NotErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidArgumentWraps(t *testing.T) {
	err := invalidArgument("bad %s", "thing")

	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Contains(t, err.Error(), "bad thing")

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}
