package sendpasswordresettoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "cvmatch/internal/core/domain/common"
	ratelimiter "cvmatch/internal/core/domain/rate_limiter"
	"cvmatch/internal/core/domain/user"
	service "cvmatch/internal/core/services/send_password_reset_token"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	token user.RawResetToken
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Token = s.token
	return result, nil
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "success does not depend on account existence",
			body:           `{"email": "unknown@test.test"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "rate limit exceeded",
			body:           `{"email": "test@test.test"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub, false)

			request := httptest.NewRequest(
				http.MethodPost,
				"/auth/forgot-password",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			require.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

func TestSuccessBodyIsIdenticalForAnyEmail(t *testing.T) {
	bodies := make(map[string]bool)
	for _, email := range []string{"known@test.test", "unknown@test.test"} {
		stub := &stubService{}
		handler := New(stub, false)

		request := httptest.NewRequest(
			http.MethodPost,
			"/auth/forgot-password",
			strings.NewReader(`{"email": "`+email+`"}`),
		)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		bodies[recorder.Body.String()] = true
	}
	require.Len(t, bodies, 1)
}

func TestEmailIsNormalized(t *testing.T) {
	stub := &stubService{}
	handler := New(stub, false)

	request := httptest.NewRequest(
		http.MethodPost,
		"/auth/forgot-password",
		strings.NewReader(`{"email": "Test@Test.Test"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	require.Equal(t, c.Email("test@test.test"), stub.input.Email)
}

func TestRawTokenExposedOnlyInTestMode(t *testing.T) {
	for _, isTestMode := range []bool{true, false} {
		stub := &stubService{token: user.RawResetToken("raw-token")}
		handler := New(stub, isTestMode)

		request := httptest.NewRequest(
			http.MethodPost,
			"/auth/forgot-password",
			strings.NewReader(`{"email": "test@test.test"}`),
		)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		header := recorder.Header().Get("x-test-password-reset-token")
		if isTestMode {
			require.Equal(t, "raw-token", header)
		} else {
			require.Equal(t, "", header)
		}
	}
}
