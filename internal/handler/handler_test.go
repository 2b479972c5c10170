package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet_constitution/internal/middleware"
	"pet_constitution/internal/model"
	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- stubs -------------------------------------------------------------------

type stubAuth struct {
	registerErr error
	loginErr    error
	meErr       error
}

func (s *stubAuth) Register(_ context.Context, email, _ string, name *string) (*model.User, string, error) {
	if s.registerErr != nil {
		return nil, "", s.registerErr
	}
	return &model.User{ID: 1, Email: email, Name: name, PasswordHash: "hash"}, "token-1", nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (*model.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &model.User{ID: 1, Email: email, IsAdmin: true, PasswordHash: "hash"}, "token-1", nil
}

func (s *stubAuth) VerifyToken(token string) (*model.Identity, error) {
	if token == "good" {
		return &model.Identity{UserID: 1, Email: "a@example.com"}, nil
	}
	return nil, service.ErrForbiddenToken
}

func (s *stubAuth) Me(_ context.Context, userID int64) (*model.PublicUser, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.PublicUser{ID: userID, Email: "a@example.com", CreatedAt: &created}, nil
}

func (s *stubAuth) EnsureAdmin(context.Context, string, string, *string) (service.AdminSeedOutcome, error) {
	return service.AdminAlreadyExists, nil
}

type stubResults struct {
	lastIdentity *model.Identity
	lastReq      model.CreateResultRequest
	lastID       int64
	err          error
}

func (s *stubResults) Create(_ context.Context, identity *model.Identity, req model.CreateResultRequest) (*model.CreateResultResponse, error) {
	s.lastIdentity, s.lastReq = identity, req
	if s.err != nil {
		return nil, s.err
	}
	return &model.CreateResultResponse{ResultID: 10, IsLoggedIn: identity != nil}, nil
}

func (s *stubResults) ListMine(context.Context, int64) ([]model.Result, error) {
	return []model.Result{}, s.err
}

func (s *stubResults) Get(_ context.Context, identity *model.Identity, id int64) (*model.Result, error) {
	s.lastIdentity, s.lastID = identity, id
	if s.err != nil {
		return nil, s.err
	}
	return &model.Result{ID: id, PetName: "Coco", Constitution: "soyang"}, nil
}

func (s *stubResults) Delete(_ context.Context, _, id int64) error {
	s.lastID = id
	return s.err
}

type stubConsultations struct {
	lastStatus string
	err        error
}

func (s *stubConsultations) Create(context.Context, *model.Identity, model.CreateConsultationRequest) (*model.Consultation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Consultation{ID: 5}, nil
}

func (s *stubConsultations) ListMine(context.Context, int64) ([]model.Consultation, error) {
	return []model.Consultation{}, s.err
}

func (s *stubConsultations) ListAll(context.Context) ([]model.Consultation, error) {
	return []model.Consultation{{ID: 5, Status: model.StatusPending}}, s.err
}

func (s *stubConsultations) UpdateStatus(_ context.Context, _ int64, status string) error {
	s.lastStatus = status
	return s.err
}

type stubEmail struct{ err error }

func (s stubEmail) SendMealPlan(context.Context, model.SendMealPlanRequest) error { return s.err }

// --- helpers -----------------------------------------------------------------

func newRouter(auth *stubAuth, results *stubResults, consultations *stubConsultations, email stubEmail) *gin.Engine {
	log := zerolog.Nop()
	r := gin.New()
	api := r.Group("/api")
	authMW := middleware.JWTAuthMiddleware(auth)
	optionalMW := middleware.OptionalJWTAuthMiddleware(auth)

	NewAuthHandler(auth, log).RegisterAuthRoutes(api, authMW)
	NewResultHandler(results, log).RegisterResultRoutes(api, authMW, optionalMW)
	NewConsultationHandler(consultations, log).RegisterConsultationRoutes(api, authMW, optionalMW)
	NewEmailHandler(email, log).RegisterEmailRoutes(api)
	return r
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, contentType, body, token string) (int, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// --- tests -------------------------------------------------------------------

func TestRegister_Created(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/auth/register", "application/json", `{"email":"a@example.com","password":"pw","name":"Kim"}`, "")
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"token":"token-1","user":{"id":1,"email":"a@example.com","name":"Kim","is_admin":false}}`, string(resp.Data))
	assert.NotContains(t, string(resp.Data), "hash")
}

func TestRegister_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"validation": {service.ErrMissingCredentials, http.StatusBadRequest},
		"conflict":   {service.ErrEmailTaken, http.StatusBadRequest},
		"unexpected": {errors.New("pool closed"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newRouter(&stubAuth{registerErr: tc.err}, &stubResults{}, &stubConsultations{}, stubEmail{})
			code, resp := do(t, r, http.MethodPost, "/api/auth/register", "application/json", `{}`, "")
			assert.Equal(t, tc.status, code)
			assert.False(t, resp.Success)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, internalErrorMessage, resp.Message)
			} else {
				assert.Equal(t, tc.err.Error(), resp.Message)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := newRouter(&stubAuth{loginErr: service.ErrInvalidCredentials}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/auth/login", "application/json", `{"email":"a@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), resp.Message)
}

func TestLogin_AcceptsTextBody(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/auth/login", "text/plain", `{"email":"a@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"token":"token-1","user":{"id":1,"email":"a@example.com","name":null,"is_admin":true}}`, string(resp.Data))
}

func TestLogin_MalformedBody(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/auth/login", "application/json", `{"email":`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)
}

func TestMe(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, _ := do(t, r, http.MethodGet, "/api/auth/me", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodGet, "/api/auth/me", "", "", "expired")
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := do(t, r, http.MethodGet, "/api/auth/me", "", "", "good")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"user":{"id":1,"email":"a@example.com","name":null,"is_admin":false,"created_at":"2025-01-01T00:00:00Z"}}`, string(resp.Data))

	gone := newRouter(&stubAuth{meErr: service.ErrUserNotFound}, &stubResults{}, &stubConsultations{}, stubEmail{})
	code, _ = do(t, gone, http.MethodGet, "/api/auth/me", "", "", "good")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateResult_OwnedVsTemporary(t *testing.T) {
	results := &stubResults{}
	r := newRouter(&stubAuth{}, results, &stubConsultations{}, stubEmail{})
	body := `{"petInfo":{"name":"Coco","age":3},"answers":["a"],"constitution":"soyang"}`

	code, resp := do(t, r, http.MethodPost, "/api/results", "application/json", body, "")
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "result saved temporarily", resp.Message)
	assert.JSONEq(t, `{"resultId":10,"isLoggedIn":false}`, string(resp.Data))
	assert.Nil(t, results.lastIdentity)

	// An invalid token on an optional route is treated as anonymous.
	code, resp = do(t, r, http.MethodPost, "/api/results", "application/json", body, "bogus")
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "result saved temporarily", resp.Message)

	code, resp = do(t, r, http.MethodPost, "/api/results", "application/json", body, "good")
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "result saved", resp.Message)
	require.NotNil(t, results.lastIdentity)
	assert.Equal(t, "3", results.lastReq.PetInfo.Age.StringOr(""))
}

func TestGetResult_IDHandling(t *testing.T) {
	results := &stubResults{}
	r := newRouter(&stubAuth{}, results, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodGet, "/api/results/12", "", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(12), results.lastID)
	assert.JSONEq(t, `{"result":{"id":12,"pet_name":"Coco","pet_age":"","pet_weight":"","pet_symptoms":"","answers":null,"constitution":"soyang","created_at":"0001-01-01T00:00:00Z"}}`, string(resp.Data))

	code, _ = do(t, r, http.MethodGet, "/api/results/abc", "", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	results.err = service.ErrResultNotFound
	code, resp = do(t, r, http.MethodGet, "/api/results/12", "", "", "good")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, service.ErrResultNotFound.Error(), resp.Message)
}

func TestDeleteResult(t *testing.T) {
	results := &stubResults{}
	r := newRouter(&stubAuth{}, results, &stubConsultations{}, stubEmail{})

	code, _ := do(t, r, http.MethodDelete, "/api/results/3", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := do(t, r, http.MethodDelete, "/api/results/3", "", "", "good")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(3), results.lastID)

	results.err = service.ErrResultNotFound
	code, _ = do(t, r, http.MethodDelete, "/api/results/3", "", "", "good")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestConsultationRoutes(t *testing.T) {
	consultations := &stubConsultations{}
	r := newRouter(&stubAuth{}, &stubResults{}, consultations, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/consultations", "application/json",
		`{"name":"Kim","phone":"010-1234-5678","preferredDate":"2099-01-01","content":"cough"}`, "")
	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"consultationId":5}`, string(resp.Data))

	code, _ = do(t, r, http.MethodGet, "/api/consultations/my-consultations", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = do(t, r, http.MethodGet, "/api/consultations", "", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(resp.Data), "updated_at")

	code, _ = do(t, r, http.MethodPut, "/api/consultations/5/status", "application/json", `{"status":"confirmed"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirmed", consultations.lastStatus)

	consultations.err = service.ErrInvalidStatus
	code, resp = do(t, r, http.MethodPut, "/api/consultations/5/status", "application/json", `{"status":"bogus"}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrInvalidStatus.Error(), resp.Message)
}

func TestSendMealPlan_DispatchError(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{},
		stubEmail{err: &service.DispatchError{Err: errors.New("535 authentication failed")}})

	code, resp := do(t, r, http.MethodPost, "/api/email/send-meal-plan", "application/json",
		`{"email":"a@example.com","constitution":"soyang","petName":"Coco"}`, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "535 authentication failed", resp.Error)
}

func TestSendMealPlan_Success(t *testing.T) {
	r := newRouter(&stubAuth{}, &stubResults{}, &stubConsultations{}, stubEmail{})

	code, resp := do(t, r, http.MethodPost, "/api/email/send-meal-plan", "application/json",
		`{"email":"a@example.com","constitution":"soyang","petName":"Coco"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}
