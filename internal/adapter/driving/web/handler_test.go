package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/formpanel/internal/application"
	"github.com/ericfisherdev/formpanel/internal/domain/model"
)

const testToken = "test-csrf-token"

// mockSubmissionStore is an in-memory SubmissionStore, newest first.
type mockSubmissionStore struct {
	subs      []model.Submission
	createErr error
	listErr   error
	created   []string
}

func (m *mockSubmissionStore) Create(_ context.Context, data json.RawMessage) (model.Submission, error) {
	if m.createErr != nil {
		return model.Submission{}, m.createErr
	}
	m.created = append(m.created, string(data))
	sub := model.Submission{
		ID:        "new",
		Data:      string(data),
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	m.subs = append([]model.Submission{sub}, m.subs...)
	return sub, nil
}

func (m *mockSubmissionStore) List(_ context.Context) ([]model.Submission, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.subs, nil
}

type rfc3339Formatter struct{}

func (rfc3339Formatter) FormatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func testSchema() model.FormSchema {
	return model.FormSchema{
		Title:       "Developer Registration",
		Description: "Fill in **all** fields.",
		Fields: []model.FieldDescriptor{
			{Name: "fullName", Label: "Full Name", Kind: model.FieldKindText, Required: true, MinLength: 3},
			{Name: "email", Label: "Email", Kind: model.FieldKindEmail, Required: true},
			{Name: "role", Label: "Role", Kind: model.FieldKindSelect, Required: true, Options: []string{"Developer", "Designer"}},
			{Name: "avatar", Label: "Avatar", Kind: model.FieldKind("file")},
		},
	}
}

func newTestHandler(store *mockSubmissionStore) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(testSchema(), application.NewSubmissionService(store), rfc3339Formatter{}, logger)
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return mux
}

func postForm(path string, values url.Values, htmx bool) *http.Request {
	values.Set(csrfFormField, testToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testToken})
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func TestFormPage(t *testing.T) {
	store := &mockSubmissionStore{}
	mux := newTestHandler(store)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "<h1>Developer Registration</h1>")
	assert.Contains(t, body, "<strong>all</strong>")
	assert.Contains(t, body, `name="fullName"`)
	assert.Contains(t, body, `type="email"`)
	assert.Contains(t, body, "<select")
	assert.NotContains(t, body, `name="avatar"`)
	assert.Contains(t, body, "No submissions yet.")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Contains(t, body, `value="`+cookies[0].Value+`"`)
}

func TestFormPage_ReusesCSRFCookie(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testToken})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	assert.Contains(t, rec.Body.String(), `value="`+testToken+`"`)
}

func TestFormPage_ListFailureShowsBanner(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{listErr: errors.New("db down")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), application.MsgFetchFailed)
	assert.Contains(t, rec.Body.String(), "No submissions yet.")
}

func TestFormPage_ShowsSubmissions(t *testing.T) {
	store := &mockSubmissionStore{subs: []model.Submission{
		{ID: "b", Data: `{"fullName":"Bob","role":"Designer"}`, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a", Data: `{"fullName":"Ann","email":"ann@example.com"}`, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	mux := newTestHandler(store)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "<th>fullName</th><th>role</th><th>email</th><th>Submitted At</th>")
	assert.Contains(t, body, "<td>Bob</td><td>Designer</td><td>-</td><td>2024-01-02T00:00:00Z</td>")
	assert.Contains(t, body, "<td>Ann</td><td>-</td><td>ann@example.com</td>")
	assert.Less(t, strings.Index(body, "Bob"), strings.Index(body, "Ann"))
}

func TestSubmit_CSRF(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		field  string
	}{
		{name: "no cookie", field: testToken},
		{name: "no token", cookie: testToken},
		{name: "mismatch", cookie: testToken, field: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockSubmissionStore{}
			mux := newTestHandler(store)

			form := url.Values{"fullName": {"Alice"}}
			if tt.field != "" {
				form.Set(csrfFormField, tt.field)
			}
			req := httptest.NewRequest(http.MethodPost, "/app/submit", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Empty(t, store.created)
		})
	}
}

func TestSubmit_InvalidValues(t *testing.T) {
	store := &mockSubmissionStore{}
	mux := newTestHandler(store)

	form := url.Values{"fullName": {"Al"}, "email": {"not-an-email"}}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", form, true))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<!doctype html>")
	assert.Contains(t, body, `id="workspace"`)
	assert.Contains(t, body, "Full Name must be at least 3 characters")
	assert.Contains(t, body, "Email must be a valid email")
	assert.Contains(t, body, "Role is required")
	assert.Contains(t, body, `value="Al"`)
	assert.Empty(t, store.created)
}

func TestSubmit_Valid(t *testing.T) {
	store := &mockSubmissionStore{}
	mux := newTestHandler(store)

	form := url.Values{
		"fullName": {"Alice"},
		"email":    {"alice@example.com"},
		"role":     {"Designer"},
		"avatar":   {"ignored"},
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", form, true))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.created, 1)
	assert.JSONEq(t, `{"fullName":"Alice","email":"alice@example.com","role":"Designer"}`, store.created[0])

	body := rec.Body.String()
	assert.Contains(t, body, `data-clear-after="3000">`+application.MsgSubmitted)
	assert.Contains(t, body, "<td>Alice</td>")
	assert.NotContains(t, body, `value="Alice"`)
	assert.NotContains(t, body, "No submissions yet.")
}

func TestSubmit_StoreFailureKeepsValues(t *testing.T) {
	store := &mockSubmissionStore{createErr: errors.New("disk full")}
	mux := newTestHandler(store)

	form := url.Values{
		"fullName": {"Alice"},
		"email":    {"alice@example.com"},
		"role":     {"Designer"},
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", form, true))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, application.MsgSubmitFailed)
	assert.Contains(t, body, `value="Alice"`)
	assert.NotContains(t, body, application.MsgSubmitted)
}

func TestSubmit_UnlistedOptionRejected(t *testing.T) {
	store := &mockSubmissionStore{}
	mux := newTestHandler(store)

	form := url.Values{
		"fullName": {"Alice"},
		"email":    {"alice@example.com"},
		"role":     {"Intruder"},
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", form, true))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Role must be one of the listed options")
	assert.NotContains(t, body, application.MsgSubmitted)
	assert.Empty(t, store.created)
}

func TestSubmit_ListFailureDoesNotShowFetchBanner(t *testing.T) {
	store := &mockSubmissionStore{listErr: errors.New("db down")}
	mux := newTestHandler(store)

	form := url.Values{
		"fullName": {"Alice"},
		"email":    {"alice@example.com"},
		"role":     {"Developer"},
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", form, true))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.created, 1)
	body := rec.Body.String()
	assert.Contains(t, body, application.MsgSubmitted)
	assert.NotContains(t, body, application.MsgFetchFailed)
	assert.Contains(t, body, "<td>Alice</td>")
}

func TestSubmit_PlainPostRendersFullPage(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/submit", url.Values{}, false))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!doctype html>")
}

func TestReset(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/reset", url.Values{"fullName": {"Alice"}}, true))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="form-card"`))
	assert.NotContains(t, body, `value="Alice"`)
	assert.NotContains(t, body, "helper-text")
}

func TestReset_PlainPostRedirects(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/app/reset", url.Values{}, false))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestStaticAssets(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".helper-text")
}

func TestStaticAssets_FormScript(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), "data-clear-after")
	assert.Contains(t, rec.Body.String(), "HX-Request")
}

func TestFormPage_LoadsAssetsLocally(t *testing.T) {
	mux := newTestHandler(&mockSubmissionStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `<script src="/static/app.js" defer></script>`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/app.css">`)
	assert.NotContains(t, body, "https://")
}

