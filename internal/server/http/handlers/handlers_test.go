package handlers_test

import (
	"bytes"
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

	"github.com/gin-gonic/gin"

	"github.com/raidergo/checkout/internal/adapter/verifone"
	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/pkg/signature"
	"github.com/raidergo/checkout/internal/server/http/router"
	"github.com/raidergo/checkout/internal/test"
)

const ipnSecret = "ipn-secret"

func newTestRouter(t *testing.T, facade *test.FacadeStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := signature.NewSigner(ipnSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifier, err := verifone.NewIPNVerifier(signer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return router.Setup(facade, verifier, logger)
}

func performRequest(engine *gin.Engine, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

var jsonHeader = map[string]string{"Content-Type": "application/json"}

func authHeader() map[string]string {
	return map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token"}
}

func TestRegister(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	rec := performRequest(engine, http.MethodPost, "/api/auth/register",
		jsonBody(t, map[string]string{"email": "buyer@example.com", "password": "password1"}), jsonHeader)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "raidergo_token=") {
		t.Errorf("expected auth cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})
	rec := performRequest(engine, http.MethodPost, "/api/auth/register", strings.NewReader("not-json"), jsonHeader)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRegisterConflict(t *testing.T) {
	facade := &test.FacadeStub{}
	facade.RegisterFn = func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrAlreadyExists
	}
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodPost, "/api/auth/register",
		jsonBody(t, map[string]string{"email": "buyer@example.com", "password": "password1"}), jsonHeader)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	facade := &test.FacadeStub{}
	facade.AuthenticateFn = func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "buyer@example.com", "password": "wrong"}), jsonHeader)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListCourses(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	rec := performRequest(engine, http.MethodGet, "/api/courses", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var courses []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(courses) != 1 || courses[0]["title"] != "Course" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListCoursesEmpty(t *testing.T) {
	facade := &test.FacadeStub{}
	facade.CoursesFn = func(context.Context) ([]model.Course, error) { return nil, nil }
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodGet, "/api/courses", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPurchasesRequireAuth(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})
	rec := performRequest(engine, http.MethodGet, "/api/purchases", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPurchases(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	rec := performRequest(engine, http.MethodGet, "/api/purchases", nil, authHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var purchases []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &purchases); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(purchases) != 1 || purchases[0]["course_id"] != "course-1" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestBuyLink(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	rec := performRequest(engine, http.MethodPost, "/api/checkout/link",
		jsonBody(t, map[string]string{"courseId": "course-1"}), authHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["url"] == "" {
		t.Fatalf("expected a url, got %s", rec.Body.String())
	}
}

func TestBuyLinkMissingCourse(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})
	rec := performRequest(engine, http.MethodPost, "/api/checkout/link",
		jsonBody(t, map[string]string{}), authHeader())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBuyLinkUnknownCourse(t *testing.T) {
	facade := &test.FacadeStub{}
	facade.BuyLinkFn = func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrNotFound
	}
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodPost, "/api/checkout/link",
		jsonBody(t, map[string]string{"courseId": "missing"}), authHeader())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCapture(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	rec := performRequest(engine, http.MethodPost, "/api/checkout/capture",
		jsonBody(t, map[string]any{"orderId": "ORDER-1", "courseId": "course-1", "amount": 49.99}), authHeader())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCaptureValidation(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	for _, payload := range []map[string]any{
		{"courseId": "course-1"},
		{"orderId": "ORDER-1"},
		{},
	} {
		rec := performRequest(engine, http.MethodPost, "/api/checkout/capture", jsonBody(t, payload), authHeader())
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %v: status = %d", payload, rec.Code)
		}
	}
}

func TestCaptureErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"payment not completed", domainErrors.ErrPaymentNotCompleted, http.StatusPaymentRequired},
		{"correlation mismatch", domainErrors.ErrAuthenticity, http.StatusPaymentRequired},
		{"provider auth", domainErrors.ErrProviderAuth, http.StatusBadGateway},
		{"provider unavailable", domainErrors.ProviderUnavailableError{Err: errors.New("timeout")}, http.StatusServiceUnavailable},
		{"unknown course", domainErrors.ErrNotFound, http.StatusBadRequest},
		{"bad amount", domainErrors.ErrInvalidAmount, http.StatusBadRequest},
		{"bad reference", domainErrors.ErrInvalidReference, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := &test.FacadeStub{}
			facade.CaptureFn = func(context.Context, string, string, string, float64) (*model.Purchase, bool, error) {
				return nil, false, tc.err
			}
			engine := newTestRouter(t, facade)

			rec := performRequest(engine, http.MethodPost, "/api/checkout/capture",
				jsonBody(t, map[string]any{"orderId": "ORDER-1", "courseId": "course-1"}), authHeader())
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}
}

func signedIPNForm(t *testing.T, fields map[string]string) io.Reader {
	t.Helper()
	signer, err := signature.NewSigner(ipnSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	form.Set("HASH", signer.Sign(fields))
	return strings.NewReader(form.Encode())
}

func ipnFields() map[string]string {
	return map[string]string{
		"REFNO":              "9265211",
		"SALE_STATUS":        "COMPLETE",
		"TOTAL_PRICE":        "49.99",
		"CURRENCY":           "USD",
		"CUSTOMER_EMAIL":     "buyer@example.com",
		"EXTERNAL_REFERENCE": "buyer-1|course-7",
	}
}

var formHeader = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

func TestWebhookRecordsNotification(t *testing.T) {
	facade := &test.FacadeStub{}
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodPost, "/api/webhooks/verifone", signedIPNForm(t, ipnFields()), formHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Fatalf("body = %q", rec.Body.String())
	}

	if len(facade.Notifications) != 1 {
		t.Fatalf("expected one handled notification, got %d", len(facade.Notifications))
	}
	n := facade.Notifications[0]
	if n.RefNo != "9265211" || n.TotalPrice != 49.99 || n.ExternalReference != "buyer-1|course-7" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	facade := &test.FacadeStub{}
	engine := newTestRouter(t, facade)

	form := url.Values{}
	for k, v := range ipnFields() {
		form.Set(k, v)
	}
	form.Set("HASH", strings.Repeat("0", 64))

	rec := performRequest(engine, http.MethodPost, "/api/webhooks/verifone", strings.NewReader(form.Encode()), formHeader)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(facade.Notifications) != 0 {
		t.Fatal("unauthenticated payload must not reach business logic")
	}
}

func TestWebhookRejectsMissingHash(t *testing.T) {
	facade := &test.FacadeStub{}
	engine := newTestRouter(t, facade)

	form := url.Values{}
	for k, v := range ipnFields() {
		form.Set(k, v)
	}

	rec := performRequest(engine, http.MethodPost, "/api/webhooks/verifone", strings.NewReader(form.Encode()), formHeader)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(facade.Notifications) != 0 {
		t.Fatal("unauthenticated payload must not reach business logic")
	}
}

func TestWebhookAcknowledgesProcessingFailure(t *testing.T) {
	facade := &test.FacadeStub{}
	facade.HandleFn = func(context.Context, *verifone.Notification) (bool, error) {
		return false, errors.New("database down")
	}
	engine := newTestRouter(t, facade)

	rec := performRequest(engine, http.MethodPost, "/api/webhooks/verifone", signedIPNForm(t, ipnFields()), formHeader)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated notification must be acknowledged, status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newTestRouter(t, &test.FacadeStub{})

	// Drive one request through the middleware so the counter has a series.
	performRequest(engine, http.MethodGet, "/api/courses", nil, nil)

	rec := performRequest(engine, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "checkout_http_requests_total") {
		t.Error("expected request counter in metrics exposition")
	}
}
