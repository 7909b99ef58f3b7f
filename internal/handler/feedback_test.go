package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reviewqr/reviewqr/internal/handler/dto"
)

func TestFeedbackHandler_Submit(t *testing.T) {
	env := newTestEnv()
	h := NewFeedbackHandler(env.feedback, env.logger)

	body := `{"businessId":"biz-1","rating":2,"feedbackText":"slow service"}`
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var response dto.FeedbackResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Rating != 2 {
		t.Fatalf("expected rating 2, got %d", response.Rating)
	}
	if response.FeedbackText == nil || *response.FeedbackText != "slow service" {
		t.Fatalf("unexpected text %v", response.FeedbackText)
	}
}

func TestFeedbackHandler_SubmitValidation(t *testing.T) {
	env := newTestEnv()
	h := NewFeedbackHandler(env.feedback, env.logger)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid_json", `{`, "INVALID_JSON"},
		{"missing_business", `{"rating":3}`, "MISSING_BUSINESS_ID"},
		{"missing_rating", `{"businessId":"biz-1"}`, "INVALID_RATING"},
		{"rating_too_high", `{"businessId":"biz-1","rating":6}`, "INVALID_RATING"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(test.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != test.wantCode {
				t.Fatalf("expected code %s, got %s", test.wantCode, response.Code)
			}
		})
	}
}

func TestFeedbackHandler_List(t *testing.T) {
	env := newTestEnv()
	businessHandler := NewBusinessHandler(env.businesses, env.generator, env.logger)
	h := NewFeedbackHandler(env.feedback, env.logger)

	business := createTestBusiness(t, env, businessHandler, "owner-1")

	for _, rating := range []int{1, 4, 5} {
		body := fmt.Sprintf(`{"businessId":%q,"rating":%d}`, business.ID, rating)
		rec := httptest.NewRecorder()
		h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit failed: %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/feedback?businessId="+business.ID, nil)
	req = withSession(req, "owner-1", "owner-1@example.com")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response dto.FeedbackListResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Feedback) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(response.Feedback))
	}

	// Rating filter narrows the result.
	req = httptest.NewRequest(http.MethodGet, "/api/feedback?businessId="+business.ID+"&rating=1&rating=2", nil)
	req = withSession(req, "owner-1", "owner-1@example.com")
	rec = httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	response = dto.FeedbackListResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Feedback) != 1 || response.Feedback[0].Rating != 1 {
		t.Fatalf("unexpected filtered result %+v", response.Feedback)
	}
}

func TestFeedbackHandler_ListAccessControl(t *testing.T) {
	env := newTestEnv()
	businessHandler := NewBusinessHandler(env.businesses, env.generator, env.logger)
	h := NewFeedbackHandler(env.feedback, env.logger)

	business := createTestBusiness(t, env, businessHandler, "owner-1")

	// No session at all.
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/feedback?businessId="+business.ID, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Someone else's session.
	req := httptest.NewRequest(http.MethodGet, "/api/feedback?businessId="+business.ID, nil)
	req = withSession(req, "owner-2", "owner-2@example.com")
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner, got %d", rec.Code)
	}

	// Missing businessId.
	req = httptest.NewRequest(http.MethodGet, "/api/feedback", nil)
	req = withSession(req, "owner-1", "owner-1@example.com")
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	// Malformed rating filter.
	req = httptest.NewRequest(http.MethodGet, "/api/feedback?businessId="+business.ID+"&rating=ten", nil)
	req = withSession(req, "owner-1", "owner-1@example.com")
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
