package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tamabee-group/tama-hr-sub006/internal/domain/access"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/auth"
	"github.com/tamabee-group/tama-hr-sub006/internal/domain/notifications"
	"github.com/tamabee-group/tama-hr-sub006/internal/i18n"
	"github.com/tamabee-group/tama-hr-sub006/internal/platform/requestctx"
	"github.com/tamabee-group/tama-hr-sub006/internal/transport/http/middleware"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	items  []notifications.Notification
	marked []string
}

func (f *fakeRepo) List(context.Context, string, string, int, int) ([]notifications.Notification, error) {
	return f.items, nil
}

func (f *fakeRepo) Count(context.Context, string, string) (int, error) {
	return len(f.items), nil
}

func (f *fakeRepo) MarkRead(_ context.Context, _, _, id string) error {
	f.marked = append(f.marked, id)
	return nil
}

func newTestHandler(t *testing.T, repo *fakeRepo, clock i18n.Clock) *Handler {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.LocaleVI)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return NewHandler(repo, catalog, clock)
}

func userRequest(method, target, locale string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.WithUser(req.Context(), auth.UserContext{
		UserID:    "u1",
		CompanyID: "c1",
		Scope:     auth.ScopeCompany,
		Role:      access.RoleEmployee,
	})
	ctx = requestctx.WithLocale(ctx, locale)
	return req.WithContext(ctx)
}

func TestListRendersLocalizedMessages(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{items: []notifications.Notification{
		{
			ID:        "n1",
			Code:      "LEAVE_APPROVED",
			Params:    map[string]any{"startDate": "2024-06-10", "endDate": "2024-06-10"},
			CreatedAt: now.Add(-90 * time.Minute),
		},
		{
			ID:        "n2",
			Code:      "MYSTERY_CODE",
			CreatedAt: now.Add(-30 * time.Second),
		},
	}}
	h := newTestHandler(t, repo, fixedClock{now: now})

	rec := httptest.NewRecorder()
	h.List(rec, userRequest(http.MethodGet, "/api/v1/notifications", "vi"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Total-Count") != "2" {
		t.Fatalf("X-Total-Count = %q", rec.Header().Get("X-Total-Count"))
	}

	var envelope struct {
		Data struct {
			Items []notifications.Rendered `json:"items"`
			Total int                      `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items := envelope.Data.Items
	if len(items) != 2 || envelope.Data.Total != 2 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}

	if items[0].Message != "Đơn nghỉ phép ngày Thứ Hai, 10/06/2024 của bạn đã được duyệt" {
		t.Fatalf("message = %q", items[0].Message)
	}
	if items[0].TimeAgo != "1 giờ trước" {
		t.Fatalf("timeAgo = %q", items[0].TimeAgo)
	}
	if items[1].Message != "MYSTERY_CODE" {
		t.Fatalf("unknown code should surface raw, got %q", items[1].Message)
	}
	if items[1].TimeAgo != "Vừa xong" {
		t.Fatalf("timeAgo = %q", items[1].TimeAgo)
	}
}

func TestListRespectsRequestLocale(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{items: []notifications.Notification{
		{
			ID:        "n1",
			Code:      "TIMESHEET_CONFIRMED",
			Params:    map[string]any{"period": "2024-05"},
			CreatedAt: now.Add(-10 * time.Minute),
		},
	}}
	h := newTestHandler(t, repo, fixedClock{now: now})

	rec := httptest.NewRecorder()
	h.List(rec, userRequest(http.MethodGet, "/api/v1/notifications", "en"))

	var envelope struct {
		Data struct {
			Items []notifications.Rendered `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Items[0].Message != "Your timesheet for 2024-05 was confirmed" {
		t.Fatalf("message = %q", envelope.Data.Items[0].Message)
	}
	if envelope.Data.Items[0].TimeAgo != "10 minutes ago" {
		t.Fatalf("timeAgo = %q", envelope.Data.Items[0].TimeAgo)
	}
}

func TestMarkRead(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(t, repo, fixedClock{now: time.Now()})

	req := userRequest(http.MethodPost, "/api/v1/notifications/n9/read", "vi")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "n9")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	h.MarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(repo.marked) != 1 || repo.marked[0] != "n9" {
		t.Fatalf("marked = %v", repo.marked)
	}
}

func TestListRejectsPlatformScope(t *testing.T) {
	h := newTestHandler(t, &fakeRepo{}, fixedClock{now: time.Now()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	ctx := middleware.WithUser(req.Context(), auth.UserContext{
		UserID: "p1",
		Scope:  auth.ScopePlatform,
		Role:   access.RoleAdmin,
	})
	rec := httptest.NewRecorder()
	h.List(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
