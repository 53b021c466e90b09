package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/services"
	"github.com/campuskit/leave-service/test/mocks"
)

// routerFixture wires the full HTTP surface over in-memory adapters, so the
// workflow tests run through routing, gating and the handlers together.
type routerFixture struct {
	handler  http.Handler
	accounts *mocks.MockAccountRepository
	leaves   *mocks.MockLeaveRepository
	sessions *mocks.MockSessionManager
	outbox   *mocks.MockOutboxStore
}

func newRouterFixture() *routerFixture {
	accounts := mocks.NewMockAccountRepository()
	leaves := mocks.NewMockLeaveRepository()
	sessions := mocks.NewMockSessionManager()
	outbox := mocks.NewMockOutboxStore()

	authSvc := services.NewAuthService(accounts)
	regSvc := services.NewRegistrationService(accounts)
	accountSvc := services.NewAccountService(accounts)
	leaveSvc := services.NewLeaveService(leaves, accounts, outbox)

	router := NewRouter(
		NewAuthHandler(authSvc, sessions, time.Hour),
		NewRegistrationHandler(regSvc),
		NewProfileHandler(accountSvc, leaveSvc),
		NewLeaveHandler(leaveSvc, accountSvc),
		NewHealthHandler(nil, nil),
		middleware.NewSessionGate(sessions),
		zap.NewNop(),
	)

	return &routerFixture{
		handler:  router,
		accounts: accounts,
		leaves:   leaves,
		sessions: sessions,
		outbox:   outbox,
	}
}

func (f *routerFixture) do(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = postForm(path, form)
		req.Method = method
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestApplyThenDepartmentApproval(t *testing.T) {
	f := newRouterFixture()
	f.accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))
	f.accounts.SeedAccount(mocks.DepartmentHead("hod-1", "bob", "CS", "secret1"))
	f.sessions.SeedSession("stu-tok", "stu-1", domain.RoleStudent)
	f.sessions.SeedSession("hod-tok", "hod-1", domain.RoleDepartmentHead)

	rec := f.do(http.MethodPost, "/student/stu-1/apply", "stu-tok", url.Values{
		"subject": {"Family function"},
		"reason":  {"Travelling home"},
		"from":    {"2026-03-10"},
		"to":      {"2026-03-15"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("apply status = %d, want 303", rec.Code)
	}
	if got := flashCookie(rec, middleware.FlashSuccess); got != "Successfully applied for leave" {
		t.Fatalf("apply flash = %q", got)
	}

	created, err := f.leaves.ListByStudent(context.Background(), "stu-1")
	if err != nil || len(created) != 1 {
		t.Fatalf("expected one stored request, got %d (%v)", len(created), err)
	}
	leaveID := created[0].ID

	rec = f.do(http.MethodPost, "/hod/hod-1/leave/stu-1/review", "hod-tok", url.Values{
		"leaveId": {leaveID},
		"action":  {"approve"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("review status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/hod/hod-1/leave" {
		t.Errorf("review redirect = %q, want the queue", loc)
	}
	if got := flashCookie(rec, middleware.FlashSuccess); got != "Leave request approved" {
		t.Errorf("review flash = %q", got)
	}

	stored, err := f.leaves.FindByID(context.Background(), leaveID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.DepartmentStatus != domain.TrackApproved {
		t.Errorf("department track = %q, want approved", stored.DepartmentStatus)
	}
	// The hostel track is untouched by the department decision.
	if stored.HostelStatus != domain.TrackPending {
		t.Errorf("hostel track = %q, want pending", stored.HostelStatus)
	}
}

// With no leaveId in the form, the student's oldest pending request on the
// reviewer's track is decided.
func TestReviewDefaultsToOldestPending(t *testing.T) {
	f := newRouterFixture()
	f.accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))
	f.accounts.SeedAccount(mocks.Warden("war-1", "carol", "North", "secret1"))
	f.sessions.SeedSession("war-tok", "war-1", domain.RoleWarden)

	f.leaves.SeedLeave(&domain.LeaveRequest{
		ID: "l1", StudentID: "stu-1", Department: "CS", Hostel: "North",
		DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackPending,
	})

	rec := f.do(http.MethodPost, "/warden/war-1/leave/stu-1/review", "war-tok", url.Values{
		"action": {"deny"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := flashCookie(rec, middleware.FlashSuccess); got != "Leave request denied" {
		t.Errorf("flash = %q", got)
	}

	stored, _ := f.leaves.FindByID(context.Background(), "l1")
	if stored.HostelStatus != domain.TrackDenied {
		t.Errorf("hostel track = %q, want denied", stored.HostelStatus)
	}
}

func TestReviewOutOfScopeRedirectsWithError(t *testing.T) {
	f := newRouterFixture()
	f.accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))
	f.accounts.SeedAccount(mocks.DepartmentHead("hod-2", "dave", "EE", "secret1"))
	f.sessions.SeedSession("hod-tok", "hod-2", domain.RoleDepartmentHead)

	f.leaves.SeedLeave(&domain.LeaveRequest{
		ID: "l1", StudentID: "stu-1", Department: "CS", Hostel: "North",
		DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackPending,
	})

	rec := f.do(http.MethodPost, "/hod/hod-2/leave/stu-1/review", "hod-tok", url.Values{
		"leaveId": {"l1"},
		"action":  {"approve"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := flashCookie(rec, middleware.FlashError); got != "Unauthorized access" {
		t.Errorf("flash = %q", got)
	}

	stored, _ := f.leaves.FindByID(context.Background(), "l1")
	if stored.DepartmentStatus != domain.TrackPending {
		t.Errorf("out-of-scope review must not change the track, got %q", stored.DepartmentStatus)
	}
}

func TestApplyRequiresStudentSession(t *testing.T) {
	f := newRouterFixture()
	f.accounts.SeedAccount(mocks.Warden("war-1", "carol", "North", "secret1"))
	f.sessions.SeedSession("war-tok", "war-1", domain.RoleWarden)

	rec := f.do(http.MethodPost, "/student/war-1/apply", "war-tok", url.Values{
		"subject": {"x"}, "from": {"2026-03-10"}, "to": {"2026-03-11"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/student/login" {
		t.Errorf("redirect = %q, want /student/login", loc)
	}
	if len(f.leaves.CreateCalls) != 0 {
		t.Error("no request may be created for a non-student session")
	}
}

func TestTrackListsStudentHistory(t *testing.T) {
	f := newRouterFixture()
	f.accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))
	f.sessions.SeedSession("stu-tok", "stu-1", domain.RoleStudent)

	f.leaves.SeedLeave(&domain.LeaveRequest{
		ID: "l1", StudentID: "stu-1", Department: "CS", Hostel: "North",
		DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackPending,
	})

	rec := f.do(http.MethodGet, "/student/stu-1/track", "stu-tok", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}
