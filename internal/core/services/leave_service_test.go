package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
	"github.com/campuskit/leave-service/test/mocks"
)

func newLeaveFixture() (*LeaveService, *mocks.MockLeaveRepository, *mocks.MockAccountRepository, *mocks.MockOutboxStore) {
	leaves := mocks.NewMockLeaveRepository()
	accounts := mocks.NewMockAccountRepository()
	outbox := mocks.NewMockOutboxStore()
	return NewLeaveService(leaves, accounts, outbox), leaves, accounts, outbox
}

func leaveInput() ports.LeaveInput {
	return ports.LeaveInput{
		Subject: "Family function",
		Reason:  "Travelling home",
		From:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestSubmitStartsBothTracksPending(t *testing.T) {
	svc, leaves, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if leave.DepartmentStatus != domain.TrackPending {
		t.Errorf("department track = %q, want pending", leave.DepartmentStatus)
	}
	if leave.HostelStatus != domain.TrackPending {
		t.Errorf("hostel track = %q, want pending", leave.HostelStatus)
	}
	if leave.Department != "CS" || leave.Hostel != "North" {
		t.Errorf("affiliation not captured: dept=%q hostel=%q", leave.Department, leave.Hostel)
	}
	if leave.Days != 5 {
		t.Errorf("days = %d, want 5", leave.Days)
	}
	if len(leaves.CreateCalls) != 1 {
		t.Errorf("expected one repository create, got %d", len(leaves.CreateCalls))
	}
}

func TestSubmitAppendsOutboxEvent(t *testing.T) {
	svc, _, _, outbox := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(outbox.Events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(outbox.Events))
	}
	evt := outbox.Events[0]
	if evt.EventType != ports.EventLeaveSubmitted {
		t.Errorf("event type = %q, want %q", evt.EventType, ports.EventLeaveSubmitted)
	}
	var payload ports.LeaveSubmittedEvent
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if payload.LeaveID != leave.ID || payload.Department != "CS" {
		t.Errorf("payload mismatch: %+v", payload)
	}
}

func TestSubmitOutboxFailureDoesNotFailWrite(t *testing.T) {
	svc, _, _, outbox := newLeaveFixture()
	outbox.AppendError = errors.New("outbox unavailable")
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	if _, err := svc.Submit(context.Background(), student, leaveInput()); err != nil {
		t.Errorf("submission must survive an outbox append failure: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, leaves, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	tests := []struct {
		name   string
		mutate func(*ports.LeaveInput)
	}{
		{"missing subject", func(in *ports.LeaveInput) { in.Subject = "" }},
		{"missing dates", func(in *ports.LeaveInput) { in.From, in.To = time.Time{}, time.Time{} }},
		{"end before start", func(in *ports.LeaveInput) { in.From, in.To = in.To, in.From }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := leaveInput()
			tt.mutate(&in)
			if _, err := svc.Submit(context.Background(), student, in); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
	if len(leaves.CreateCalls) != 0 {
		t.Error("invalid input must not reach the repository")
	}
}

func TestSubmitRejectsNonStudent(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()
	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")

	if _, err := svc.Submit(context.Background(), head, leaveInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// A department decision must leave the hostel track untouched, and vice
// versa: the two tracks never gate each other.
func TestReviewTracksAreIndependent(t *testing.T) {
	svc, leaves, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")
	reviewed, err := svc.Review(context.Background(), head, leave.ID, true)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.DepartmentStatus != domain.TrackApproved {
		t.Errorf("department track = %q, want approved", reviewed.DepartmentStatus)
	}
	if reviewed.HostelStatus != domain.TrackPending {
		t.Errorf("hostel track = %q, want pending after department decision", reviewed.HostelStatus)
	}
	if reviewed.DepartmentReviewedBy != "hod-1" || reviewed.DepartmentReviewedAt == nil {
		t.Error("department reviewer attribution missing")
	}

	stored, _ := leaves.FindByID(context.Background(), leave.ID)
	if stored.HostelStatus != domain.TrackPending {
		t.Errorf("persisted hostel track = %q, want pending", stored.HostelStatus)
	}

	warden := mocks.Warden("war-1", "carol", "North", "secret1")
	reviewed, err = svc.Review(context.Background(), warden, leave.ID, false)
	if err != nil {
		t.Fatalf("warden review failed: %v", err)
	}
	if reviewed.HostelStatus != domain.TrackDenied {
		t.Errorf("hostel track = %q, want denied", reviewed.HostelStatus)
	}
	if reviewed.DepartmentStatus != domain.TrackApproved {
		t.Errorf("department track = %q, want approved after hostel decision", reviewed.DepartmentStatus)
	}
}

func TestReviewOutOfScopeForbidden(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")
	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	otherHead := mocks.DepartmentHead("hod-2", "dave", "EE", "secret1")
	if _, err := svc.Review(context.Background(), otherHead, leave.ID, true); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for out-of-department head, got %v", err)
	}

	otherWarden := mocks.Warden("war-2", "erin", "South", "secret1")
	if _, err := svc.Review(context.Background(), otherWarden, leave.ID, true); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for out-of-hostel warden, got %v", err)
	}
}

func TestReviewDecidedTrackRejected(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")
	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")
	if _, err := svc.Review(context.Background(), head, leave.ID, false); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.Review(context.Background(), head, leave.ID, true); !errors.Is(err, domain.ErrAlreadyReviewed) {
		t.Errorf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestReviewAppendsOutboxEvent(t *testing.T) {
	svc, _, _, outbox := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")
	leave, err := svc.Submit(context.Background(), student, leaveInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")
	if _, err := svc.Review(context.Background(), head, leave.ID, true); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if len(outbox.Events) != 2 {
		t.Fatalf("expected submit+review events, got %d", len(outbox.Events))
	}
	evt := outbox.Events[1]
	if evt.EventType != ports.EventLeaveReviewed {
		t.Errorf("event type = %q, want %q", evt.EventType, ports.EventLeaveReviewed)
	}
	var payload ports.LeaveReviewedEvent
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if payload.Track != "department" || payload.Status != "approved" || payload.ReviewerID != "hod-1" {
		t.Errorf("payload mismatch: %+v", payload)
	}
}

func TestReviewQueueDepartmentHead(t *testing.T) {
	svc, leaves, _, _ := newLeaveFixture()
	leaves.SeedLeave(&domain.LeaveRequest{ID: "l1", Department: "CS", Hostel: "North", DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackPending})
	decided := time.Now().Add(-90 * 24 * time.Hour)
	leaves.SeedLeave(&domain.LeaveRequest{ID: "l2", Department: "CS", Hostel: "North", DepartmentStatus: domain.TrackApproved, DepartmentReviewedAt: &decided, HostelStatus: domain.TrackPending})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "l3", Department: "EE", Hostel: "North", DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackPending})

	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")
	queue, err := svc.ReviewQueue(context.Background(), head)
	if err != nil {
		t.Fatalf("ReviewQueue failed: %v", err)
	}

	// Heads see their whole department, decided requests included, and
	// nothing from other departments.
	if len(queue) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(queue))
	}
	for _, l := range queue {
		if l.Department != "CS" {
			t.Errorf("request %s from department %q leaked into the queue", l.ID, l.Department)
		}
	}
}

func TestReviewQueueWardenWindow(t *testing.T) {
	svc, leaves, _, _ := newLeaveFixture()

	recent := time.Now().Add(-10 * 24 * time.Hour)
	boundary := time.Now().Add(-30 * 24 * time.Hour).Add(time.Minute)
	stale := time.Now().Add(-31 * 24 * time.Hour)

	leaves.SeedLeave(&domain.LeaveRequest{ID: "pending", Hostel: "North", HostelStatus: domain.TrackPending})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "recent", Hostel: "North", HostelStatus: domain.TrackApproved, HostelReviewedAt: &recent})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "boundary", Hostel: "North", HostelStatus: domain.TrackDenied, HostelReviewedAt: &boundary})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "stale", Hostel: "North", HostelStatus: domain.TrackApproved, HostelReviewedAt: &stale})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "other", Hostel: "South", HostelStatus: domain.TrackPending})

	warden := mocks.Warden("war-1", "carol", "North", "secret1")
	queue, err := svc.ReviewQueue(context.Background(), warden)
	if err != nil {
		t.Fatalf("ReviewQueue failed: %v", err)
	}

	got := make(map[string]bool, len(queue))
	for _, l := range queue {
		got[l.ID] = true
	}
	for _, id := range []string{"pending", "recent", "boundary"} {
		if !got[id] {
			t.Errorf("expected %q in the warden queue", id)
		}
	}
	if got["stale"] {
		t.Error("decision older than the visibility window should be hidden")
	}
	if got["other"] {
		t.Error("another hostel's request leaked into the queue")
	}
}

func TestReviewQueueForbiddenForStudents(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()
	student := mocks.Student("stu-1", "alice", "CS", "North", "secret1")

	if _, err := svc.ReviewQueue(context.Background(), student); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestPendingForStudentFiltersByReviewerTrack(t *testing.T) {
	svc, leaves, accounts, _ := newLeaveFixture()
	accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))

	reviewed := time.Now()
	leaves.SeedLeave(&domain.LeaveRequest{ID: "l1", StudentID: "stu-1", Department: "CS", Hostel: "North", DepartmentStatus: domain.TrackPending, HostelStatus: domain.TrackApproved, HostelReviewedAt: &reviewed})
	leaves.SeedLeave(&domain.LeaveRequest{ID: "l2", StudentID: "stu-1", Department: "CS", Hostel: "North", DepartmentStatus: domain.TrackApproved, DepartmentReviewedAt: &reviewed, HostelStatus: domain.TrackPending})

	head := mocks.DepartmentHead("hod-1", "bob", "CS", "secret1")
	student, pending, err := svc.PendingForStudent(context.Background(), head, "stu-1")
	if err != nil {
		t.Fatalf("PendingForStudent failed: %v", err)
	}
	if student.Username != "alice" {
		t.Errorf("expected student alice, got %s", student.Username)
	}
	if len(pending) != 1 || pending[0].ID != "l1" {
		t.Errorf("head should see only the department-pending request, got %+v", pending)
	}

	warden := mocks.Warden("war-1", "carol", "North", "secret1")
	_, pending, err = svc.PendingForStudent(context.Background(), warden, "stu-1")
	if err != nil {
		t.Fatalf("PendingForStudent failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "l2" {
		t.Errorf("warden should see only the hostel-pending request, got %+v", pending)
	}
}

func TestPendingForStudentOutOfScope(t *testing.T) {
	svc, _, accounts, _ := newLeaveFixture()
	accounts.SeedAccount(mocks.Student("stu-1", "alice", "CS", "North", "secret1"))

	otherHead := mocks.DepartmentHead("hod-2", "dave", "EE", "secret1")
	if _, _, err := svc.PendingForStudent(context.Background(), otherHead, "stu-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListForStudentUnknownStudent(t *testing.T) {
	svc, _, _, _ := newLeaveFixture()

	if _, err := svc.ListForStudent(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
