package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

const dateLayout = "2006-01-02"

type LeaveHandler struct {
	leaves   ports.LeaveService
	accounts ports.AccountService
}

func NewLeaveHandler(leaves ports.LeaveService, accounts ports.AccountService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, accounts: accounts}
}

// ApplyForm serves the leave application page data.
func (h *LeaveHandler) ApplyForm(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), domain.RoleStudent, chi.URLParam(r, "id"))
	if err != nil {
		failRedirect(w, r, err, domain.RoleStudent.HomePath())
		return
	}
	writePage(w, r, profilePage{Account: account})
}

// Apply submits a leave request for the logged-in student. Both tracks start
// pending.
func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		failRedirect(w, r, domain.ErrNoSession, domain.RoleStudent.LoginPath())
		return
	}

	student, err := h.accounts.Get(r.Context(), domain.RoleStudent, principal.AccountID)
	if err != nil {
		failRedirect(w, r, err, domain.RoleStudent.HomePath())
		return
	}

	if err := r.ParseForm(); err != nil {
		failRedirect(w, r, err, domain.RoleStudent.HomePath())
		return
	}

	in := ports.LeaveInput{
		Subject: r.PostFormValue("subject"),
		Reason:  r.PostFormValue("reason"),
	}
	if from, err := time.Parse(dateLayout, r.PostFormValue("from")); err == nil {
		in.From = from
	}
	if to, err := time.Parse(dateLayout, r.PostFormValue("to")); err == nil {
		in.To = to
	}

	if _, err := h.leaves.Submit(r.Context(), student, in); err != nil {
		failRedirect(w, r, err, domain.RoleStudent.HomePath())
		return
	}

	redirect(w, r, domain.RoleStudent.HomePath(), middleware.FlashSuccess, "Successfully applied for leave")
}

// Track serves a student's own request history.
func (h *LeaveHandler) Track(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	leaves, err := h.leaves.ListForStudent(r.Context(), studentID)
	if err != nil {
		failRedirect(w, r, err, domain.RoleStudent.HomePath())
		return
	}
	writePage(w, r, leaves)
}

// Queue serves the reviewer's queue: every departmental request for a head,
// pending plus last-30-days decisions for a warden.
func (h *LeaveHandler) Queue(w http.ResponseWriter, r *http.Request) {
	reviewer, err := h.reviewer(r)
	if err != nil {
		failRedirect(w, r, err, "/")
		return
	}

	leaves, err := h.leaves.ReviewQueue(r.Context(), reviewer)
	if err != nil {
		failRedirect(w, r, err, reviewer.Role.HomePath())
		return
	}
	writePage(w, r, leaves)
}

type reviewPage struct {
	Student *domain.Account        `json:"student"`
	Leaves  []*domain.LeaveRequest `json:"leaves"`
}

// Info serves one student's pending requests for review, scope-checked
// against the reviewer's department or hostel.
func (h *LeaveHandler) Info(w http.ResponseWriter, r *http.Request) {
	reviewer, err := h.reviewer(r)
	if err != nil {
		failRedirect(w, r, err, "/")
		return
	}

	student, pending, err := h.leaves.PendingForStudent(r.Context(), reviewer, chi.URLParam(r, "studentID"))
	if err != nil {
		failRedirect(w, r, err, reviewer.Role.HomePath())
		return
	}
	writePage(w, r, reviewPage{Student: student, Leaves: pending})
}

// Review records the reviewer's decision on their track. With no explicit
// leaveId in the form, the student's oldest pending request is reviewed.
func (h *LeaveHandler) Review(w http.ResponseWriter, r *http.Request) {
	reviewer, err := h.reviewer(r)
	if err != nil {
		failRedirect(w, r, err, "/")
		return
	}
	queuePath := "/" + string(reviewer.Role) + "/" + reviewer.ID + "/leave"

	if err := r.ParseForm(); err != nil {
		failRedirect(w, r, err, queuePath)
		return
	}

	leaveID := r.PostFormValue("leaveId")
	if leaveID == "" {
		_, pending, err := h.leaves.PendingForStudent(r.Context(), reviewer, chi.URLParam(r, "studentID"))
		if err != nil {
			failRedirect(w, r, err, queuePath)
			return
		}
		if len(pending) == 0 {
			failRedirect(w, r, domain.ErrNotFound, queuePath)
			return
		}
		leaveID = pending[len(pending)-1].ID
	}

	approve := strings.EqualFold(r.PostFormValue("action"), "approve")
	leave, err := h.leaves.Review(r.Context(), reviewer, leaveID, approve)
	if err != nil {
		failRedirect(w, r, err, queuePath)
		return
	}

	track, _ := domain.TrackForRole(reviewer.Role)
	status := leave.Status(track)
	middleware.LeaveDecisionsTotal.WithLabelValues(string(track), string(status)).Inc()

	redirect(w, r, queuePath, middleware.FlashSuccess, "Leave request "+string(status))
}

// reviewer loads the full account of the gated principal; scoping needs the
// reviewer's department or hostel, not just the id.
func (h *LeaveHandler) reviewer(r *http.Request) (*domain.Account, error) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return nil, domain.ErrNoSession
	}
	return h.accounts.Get(r.Context(), principal.Role, principal.AccountID)
}
