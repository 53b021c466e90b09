package domain

import "time"

type TrackStatus string

const (
	TrackPending  TrackStatus = "pending"
	TrackApproved TrackStatus = "approved"
	TrackDenied   TrackStatus = "denied"
)

// Terminal reports whether the status can no longer change.
func (s TrackStatus) Terminal() bool {
	return s == TrackApproved || s == TrackDenied
}

// Track names one of the two independent approval pipelines attached to a
// leave request.
type Track string

const (
	TrackDepartment Track = "department"
	TrackHostel     Track = "hostel"
)

// TrackForRole maps a reviewer role to the track it decides.
func TrackForRole(r Role) (Track, bool) {
	switch r {
	case RoleDepartmentHead:
		return TrackDepartment, true
	case RoleWarden:
		return TrackHostel, true
	default:
		return "", false
	}
}

// LeaveRequest is a student's leave application. The two tracks are decided
// by disjoint reviewer roles and never gate each other. Department and Hostel
// are captured from the student at submission so reviewer scoping is a
// single-document check.
type LeaveRequest struct {
	ID              string    `bson:"_id" json:"id"`
	Subject         string    `bson:"subject" json:"subject"`
	Reason          string    `bson:"reason" json:"reason"`
	From            time.Time `bson:"from" json:"from"`
	To              time.Time `bson:"to" json:"to"`
	Days            int       `bson:"days" json:"days"`
	StudentID       string    `bson:"student_id" json:"student_id"`
	StudentUsername string    `bson:"student_username" json:"student_username"`
	Department      string    `bson:"department" json:"department"`
	Hostel          string    `bson:"hostel" json:"hostel"`

	DepartmentStatus     TrackStatus `bson:"department_status" json:"department_status"`
	DepartmentReviewedBy string      `bson:"department_reviewed_by,omitempty" json:"department_reviewed_by,omitempty"`
	DepartmentReviewedAt *time.Time  `bson:"department_reviewed_at,omitempty" json:"department_reviewed_at,omitempty"`

	HostelStatus     TrackStatus `bson:"hostel_status" json:"hostel_status"`
	HostelReviewedBy string      `bson:"hostel_reviewed_by,omitempty" json:"hostel_reviewed_by,omitempty"`
	HostelReviewedAt *time.Time  `bson:"hostel_reviewed_at,omitempty" json:"hostel_reviewed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Status returns the given track's status.
func (l *LeaveRequest) Status(t Track) TrackStatus {
	if t == TrackHostel {
		return l.HostelStatus
	}
	return l.DepartmentStatus
}

// ReviewedAt returns the given track's review timestamp, nil while pending.
func (l *LeaveRequest) ReviewedAt(t Track) *time.Time {
	if t == TrackHostel {
		return l.HostelReviewedAt
	}
	return l.DepartmentReviewedAt
}

// LeaveDays returns the whole-day span between from and to. The original
// system subtracted calendar day-of-month values, which goes negative across
// month boundaries; this computes the real calendar difference instead.
func LeaveDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
