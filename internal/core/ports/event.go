package ports

import (
	"context"
	"time"
)

const (
	EventLeaveSubmitted = "leave.submitted"
	EventLeaveReviewed  = "leave.reviewed"
)

type LeaveSubmittedEvent struct {
	LeaveID         string    `json:"leave_id"`
	StudentID       string    `json:"student_id"`
	StudentUsername string    `json:"student_username"`
	Department      string    `json:"department"`
	Hostel          string    `json:"hostel"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Days            int       `json:"days"`
}

type LeaveReviewedEvent struct {
	LeaveID         string    `json:"leave_id"`
	StudentID       string    `json:"student_id"`
	StudentUsername string    `json:"student_username"`
	Track           string    `json:"track"`
	Status          string    `json:"status"`
	ReviewerID      string    `json:"reviewer_id"`
	ReviewedAt      time.Time `json:"reviewed_at"`
}

type LeaveEventPublisher interface {
	PublishLeaveSubmitted(ctx context.Context, evt LeaveSubmittedEvent) error
	PublishLeaveReviewed(ctx context.Context, evt LeaveReviewedEvent) error
}
