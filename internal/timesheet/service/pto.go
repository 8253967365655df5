package service

import (
	"context"
	"strings"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// PTOService runs the PTO approval workflow
type PTOService struct {
	requests  PTOStore
	publisher *events.TimesheetEventPublisher
	logger    *logger.Logger
	now       Clock
}

// NewPTOService creates a new PTO service
func NewPTOService(requests PTOStore, publisher *events.TimesheetEventPublisher, log *logger.Logger) *PTOService {
	return &PTOService{requests: requests, publisher: publisher, logger: log, now: time.Now}
}

// Request files a new Pending request stamped with today's date
func (s *PTOService) Request(ctx context.Context, email string, from, to domain.Date, reason string) (*domain.PTORequest, error) {
	details := map[string]string{}
	if strings.TrimSpace(email) == "" {
		details["email"] = "this field is required"
	}
	if from.IsZero() {
		details["from_date"] = "this field is required"
	}
	if to.IsZero() {
		details["to_date"] = "this field is required"
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		details["to_date"] = "must not be before from_date"
	}
	if len(details) > 0 {
		return nil, errors.Validation(details)
	}

	req := &domain.PTORequest{
		Email:       email,
		FromDate:    from,
		ToDate:      to,
		Reason:      strings.TrimSpace(reason),
		Status:      domain.PTOPending,
		SubmittedOn: domain.DateOf(s.now()),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publisher.PublishPTORequested(ctx, req)

	s.logger.Info().
		Str("request_id", req.ID).
		Str("email", email).
		Str("from_date", from.String()).
		Str("to_date", to.String()).
		Msg("pto requested")

	return req, nil
}

// Mine lists the caller's own requests
func (s *PTOService) Mine(ctx context.Context, email string) ([]domain.PTORequest, error) {
	return s.requests.ListByEmail(ctx, email)
}

// Pending lists requests awaiting a decision
func (s *PTOService) Pending(ctx context.Context) ([]domain.PTORequest, error) {
	return s.requests.ListPending(ctx)
}

// Approve moves a Pending request to Approved
func (s *PTOService) Approve(ctx context.Context, id, reviewer string) (*domain.PTORequest, error) {
	return s.decide(ctx, id, domain.PTOApproved, reviewer)
}

// Reject moves a Pending request to Rejected
func (s *PTOService) Reject(ctx context.Context, id, reviewer string) (*domain.PTORequest, error) {
	return s.decide(ctx, id, domain.PTORejected, reviewer)
}

// decide applies a terminal status. A request that is already decided
// returns a Conflict and keeps its status.
func (s *PTOService) decide(ctx context.Context, id string, next domain.PTOStatus, reviewer string) (*domain.PTORequest, error) {
	req, err := s.requests.UpdateStatus(ctx, id, next, reviewer)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishPTODecided(ctx, req, reviewer)

	s.logger.Info().
		Str("request_id", req.ID).
		Str("email", req.Email).
		Str("status", string(req.Status)).
		Str("reviewer", reviewer).
		Msg("pto decided")

	return req, nil
}
