package events

import (
	"context"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/messaging"
)

// TimesheetEventPublisher publishes timesheet events. Publishing is best
// effort: failures are logged and never fail the originating request. A nil
// publisher (RabbitMQ disabled) is a no-op.
type TimesheetEventPublisher struct {
	publisher messaging.EventPublisher
	logger    *logger.Logger
}

// NewTimesheetEventPublisher declares the timesheet exchange and binds a publisher to it
func NewTimesheetEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*TimesheetEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTimesheetEvents, "timesheet-service", log)
	if err != nil {
		return nil, err
	}
	return New(publisher, log), nil
}

// New wraps an existing publisher
func New(publisher messaging.EventPublisher, log *logger.Logger) *TimesheetEventPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &TimesheetEventPublisher{publisher: publisher, logger: log}
}

func (p *TimesheetEventPublisher) publish(ctx context.Context, eventType string, data interface{}) {
	if p == nil || p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

// PublishTimesheetSubmitted announces a committed grid submission
func (p *TimesheetEventPublisher) PublishTimesheetSubmitted(ctx context.Context, email, department string, logs []domain.TimeLog) {
	data := messaging.TimesheetSubmittedEvent{
		Email:      email,
		Department: department,
		Rows:       len(logs),
		Dates:      []string{},
	}
	seen := map[domain.Date]bool{}
	for _, l := range logs {
		data.Hours += l.Hours
		if !seen[l.Date] {
			seen[l.Date] = true
			data.Dates = append(data.Dates, l.Date.String())
		}
	}
	p.publish(ctx, messaging.EventTimesheetSubmitted, data)
}

// PublishCalendarEntryAdded announces stored holidays or a company event
func (p *TimesheetEventPublisher) PublishCalendarEntryAdded(ctx context.Context, entries []domain.Holiday) {
	if len(entries) == 0 {
		return
	}
	data := messaging.CalendarEntryAddedEvent{
		Title: entries[0].Title,
		Type:  string(entries[0].Type),
		Dates: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		data.Dates = append(data.Dates, e.Date.String())
	}
	p.publish(ctx, messaging.EventCalendarEntryAdded, data)
}

// PublishProjectCreated announces a new catalog entry
func (p *TimesheetEventPublisher) PublishProjectCreated(ctx context.Context, project *domain.Project) {
	p.publish(ctx, messaging.EventProjectCreated, messaging.ProjectCreatedEvent{
		ProjectID:  project.ID,
		Name:       project.Name,
		Department: project.Department,
		Status:     string(project.Status),
	})
}

// PublishPTORequested announces a new pending request
func (p *TimesheetEventPublisher) PublishPTORequested(ctx context.Context, req *domain.PTORequest) {
	p.publish(ctx, messaging.EventPTORequested, messaging.PTORequestedEvent{
		RequestID: req.ID,
		Email:     req.Email,
		FromDate:  req.FromDate.String(),
		ToDate:    req.ToDate.String(),
	})
}

// PublishPTODecided announces an approval or rejection
func (p *TimesheetEventPublisher) PublishPTODecided(ctx context.Context, req *domain.PTORequest, reviewer string) {
	eventType := messaging.EventPTOApproved
	if req.Status == domain.PTORejected {
		eventType = messaging.EventPTORejected
	}
	p.publish(ctx, eventType, messaging.PTODecidedEvent{
		RequestID: req.ID,
		Email:     req.Email,
		Status:    string(req.Status),
		Reviewer:  reviewer,
	})
}

// PublishExportCreated announces an archived export
func (p *TimesheetEventPublisher) PublishExportCreated(ctx context.Context, name, key string, size int) {
	p.publish(ctx, messaging.EventReportExportCreated, messaging.ReportExportCreatedEvent{
		Name: name,
		Key:  key,
		Size: size,
	})
}
