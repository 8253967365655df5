package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExchangeTimesheetEvents carries every event emitted by the timesheet service
const ExchangeTimesheetEvents = "timesheet.events"

// Event types, also used as routing keys
const (
	EventTimesheetSubmitted  = "timesheet.submitted"
	EventCalendarEntryAdded  = "calendar.entry.added"
	EventProjectCreated      = "project.created"
	EventPTORequested        = "pto.requested"
	EventPTOApproved         = "pto.approved"
	EventPTORejected         = "pto.rejected"
	EventReportExportCreated = "report.export.created"
)

// Event is the envelope published to the exchange
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent marshals data into a new envelope
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into v
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// TimesheetSubmittedEvent is published after a grid submission commits
type TimesheetSubmittedEvent struct {
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Rows       int      `json:"rows"`
	Hours      float64  `json:"hours"`
	Dates      []string `json:"dates"`
}

// CalendarEntryAddedEvent is published after holidays or an event are stored
type CalendarEntryAddedEvent struct {
	Title string   `json:"title"`
	Type  string   `json:"type"`
	Dates []string `json:"dates"`
}

// ProjectCreatedEvent is published when a project joins the catalog
type ProjectCreatedEvent struct {
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// PTORequestedEvent is published when an employee asks for time off
type PTORequestedEvent struct {
	RequestID string `json:"request_id"`
	Email     string `json:"email"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
}

// PTODecidedEvent is published for both approvals and rejections
type PTODecidedEvent struct {
	RequestID string `json:"request_id"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Reviewer  string `json:"reviewer"`
}

// ReportExportCreatedEvent is published when an export is archived
type ReportExportCreatedEvent struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Size int    `json:"size"`
}
