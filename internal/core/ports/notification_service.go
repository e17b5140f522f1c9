package ports

import (
	"context"

	"hauling/internal/core/domain/model/kernel"
)

// NotificationKind identifies the event a notification reports.
type NotificationKind string

const (
	NotifyJobScheduled     NotificationKind = "job_scheduled"
	NotifyJobCanceled      NotificationKind = "job_canceled"
	NotifyCancelRefused    NotificationKind = "cancel_refused"
	NotifyScheduleReleased NotificationKind = "schedule_released"
	NotifyJobExpired       NotificationKind = "job_expired"
	NotifyJobUnstarted     NotificationKind = "job_unstarted"
	NotifyJobEndingSoon    NotificationKind = "job_ending_soon"
	NotifyForcedClockOut   NotificationKind = "forced_clock_out"
	NotifyDisputeRaised    NotificationKind = "dispute_raised"
	NotifyDisputeResolved  NotificationKind = "dispute_resolved"
	NotifySwitchRequested  NotificationKind = "switch_requested"
	NotifySwitchAnswered   NotificationKind = "switch_answered"
)

// Notification is one constructed payload addressed to one recipient. The
// core builds these and hands them off; delivery channels (push, SMS,
// socket) are the adapter's concern.
type Notification struct {
	Recipient      kernel.UUID
	Kind           NotificationKind
	JobID          kernel.UUID
	ScheduledJobID kernel.UUID
	AssignationID  kernel.UUID
	Message        string
}

// NotificationService accepts constructed notification payloads. Calls are
// fire-and-forget relative to the mutating transaction: implementations
// must never let a delivery failure surface into the caller's state
// transition.
type NotificationService interface {
	Notify(ctx context.Context, notification Notification)
}

// EmailTemplate names a transactional email template rendered outside the
// core.
type EmailTemplate string

const (
	EmailJobEdited        EmailTemplate = "job_edited"
	EmailJobCanceled      EmailTemplate = "job_canceled"
	EmailDisputeRaised    EmailTemplate = "dispute_raised"
	EmailScheduleReleased EmailTemplate = "schedule_released"
)

// EmailService sends templated transactional email. The core passes plain
// data and never formats markup. Fire-and-forget, like notifications.
type EmailService interface {
	Send(ctx context.Context, recipient kernel.UUID, template EmailTemplate, data map[string]string)
}
