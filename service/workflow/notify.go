package workflow

import (
	"context"
	"time"

	"github.com/viant/bidflow/model"
	"github.com/viant/bidflow/service/event"
)

// NotificationKind classifies session notifications
type NotificationKind string

const (
	NotifyPhase   NotificationKind = "phase"
	NotifyLog     NotificationKind = "log"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
	NotifyNotice  NotificationKind = "notice"
)

// Notification is published on every observable session change.
type Notification struct {
	Kind    NotificationKind     `json:"kind"`
	Phase   Phase                `json:"phase,omitempty"`
	Entry   *model.AgentLogEntry `json:"entry,omitempty"`
	Message string               `json:"message,omitempty"`
}

const notificationSource = "workflow"

// lateNotifyTimeout bounds publishing once the caller context is done.
const lateNotifyTimeout = time.Second

// notify publishes n under ctx, so a full notification queue slows the run
// down instead of losing entries.
func (m *Machine) notify(ctx context.Context, runID, rfpID string, n Notification) {
	if m.publisher == nil {
		return
	}
	evt := event.NewEvent(&event.Context{
		RunID:     runID,
		RFPID:     rfpID,
		EventType: string(n.Kind),
		Source:    notificationSource,
	}, n)
	publishCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		publishCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), lateNotifyTimeout)
		defer cancel()
	}
	if err := m.publisher.Publish(publishCtx, evt); err != nil {
		m.logger.Warn("notification dropped", "kind", n.Kind, "error", err)
	}
}
