package memory

import (
	"context"
	"errors"
	"log/slog"

	approval "github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/dao"
	"github.com/viant/bidflow/service/dao/store"
	"github.com/viant/bidflow/service/messaging"
	qmem "github.com/viant/bidflow/service/messaging/memory"
)

type service struct {
	decDAO *store.MemoryStore[string, approval.Decision]
	events messaging.Queue[approval.Event]
	logger *slog.Logger
}

func decKey(d *approval.Decision) string { return d.RFPID }

// New creates an in-memory decision ledger.
func New(options ...Option) approval.Service {
	ret := &service{
		decDAO: store.NewMemoryStore[string, approval.Decision](decKey),
		events: qmem.NewQueue[approval.Event](qmem.DefaultConfig()),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (s *service) Record(ctx context.Context, d *approval.Decision) error {
	if d == nil {
		return errors.New("invalid decision")
	}
	topic := approval.TopicDecisionCreated
	if prev, _ := s.decDAO.Load(ctx, d.RFPID); prev != nil {
		topic = approval.TopicDecisionReplaced
	}
	if err := s.decDAO.Save(ctx, d); err != nil {
		return err
	}
	if err := s.events.Publish(ctx, &approval.Event{Topic: topic, Data: d}); err != nil {
		s.logger.Warn("decision event dropped", "topic", topic, "rfp", d.RFPID, "error", err)
	}
	return nil
}

func (s *service) Lookup(ctx context.Context, rfpID string) (*approval.Decision, error) {
	return s.decDAO.Load(ctx, rfpID)
}

func (s *service) List(ctx context.Context) ([]*approval.Decision, error) {
	return s.decDAO.List(ctx)
}

func (s *service) Queue() messaging.Queue[approval.Event] { return s.events }

var _ approval.Service = (*service)(nil)
var _ dao.Service[string, approval.Decision] = (*store.MemoryStore[string, approval.Decision])(nil)
