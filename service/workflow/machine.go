package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/viant/bidflow/internal/clock"
	"github.com/viant/bidflow/internal/idgen"
	"github.com/viant/bidflow/model"
	"github.com/viant/bidflow/progress"
	"github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/dao"
	"github.com/viant/bidflow/service/dao/criteria"
	"github.com/viant/bidflow/service/dao/store"
	"github.com/viant/bidflow/service/document"
	"github.com/viant/bidflow/service/event"
	"github.com/viant/bidflow/service/export"
	"github.com/viant/bidflow/service/playback"
	"github.com/viant/bidflow/service/remote"
	"github.com/viant/bidflow/tracing"
	"golang.org/x/sync/errgroup"
)

// Machine drives the review session. It is safe for concurrent use; the
// session lock is never held across a backend call or a playback delay.
type Machine struct {
	backend    remote.Backend
	player     *playback.Player
	exporter   Exporter
	ledger     approval.Service
	publisher  *event.Publisher[Notification]
	logger     *slog.Logger
	branding   document.Branding
	onProgress func(progress.Progress)

	rfps     *store.MemoryStore[string, model.RFP]
	products *store.MemoryStore[string, model.Product]

	mux       sync.Mutex
	session   Session
	analytics *model.Analytics
	run       *Run
	staged    *remote.File
	deciding  bool
	uploading bool

	// generation counts confirmed status updates; confirmed keeps the
	// acknowledged status until no refresh started before it is in flight
	generation uint64
	confirmed  map[string]confirmedStatus
	refreshes  map[uint64]int
}

type confirmedStatus struct {
	status     model.Status
	generation uint64
}

// Session returns a snapshot of the session.
func (m *Machine) Session() *Session {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.session.Clone()
}

// Run returns the run owning the session, if any.
func (m *Machine) Run() *Run {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.run
}

// Affordances derives the operations valid in the current state.
func (m *Machine) Affordances() Affordances {
	m.mux.Lock()
	defer m.mux.Unlock()
	awaiting := m.session.Phase == PhaseAwaitingApproval && !m.deciding
	return Affordances{
		CanSelect:  true,
		CanApprove: awaiting,
		CanReject:  awaiting,
		CanExport:  m.session.Bid != nil,
		CanUpload:  m.staged != nil && !m.uploading,
	}
}

// RFPs returns the cached RFP list, optionally restricted to statuses.
func (m *Machine) RFPs(ctx context.Context, statuses ...model.Status) ([]*model.RFP, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		parameters = append(parameters, dao.NewParameter(criteria.StatusParameter, values...))
	}
	items, err := m.rfps.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	result := make([]*model.RFP, len(items))
	for i, item := range items {
		result[i] = item.Clone()
	}
	return result, nil
}

// RFP returns a cached RFP.
func (m *Machine) RFP(ctx context.Context, id string) (*model.RFP, error) {
	rfp, err := m.rfps.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return rfp.Clone(), nil
}

// Products returns the cached catalog.
func (m *Machine) Products(ctx context.Context) ([]*model.Product, error) {
	items, err := m.products.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*model.Product, len(items))
	for i, item := range items {
		product := *item
		result[i] = &product
	}
	return result, nil
}

// Analytics returns the cached analytics, nil before the first refresh.
func (m *Machine) Analytics() *model.Analytics {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.analytics == nil {
		return nil
	}
	ret := *m.analytics
	ret.StatusDistribution = append([]model.StatusCount{}, m.analytics.StatusDistribution...)
	return &ret
}

// Refresh loads RFPs, catalog and analytics concurrently and replaces the
// caches once all three succeeded.
func (m *Machine) Refresh(ctx context.Context) error {
	var (
		rfps      []*model.RFP
		products  []*model.Product
		analytics *model.Analytics
	)
	m.mux.Lock()
	started := m.generation
	m.refreshes[started]++
	m.mux.Unlock()
	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		rfps, err = m.backend.ListRfps(gCtx)
		return err
	})
	group.Go(func() (err error) {
		products, err = m.backend.ListProducts(gCtx)
		return err
	})
	group.Go(func() (err error) {
		analytics, err = m.backend.GetAnalytics(gCtx)
		return err
	})
	err := group.Wait()
	m.mux.Lock()
	defer m.mux.Unlock()
	m.endRefresh(started)
	if err != nil {
		return fmt.Errorf("failed to refresh: %w", err)
	}
	valid := rfps[:0]
	for _, rfp := range rfps {
		if rfp == nil || rfp.ID == "" {
			continue
		}
		if confirmed, ok := m.confirmed[rfp.ID]; ok && rfp.Status != confirmed.status {
			rfp = rfp.Clone()
			rfp.Status = confirmed.status
		}
		valid = append(valid, rfp)
	}
	if err := m.rfps.Replace(ctx, valid); err != nil {
		return err
	}
	if err := m.products.Replace(ctx, products); err != nil {
		return err
	}
	m.analytics = analytics
	if selected := m.session.SelectedRFP; selected != nil {
		if current, _ := m.rfps.Load(ctx, selected.ID); current != nil {
			m.session.SelectedRFP = current.Clone()
		}
	}
	m.logger.Debug("caches refreshed", "rfps", len(valid), "products", len(products))
	return nil
}

// endRefresh forgets confirmed statuses that every refresh still in flight
// started after.
func (m *Machine) endRefresh(started uint64) {
	m.refreshes[started]--
	if m.refreshes[started] <= 0 {
		delete(m.refreshes, started)
	}
	oldest := started
	for inflight := range m.refreshes {
		if inflight < oldest {
			oldest = inflight
		}
	}
	for id, confirmed := range m.confirmed {
		if confirmed.generation <= oldest {
			delete(m.confirmed, id)
		}
	}
}

// refreshBestEffort follows a confirmed mutation; failures never roll back.
func (m *Machine) refreshBestEffort(ctx context.Context, runID, rfpID string) {
	if err := m.Refresh(ctx); err != nil {
		m.logger.Warn("background refresh failed", "error", err)
		m.notify(ctx, runID, rfpID, Notification{Kind: NotifyWarning, Message: err.Error()})
	}
}

// Select makes rfpID the session RFP and starts processing it. An in-flight
// run is cancelled; from this point none of its effects reach the session.
func (m *Machine) Select(ctx context.Context, rfpID string) (*Run, error) {
	rfpID = model.NormalizeID(rfpID)
	rfp, err := m.rfps.Load(ctx, rfpID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownRFP, rfpID)
		}
		return nil, err
	}
	runCtx, cancel := context.WithCancel(ctx)
	run := newRun(idgen.New(), rfp.ID, cancel, m.onProgress)

	m.mux.Lock()
	previous := m.run
	m.run = run
	m.session.reset(rfp.Clone(), run.ID)
	m.mux.Unlock()

	if previous != nil {
		previous.cancel()
		m.logger.Debug("run superseded", "run", previous.ID, "rfp", previous.RFPID)
	}
	m.logger.Debug("phase changed", "phase", PhaseProcessing, "rfp", rfp.ID, "run", run.ID)
	m.notify(ctx, run.ID, rfp.ID, Notification{Kind: NotifyPhase, Phase: PhaseProcessing})
	go m.process(progress.WithTracker(runCtx, run.progress), run)
	return run, nil
}

// apply mutates the session only while run still owns it.
func (m *Machine) apply(runID string, fn func(s *Session)) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.session.RunID != runID {
		return false
	}
	fn(&m.session)
	return true
}

func (m *Machine) process(ctx context.Context, run *Run) {
	var err error
	ctx, span := tracing.StartSpan(ctx, "workflow.process", tracing.KindInternal)
	span.WithAttributes(map[string]string{"rfp.id": run.RFPID, "run.id": run.ID})
	defer func() {
		if errors.Is(err, ErrSuperseded) {
			tracing.EndSpan(span, nil)
		} else {
			tracing.EndSpan(span, err)
		}
		run.cancel()
		run.finish(err)
	}()

	result, callErr := m.backend.StartProcessing(ctx, run.RFPID)
	if callErr != nil {
		entry := model.SystemEntry(CommunicationFailureMessage, clock.Now())
		if !m.apply(run.ID, func(s *Session) {
			s.Logs = append(s.Logs, entry)
			s.Phase = PhaseError
			s.Err = callErr
		}) {
			err = ErrSuperseded
			return
		}
		err = callErr
		m.logger.Error("processing failed", "rfp", run.RFPID, "error", callErr)
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyLog, Entry: &entry})
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyPhase, Phase: PhaseError})
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyError, Message: callErr.Error()})
		return
	}

	progress.UpdateCtx(ctx, progress.Delta{Total: len(result.Logs)})
	span.WithInt("logs", len(result.Logs))
	playErr := m.player.Play(ctx, result.Logs, func(item playback.Append) error {
		entry := item.Entry
		if !m.apply(run.ID, func(s *Session) { s.Logs = append(s.Logs, entry) }) {
			return ErrSuperseded
		}
		progress.UpdateCtx(ctx, progress.Delta{Appended: 1})
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyLog, Entry: &entry})
		return nil
	})
	if playErr != nil {
		if errors.Is(playErr, ErrSuperseded) || !m.apply(run.ID, func(s *Session) {
			s.Phase = PhaseError
			s.Err = playErr
		}) {
			err = ErrSuperseded
			return
		}
		err = playErr
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyPhase, Phase: PhaseError})
		return
	}

	if !result.Success || result.Bid == nil {
		if !m.apply(run.ID, func(s *Session) {
			s.Phase = PhaseError
			s.Err = ErrNoBid
		}) {
			err = ErrSuperseded
			return
		}
		err = ErrNoBid
		m.logger.Error("processing failed", "rfp", run.RFPID, "error", ErrNoBid)
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyPhase, Phase: PhaseError})
		m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyError, Message: ErrNoBid.Error()})
		return
	}

	bid := result.Bid.Clone()
	if !bid.Pricing.Consistent() {
		m.logger.Warn("bid pricing figures do not add up", "rfp", run.RFPID, "total", bid.Pricing.Total)
	}
	if !m.apply(run.ID, func(s *Session) {
		s.Bid = bid
		s.Phase = PhaseAwaitingApproval
	}) {
		err = ErrSuperseded
		return
	}
	m.logger.Debug("phase changed", "phase", PhaseAwaitingApproval, "rfp", run.RFPID, "run", run.ID)
	m.notify(ctx, run.ID, run.RFPID, Notification{Kind: NotifyPhase, Phase: PhaseAwaitingApproval})
	m.refreshBestEffort(ctx, run.ID, run.RFPID)
}

// Approve approves the bid awaiting approval.
func (m *Machine) Approve(ctx context.Context) error {
	return m.decide(ctx, true, "")
}

// Reject rejects the bid awaiting approval.
func (m *Machine) Reject(ctx context.Context) error {
	return m.decide(ctx, false, "")
}

// Decide applies fn to the bid awaiting approval and approves or rejects it
// accordingly; the reason is recorded in the decision ledger.
func (m *Machine) Decide(ctx context.Context, fn approval.DecisionFunc) error {
	m.mux.Lock()
	bid := m.session.Bid.Clone()
	m.mux.Unlock()
	approved, reason := fn(bid)
	return m.decide(ctx, approved, reason)
}

func (m *Machine) decide(ctx context.Context, approved bool, reason string) error {
	m.mux.Lock()
	if m.session.Phase != PhaseAwaitingApproval {
		phase := m.session.Phase
		m.mux.Unlock()
		return fmt.Errorf("%w: cannot decide in phase %v", ErrInvalidTransition, phase)
	}
	if m.deciding {
		m.mux.Unlock()
		return ErrBusy
	}
	m.deciding = true
	runID := m.session.RunID
	rfpID := m.session.SelectedRFP.ID
	bid := m.session.Bid.Clone()
	m.mux.Unlock()
	defer func() {
		m.mux.Lock()
		m.deciding = false
		m.mux.Unlock()
	}()

	status, phase := model.StatusRejected, PhaseRejected
	if approved {
		status, phase = model.StatusApproved, PhaseApproved
	}
	updated, err := m.backend.SetStatus(ctx, rfpID, status)
	if err != nil {
		m.mux.Lock()
		if m.session.RunID == runID {
			m.session.Err = err
		}
		m.mux.Unlock()
		m.logger.Error("status update failed", "rfp", rfpID, "status", status, "error", err)
		m.notify(ctx, runID, rfpID, Notification{Kind: NotifyError, Message: err.Error()})
		return err
	}
	if updated != nil && updated.Status != "" {
		status = updated.Status
	}
	m.mux.Lock()
	m.generation++
	m.confirmed[rfpID] = confirmedStatus{status: status, generation: m.generation}
	if cached, _ := m.rfps.Load(ctx, rfpID); cached != nil {
		next := cached.Clone()
		next.Status = status
		_ = m.rfps.Save(ctx, next)
	}
	m.mux.Unlock()
	if m.ledger != nil {
		if err := m.ledger.Record(ctx, approval.NewDecision(bid, approved, reason, clock.Now())); err != nil {
			m.logger.Warn("failed to record decision", "rfp", rfpID, "error", err)
		}
	}
	changed := false
	m.apply(runID, func(s *Session) {
		if s.Phase != PhaseAwaitingApproval {
			return
		}
		s.Phase = phase
		s.Err = nil
		if s.SelectedRFP != nil {
			s.SelectedRFP.Status = status
		}
		changed = true
	})
	if changed {
		m.logger.Debug("phase changed", "phase", phase, "rfp", rfpID, "run", runID)
		m.notify(ctx, runID, rfpID, Notification{Kind: NotifyPhase, Phase: phase})
	}
	m.refreshBestEffort(ctx, runID, rfpID)
	return nil
}

// Export generates the proposal for the session bid and hands it to the
// exporter. The phase is left unchanged.
func (m *Machine) Export(ctx context.Context) (*export.Result, error) {
	m.mux.Lock()
	bid := m.session.Bid.Clone()
	runID := m.session.RunID
	m.mux.Unlock()
	if bid == nil {
		return nil, ErrNoBidToExport
	}
	if m.exporter == nil {
		return nil, fmt.Errorf("exporter was not configured")
	}
	doc, err := document.Generate(bid, clock.Now(), m.branding)
	if err != nil {
		return nil, err
	}
	result, err := m.exporter.Export(ctx, doc)
	if err != nil {
		m.notify(ctx, runID, bid.RFPID, Notification{Kind: NotifyError, Message: err.Error()})
		return nil, err
	}
	m.notify(ctx, runID, bid.RFPID, Notification{Kind: NotifyNotice, Message: "exported " + result.URL + " (" + strconv.FormatInt(result.Size, 10) + " bytes)"})
	return result, nil
}

// StageUpload sets the file to be sent by the next Upload.
func (m *Machine) StageUpload(file *remote.File) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.staged = file
	m.session.StagedFile = ""
	if file != nil {
		m.session.StagedFile = file.Name
	}
}

// Upload sends the staged file. The staged file is cleared whatever the
// outcome; a non PDF file fails validation without any backend call.
func (m *Machine) Upload(ctx context.Context) (*model.RFP, error) {
	m.mux.Lock()
	if m.uploading {
		m.mux.Unlock()
		return nil, ErrBusy
	}
	file := m.staged
	m.staged = nil
	m.session.StagedFile = ""
	m.uploading = true
	runID := m.session.RunID
	m.mux.Unlock()
	defer func() {
		m.mux.Lock()
		m.uploading = false
		m.mux.Unlock()
	}()

	rfp, err := m.backend.UploadRfp(ctx, file)
	if err != nil {
		m.mux.Lock()
		m.session.Err = err
		m.mux.Unlock()
		m.logger.Error("upload failed", "error", err)
		m.notify(ctx, runID, "", Notification{Kind: NotifyError, Message: err.Error()})
		return nil, err
	}
	rfp.ID = model.NormalizeID(rfp.ID)
	if err = m.rfps.Save(ctx, rfp.Clone()); err != nil {
		m.logger.Warn("failed to cache uploaded rfp", "error", err)
	}
	m.notify(ctx, runID, rfp.ID, Notification{Kind: NotifyNotice, Message: "uploaded " + rfp.ID})
	m.refreshBestEffort(ctx, runID, rfp.ID)
	return rfp, nil
}

// Close cancels the in-flight run, if any.
func (m *Machine) Close() {
	m.mux.Lock()
	run := m.run
	m.mux.Unlock()
	if run != nil {
		run.cancel()
	}
}

// New creates a state machine over the backend.
func New(backend remote.Backend, opts ...Option) *Machine {
	ret := &Machine{
		backend:  backend,
		player:   playback.New(playback.DefaultInterval),
		logger:   slog.Default(),
		branding: document.DefaultBranding(),
		rfps: store.NewMemoryStore[string, model.RFP](model.RFPKey,
			store.WithMatcher[string, model.RFP](func(rfp *model.RFP, parameters []*dao.Parameter) bool {
				return criteria.FilterByStatus(string(rfp.Status), parameters)
			})),
		products:  store.NewMemoryStore[string, model.Product](model.ProductKey),
		session:   Session{Phase: PhaseIdle},
		confirmed: make(map[string]confirmedStatus),
		refreshes: make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
