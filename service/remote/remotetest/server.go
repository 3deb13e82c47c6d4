// Package remotetest provides an in-process fake of the bid backend for
// tests. It speaks the same HTTP/JSON contract as the real service, keeps
// state in memory and supports failure injection and request gating.
package remotetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viant/bidflow/model"
)

// Operation names used for failure injection and call counting.
const (
	OpListRfps        = "listRfps"
	OpListProducts    = "listProducts"
	OpGetAnalytics    = "getAnalytics"
	OpUploadRfp       = "uploadRfp"
	OpStartProcessing = "startProcessing"
	OpSetStatus       = "setStatus"
)

type failure struct {
	statusCode int
	detail     string
	malformed  bool
}

// Server is a fake backend
type Server struct {
	*httptest.Server
	mux       sync.Mutex
	rfps      []*model.RFP
	products  []*model.Product
	results   map[string]*model.ProcessResult
	failures  map[string]failure
	calls     map[string]int
	gates     map[string]chan struct{}
	bids      map[string]*model.Bid
	uploads   []string
	statusLog []model.StatusUpdate
}

// Calls returns how many requests reached the operation handler.
func (s *Server) Calls(op string) int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.calls[op]
}

// Fail makes subsequent calls of op fail with the status code and detail.
func (s *Server) Fail(op string, statusCode int, detail string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.failures[op] = failure{statusCode: statusCode, detail: detail}
}

// Malform makes subsequent calls of op answer 200 with an unparsable body.
func (s *Server) Malform(op string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.failures[op] = failure{malformed: true}
}

// Recover clears an injected failure.
func (s *Server) Recover(op string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.failures, op)
}

// SetResult configures the processing outcome for an RFP.
func (s *Server) SetResult(rfpID string, result *model.ProcessResult) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.results[rfpID] = result
}

// Gate blocks processing of rfpID until the returned release function is
// called. Release is idempotent.
func (s *Server) Gate(rfpID string) (release func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	ch := make(chan struct{})
	s.gates[rfpID] = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// RFP returns a copy of the server side RFP.
func (s *Server) RFP(id string) *model.RFP {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, rfp := range s.rfps {
		if rfp.ID == id {
			return rfp.Clone()
		}
	}
	return nil
}

// Uploads returns uploaded file names.
func (s *Server) Uploads() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string{}, s.uploads...)
}

// StatusUpdates returns every accepted status update in arrival order.
func (s *Server) StatusUpdates() []model.StatusUpdate {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]model.StatusUpdate{}, s.statusLog...)
}

// enter counts the call and reports an injected failure, if any.
func (s *Server) enter(w http.ResponseWriter, op string) bool {
	s.mux.Lock()
	s.calls[op]++
	f, failed := s.failures[op]
	s.mux.Unlock()
	if !failed {
		return true
	}
	if f.malformed {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "{not json")
		return false
	}
	writeDetail(w, f.statusCode, f.detail)
	return false
}

func (s *Server) listRfps(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpListRfps) {
		return
	}
	s.mux.Lock()
	result := make([]*model.RFP, 0, len(s.rfps))
	for _, rfp := range s.rfps {
		result = append(result, rfp.Clone())
	}
	s.mux.Unlock()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpListProducts) {
		return
	}
	s.mux.Lock()
	result := append([]*model.Product{}, s.products...)
	s.mux.Unlock()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpGetAnalytics) {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	result := &model.Analytics{TotalRFPs: len(s.rfps)}
	counts := map[model.Status]int{}
	for _, rfp := range s.rfps {
		counts[rfp.Status]++
	}
	if len(s.rfps) > 0 {
		result.ApprovalRate = roundTo(float64(counts[model.StatusApproved])/float64(len(s.rfps))*100, 1)
	}
	var confidence float64
	for _, bid := range s.bids {
		result.TotalValue += bid.Pricing.Total
		confidence += bid.Confidence
	}
	if len(s.bids) > 0 {
		result.AvgConfidence = roundTo(confidence/float64(len(s.bids)), 1)
	}
	result.TotalValue = roundTo(result.TotalValue, 2)
	for _, status := range []model.Status{model.StatusPending, model.StatusProcessed, model.StatusApproved, model.StatusRejected} {
		name := string(status)
		result.StatusDistribution = append(result.StatusDistribution, model.StatusCount{
			Name:  strings.ToUpper(name[:1]) + name[1:],
			Value: counts[status],
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) uploadRfp(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpUploadRfp) {
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer file.Close()
	if !strings.HasSuffix(header.Filename, ".pdf") {
		writeDetail(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := time.Now()
	s.mux.Lock()
	rfp := &model.RFP{
		ID:      fmt.Sprintf("RFP-%d-%03d", now.Year(), len(s.rfps)+1),
		Client:  "Uploaded: " + header.Filename,
		Content: strings.TrimSpace(string(content)),
		Date:    now.Format("2006-01-02"),
		Status:  model.StatusPending,
	}
	s.rfps = append(s.rfps, rfp)
	s.uploads = append(s.uploads, header.Filename)
	s.mux.Unlock()
	writeJSON(w, http.StatusOK, rfp)
}

func (s *Server) startProcessing(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpStartProcessing) {
		return
	}
	request := &model.ProcessRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mux.Lock()
	gate := s.gates[request.RFPID]
	s.mux.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	rfp := s.lookup(request.RFPID)
	if rfp == nil {
		writeDetail(w, http.StatusNotFound, "RFP not found")
		return
	}
	result, ok := s.results[rfp.ID]
	if !ok {
		result = &model.ProcessResult{
			Logs: []model.AgentLogEntry{{Agent: "Sales Agent", Message: "No matching products found", Timestamp: time.Now().Format(model.TimestampLayout)}},
		}
	}
	if result.Bid != nil {
		rfp.Status = model.StatusProcessed
		s.bids[rfp.ID] = result.Bid
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request) {
	if !s.enter(w, OpSetStatus) {
		return
	}
	update := &model.StatusUpdate{}
	if err := json.NewDecoder(r.Body).Decode(update); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	rfp := s.lookup(chi.URLParam(r, "id"))
	if rfp == nil {
		writeDetail(w, http.StatusNotFound, "RFP not found")
		return
	}
	rfp.Status = update.Status
	s.statusLog = append(s.statusLog, *update)
	writeJSON(w, http.StatusOK, rfp)
}

func (s *Server) lookup(id string) *model.RFP {
	for _, rfp := range s.rfps {
		if rfp.ID == id {
			return rfp
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, map[string]string{"detail": detail})
}

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int64(v*scale+0.5)) / scale
}

// Router returns the chi router implementing the backend contract.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/rfps", s.listRfps)
	r.Get("/products", s.listProducts)
	r.Get("/analytics", s.getAnalytics)
	r.Post("/upload-rfp", s.uploadRfp)
	r.Post("/process-rfp", s.startProcessing)
	r.Put("/rfps/{id}/status", s.setStatus)
	return r
}

// NewServer starts a fake backend seeded with the supplied fixture. Close it
// when done.
func NewServer(fixture *Fixture) *Server {
	if fixture == nil {
		fixture = NewFixture()
	}
	ret := &Server{
		results:  map[string]*model.ProcessResult{},
		failures: map[string]failure{},
		calls:    map[string]int{},
		gates:    map[string]chan struct{}{},
		bids:     map[string]*model.Bid{},
	}
	for _, rfp := range fixture.RFPs {
		ret.rfps = append(ret.rfps, rfp.Clone())
	}
	ret.products = append(ret.products, fixture.Products...)
	for id, result := range fixture.Results {
		ret.results[id] = result
	}
	ret.Server = httptest.NewServer(ret.Router())
	return ret
}

