package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/htran/syllabuscal/internal/extract"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/source"
	"github.com/htran/syllabuscal/internal/store"
)

// SyncState represents the current state of a source sync operation.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the sync state for a single source.
type SyncStatus struct {
	SourceType source.SourceType
	State      SyncState
	LastSync   time.Time
	Error      error
}

// SyncResultMsg is a tea.Msg sent when a sync operation completes.
// Deadlines holds the deadlines extracted and stored during this poll.
type SyncResultMsg struct {
	Deadlines []model.Deadline
	Source    source.SourceType
	Error     error
	AuthError *AuthErrorMsg
}

// AuthErrorMsg is a tea.Msg sent when a source returns an authentication error.
type AuthErrorMsg struct {
	SourceType source.SourceType
	Message    string
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// sourceEntry holds a registered source and its poll interval.
type sourceEntry struct {
	src             source.Source
	pollIntervalSec int
}

// Poller orchestrates background polling of registered text sources. Each
// fetched item is run through the extraction engine exactly once; items
// already seen in this session are skipped so repeated polls do not stack
// duplicate deadlines in the store.
type Poller struct {
	store     store.Store
	sources   []sourceEntry
	statuses  map[source.SourceType]*SyncStatus
	seenItems map[string]bool
	resultCh  chan SyncResultMsg
	triggerCh chan source.SourceType
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a new Poller with the given store.
func New(s store.Store) *Poller {
	return &Poller{
		store:     s,
		statuses:  make(map[source.SourceType]*SyncStatus),
		seenItems: make(map[string]bool),
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan source.SourceType, 16),
		stopCh:    make(chan struct{}),
	}
}

// RegisterSource adds a source adapter to the poller.
func (p *Poller) RegisterSource(src source.Source, pollIntervalSec int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := src.Type()
	p.sources = append(p.sources, sourceEntry{
		src:             src,
		pollIntervalSec: pollIntervalSec,
	})
	p.statuses[st] = &SyncStatus{
		SourceType: st,
		State:      SyncIdle,
	}
}

// Start returns a tea.Cmd that starts all polling goroutines and
// subscribes to results. The returned command waits on the result
// channel and returns SyncResultMsg messages to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	sources := make([]sourceEntry, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	if len(sources) == 0 {
		return nil
	}

	for _, entry := range sources {
		go p.pollSource(entry)
	}

	return p.waitForResult()
}

// Stop halts all polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// RefreshAll triggers an immediate poll of all registered sources.
func (p *Poller) RefreshAll() tea.Cmd {
	p.mu.Lock()
	sources := make([]sourceEntry, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, entry := range sources {
		select {
		case p.triggerCh <- entry.src.Type():
		default:
			// Channel full; skip to avoid blocking
		}
	}

	return nil
}

// GetStatuses returns the current sync status of all registered sources.
func (p *Poller) GetStatuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		statuses = append(statuses, *s)
	}
	return statuses
}

// pollSource runs the polling loop for a single source.
func (p *Poller) pollSource(entry sourceEntry) {
	interval := time.Duration(entry.pollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 300 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	st := entry.src.Type()

	// Do an initial fetch immediately
	p.fetchAndExtract(entry, st)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetchAndExtract(entry, st)
		case triggerType := <-p.triggerCh:
			if triggerType == st {
				p.fetchAndExtract(entry, st)
			}
		}
	}
}

// fetchAndExtract performs a single fetch operation, runs extraction over
// each unseen item, appends the results to the store, and sends a
// SyncResultMsg on the result channel.
func (p *Poller) fetchAndExtract(entry sourceEntry, st source.SourceType) {
	p.setStatus(st, SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	result, err := entry.src.FetchTexts(ctx, source.FetchOptions{Limit: 50})
	if err != nil {
		p.setStatus(st, SyncError, err)

		// Detect auth errors and emit a specific message.
		if source.IsAuthError(err) {
			p.sendResult(SyncResultMsg{
				Source: st,
				Error:  err,
				AuthError: &AuthErrorMsg{
					SourceType: st,
					Message: fmt.Sprintf(
						"%s: authentication failed. Press 'c' to reconfigure.",
						st,
					),
				},
			})
			return
		}

		p.sendResult(SyncResultMsg{Source: st, Error: err})
		return
	}

	var extracted []model.Deadline
	for _, item := range result.Items {
		if p.markSeen(st, item.Key) {
			continue
		}
		extracted = append(extracted, extract.Extract(item.Content)...)
	}

	var stored []model.Deadline
	if len(extracted) > 0 {
		stored, err = p.store.AppendDeadlines(ctx, extracted)
		if err != nil {
			p.setStatus(st, SyncError, err)
			p.sendResult(SyncResultMsg{Source: st, Error: err})
			return
		}
	}

	p.setStatus(st, SyncIdle, nil)
	p.sendResult(SyncResultMsg{
		Deadlines: stored,
		Source:    st,
	})
}

// markSeen records an item key and reports whether it was already seen.
func (p *Poller) markSeen(st source.SourceType, key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	full := string(st) + "/" + key
	if p.seenItems[full] {
		return true
	}
	p.seenItems[full] = true
	return false
}

// setStatus updates the sync status for a source type.
func (p *Poller) setStatus(st source.SourceType, state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[st]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a SyncResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync result.
// This should be called after processing a SyncResultMsg to continue
// listening for future results.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
