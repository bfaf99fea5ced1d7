package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/calscribe/calscribe/internal/calendar"
	"github.com/calscribe/calscribe/internal/instrumentation"
	"github.com/calscribe/calscribe/internal/llm"
)

// ServerContext holds the shared state for the MCP server: the LLM
// extractor and per-account Google Calendar clients with lazy
// initialization.
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	extractor       llm.Extractor
	calendarClients map[string]*calendar.Client // account name to client
	metrics         *instrumentation.Metrics
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context. The extractor may be nil
// when no LLM provider is configured; tools that need it report the
// configuration error at call time.
func NewServerContext(ctx context.Context, extractor llm.Extractor) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		extractor:       extractor,
		calendarClients: make(map[string]*calendar.Client),
	}

	// Eagerly connect the default account when a token is already cached.
	// Other accounts are initialized lazily on first use.
	if calendar.HasToken() {
		client, err := calendar.NewClient(shutdownCtx)
		if err != nil {
			slog.Warn("failed to create calendar client for default account", "error", err)
		} else {
			sc.calendarClients["default"] = client
		}
	}

	return sc
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Extractor returns the configured LLM extractor, or nil.
func (sc *ServerContext) Extractor() llm.Extractor {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.extractor
}

// SetExtractor replaces the LLM extractor. Used by tests and by the serve
// command when the provider is configured after startup.
func (sc *ServerContext) SetExtractor(extractor llm.Extractor) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.extractor = extractor
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder for tool instrumentation
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// CalendarClientForAccount returns the Calendar client for a specific
// account, creating and caching it on first use. Returns nil if the
// account has no token.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create calendar client", "account", account, "error", err)
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
