package accounting

import (
	"sync"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// WaveAdapter implements billing.InvoicingProvider against the accounting
// platform's GraphQL API. A single adapter serves every configured business;
// the lazily initialized active business context is the only shared mutable
// state and every mutation of it goes through mu.
type WaveAdapter struct {
	config *WaveConfig
	client *graphQLClient
	logger *zap.Logger

	mu           sync.Mutex
	active       *businessContext
	initializing bool
	waiters      []initWaiter
}

// businessContext caches the resolved identity of the active business. It is
// reset whenever the active business display name changes.
type businessContext struct {
	displayName      string
	tenantID         string
	incomeAccountID  string
	expenseAccountID string
	initialized      bool
}

// initWaiter is a caller parked while an initialization is in flight.
type initWaiter struct {
	ch chan error
}

// NewWaveAdapter creates an adapter, validating the config and filling its
// defaults.
func NewWaveAdapter(config *WaveConfig, logger *zap.Logger) (*WaveAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &WaveAdapter{
		config: config,
		client: newGraphQLClient(config, logger),
		logger: logger,
	}, nil
}

// Businesses returns the ordered set of configured business display names.
func (a *WaveAdapter) Businesses() []string {
	out := make([]string, len(a.config.Businesses))
	copy(out, a.config.Businesses)
	return out
}

// ActiveBusiness reports the active business display name and whether its
// context finished initializing.
func (a *WaveAdapter) ActiveBusiness() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return "", false
	}
	return a.active.displayName, a.active.initialized
}

// activeContext snapshots the active context. ok is false unless the context
// is initialized.
func (a *WaveAdapter) activeContext() (businessContext, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil || !a.active.initialized {
		return businessContext{}, false
	}
	return *a.active, true
}

var _ billing.InvoicingProvider = (*WaveAdapter)(nil)
