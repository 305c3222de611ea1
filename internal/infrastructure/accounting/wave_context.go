package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// EnsureReady guarantees the active business context targets the named
// business and has resolved its tenant and ledger-account identifiers.
//
// Fast path: active context already targets business and is initialized.
// While an initialization is in flight, callers queue; the ones targeting the
// in-flight business adopt its outcome, the rest wake afterwards and
// re-evaluate, so a switch never races the reset. Switching the target clears
// every derived identifier before resolution starts. A failed or cancelled
// initialization leaves the context uninitialized and retryable.
func (a *WaveAdapter) EnsureReady(ctx context.Context, business string) error {
	if business == "" {
		return fmt.Errorf("%w: business is required", billing.ErrInvalidInput)
	}

	for {
		a.mu.Lock()
		if a.active != nil && a.active.displayName == business && a.active.initialized {
			a.mu.Unlock()
			return nil
		}

		if a.initializing {
			target := a.active.displayName
			w := initWaiter{ch: make(chan error, 1)}
			a.waiters = append(a.waiters, w)
			a.mu.Unlock()

			select {
			case err := <-w.ch:
				if target == business {
					return err
				}
				continue
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", billing.ErrProviderUnavailable, ctx.Err())
			}
		}

		// Become the initializer. A target switch resets the context so no
		// stale tenant or account ID survives into the new resolution.
		if a.active == nil || a.active.displayName != business {
			a.active = &businessContext{displayName: business}
		}
		a.initializing = true
		a.mu.Unlock()

		err := a.initialize(ctx, business)

		a.mu.Lock()
		a.initializing = false
		waiters := a.waiters
		a.waiters = nil
		a.mu.Unlock()

		for _, w := range waiters {
			w.ch <- err
		}
		return err
	}
}

// initialize runs business resolution then account resolution and publishes
// the result into the active context. Both resolvers run outside the lock.
func (a *WaveAdapter) initialize(ctx context.Context, business string) error {
	tenantID, err := a.resolveBusiness(ctx, business)
	if err != nil {
		a.logger.Warn("Business resolution failed",
			zap.String("business", business),
			zap.Error(err))
		return err
	}

	names := a.config.AccountNamesFor(business)
	incomeID, expenseID, err := a.resolveAccounts(ctx, tenantID, names)
	if err != nil {
		a.logger.Warn("Account resolution failed",
			zap.String("business", business),
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return err
	}

	a.mu.Lock()
	if a.active != nil && a.active.displayName == business {
		a.active.tenantID = tenantID
		a.active.incomeAccountID = incomeID
		a.active.expenseAccountID = expenseID
		a.active.initialized = true
	}
	a.mu.Unlock()

	a.logger.Info("Business context initialized",
		zap.String("business", business),
		zap.String("tenant_id", tenantID))
	return nil
}
