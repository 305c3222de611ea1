package billing

import "errors"

// Provider error taxonomy. Callers classify with errors.Is; the adapter wraps
// each sentinel with request-specific detail via %w.
var (
	// ErrProviderUnavailable indicates a transport-level failure (DNS, timeout,
	// connection reset). The whole operation may be retried by the caller.
	ErrProviderUnavailable = errors.New("billing: accounting provider unavailable")

	// ErrUnauthorized indicates the shared access credential was rejected
	// (HTTP 401). Not retried automatically; the credential needs rotation.
	ErrUnauthorized = errors.New("billing: accounting credential rejected")

	// ErrBusinessNotFound indicates no business visible to the credential
	// matches the requested display name.
	ErrBusinessNotFound = errors.New("billing: business not found")

	// ErrAccountNotFound indicates an expected ledger account is missing from
	// the tenant's chart of accounts. A remote configuration problem, not
	// transient; never retried automatically.
	ErrAccountNotFound = errors.New("billing: ledger account not found")

	// ErrProviderRejected carries GraphQL errors[] or structured inputErrors[]
	// verbatim. Usually reflects invalid input; not retried automatically.
	ErrProviderRejected = errors.New("billing: accounting provider rejected request")

	// ErrInvalidResponse indicates the response shape did not match
	// expectations, which usually means a remote API contract change.
	ErrInvalidResponse = errors.New("billing: invalid accounting provider response")

	// ErrNotInitialized indicates an operation was attempted before the active
	// business context finished initializing.
	ErrNotInitialized = errors.New("billing: business context not initialized")

	// ErrRateLimited indicates the provider signalled a rate limit (HTTP 429).
	ErrRateLimited = errors.New("billing: accounting provider rate limited")

	// ErrInvalidInput indicates the request failed local validation before any
	// remote call was made.
	ErrInvalidInput = errors.New("billing: invalid input")
)
