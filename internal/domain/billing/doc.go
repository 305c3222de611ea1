// Package billing defines the domain model for the multi-business invoicing
// integration: the normalized invoice and customer types, the error taxonomy
// shared across the accounting provider boundary, and the provider interface
// implemented by the accounting infrastructure adapter.
//
// The company operates two legal business entities behind a single accounting
// credential. Every operation is scoped to a business display name; the
// provider resolves that name to a tenant lazily and keeps the resolution
// cached until the active business changes.
package billing
