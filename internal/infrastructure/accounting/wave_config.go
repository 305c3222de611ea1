package accounting

import (
	"errors"
	"fmt"
	"time"
)

// WaveProductionAPIURL is the fixed public GraphQL endpoint of the accounting
// platform.
const WaveProductionAPIURL = "https://gql.waveapps.com/graphql/public"

// Defaults applied by Validate when a field is unset.
const (
	defaultTimeoutSeconds      = 30
	defaultBusinessPageSize    = 50
	defaultAccountPageSize     = 200
	defaultCustomerPageSize    = 200
	defaultInvoicePageSize     = 50
	defaultRateLimitRetryDelay = 2 * time.Second
)

// Configuration validation errors.
var (
	ErrWaveConfigMissingToken      = errors.New("wave: access token is required")
	ErrWaveConfigMissingBusinesses = errors.New("wave: at least one business must be configured")
)

// AccountNames pairs the income and expense ledger-account names a business
// uses when creating sellable products.
type AccountNames struct {
	Income  string `json:"income" mapstructure:"income"`
	Expense string `json:"expense" mapstructure:"expense"`
}

// DefaultAccountNames is the fallback pair for a business display name with
// no configured entry. Both accounts exist in a stock chart of accounts.
var DefaultAccountNames = AccountNames{
	Income:  "Sales",
	Expense: "Cost of Goods Sold",
}

// WaveConfig holds configuration for the accounting platform integration.
// One credential acts on behalf of every business in Businesses; account
// naming and invoice titling are per-business policy tables so the mapping
// stays testable and extensible.
type WaveConfig struct {
	// APIBaseURL is the GraphQL endpoint. Defaults to WaveProductionAPIURL.
	APIBaseURL string `json:"api_base_url" mapstructure:"api_base_url"`

	// Token is the bearer token shared by all configured businesses.
	Token string `json:"token" mapstructure:"token"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`

	// Businesses is the ordered, fixed set of business display names the
	// invoice reader aggregates over.
	Businesses []string `json:"businesses" mapstructure:"businesses"`

	// AccountNames maps a business display name to its ledger-account naming
	// convention. Unlisted businesses fall back to DefaultAccountNames.
	AccountNames map[string]AccountNames `json:"account_names" mapstructure:"account_names"`

	// TitleOverrides maps a business display name to a fixed invoice title
	// applied before submission, replacing whatever the caller supplied.
	TitleOverrides map[string]string `json:"title_overrides" mapstructure:"title_overrides"`

	// Page sizes for the list queries. The customer search is a single
	// bounded page, so its size is deliberately generous.
	BusinessPageSize int `json:"business_page_size" mapstructure:"business_page_size"`
	AccountPageSize  int `json:"account_page_size" mapstructure:"account_page_size"`
	CustomerPageSize int `json:"customer_page_size" mapstructure:"customer_page_size"`
	InvoicePageSize  int `json:"invoice_page_size" mapstructure:"invoice_page_size"`

	// RateLimitRetryDelay is the fixed pause before the single retry of a
	// rate-limited invoice page fetch. No other call is retried.
	RateLimitRetryDelay time.Duration `json:"rate_limit_retry_delay" mapstructure:"rate_limit_retry_delay"`
}

// NewWaveConfig creates a config for the production endpoint.
func NewWaveConfig(token string, businesses ...string) *WaveConfig {
	return &WaveConfig{
		APIBaseURL: WaveProductionAPIURL,
		Token:      token,
		Businesses: businesses,
	}
}

// Validate checks required fields and fills defaults.
func (c *WaveConfig) Validate() error {
	if c.Token == "" {
		return ErrWaveConfigMissingToken
	}
	if len(c.Businesses) == 0 {
		return ErrWaveConfigMissingBusinesses
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = WaveProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.BusinessPageSize <= 0 {
		c.BusinessPageSize = defaultBusinessPageSize
	}
	if c.AccountPageSize <= 0 {
		c.AccountPageSize = defaultAccountPageSize
	}
	if c.CustomerPageSize <= 0 {
		c.CustomerPageSize = defaultCustomerPageSize
	}
	if c.InvoicePageSize <= 0 {
		c.InvoicePageSize = defaultInvoicePageSize
	}
	if c.RateLimitRetryDelay <= 0 {
		c.RateLimitRetryDelay = defaultRateLimitRetryDelay
	}
	return nil
}

// AccountNamesFor returns the ledger-account naming convention for a business
// display name, falling back to DefaultAccountNames.
func (c *WaveConfig) AccountNamesFor(business string) AccountNames {
	if names, ok := c.AccountNames[business]; ok {
		return names
	}
	return DefaultAccountNames
}

// TitleFor returns the invoice title to submit for a business: the configured
// override when one exists, otherwise the caller-supplied title.
func (c *WaveConfig) TitleFor(business, title string) string {
	if override, ok := c.TitleOverrides[business]; ok && override != "" {
		return override
	}
	return title
}

// String implements fmt.Stringer without leaking the token.
func (c *WaveConfig) String() string {
	return fmt.Sprintf("WaveConfig{endpoint: %s, businesses: %d}", c.APIBaseURL, len(c.Businesses))
}
