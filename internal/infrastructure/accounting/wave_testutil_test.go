package accounting

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// Business fixtures shared across the adapter tests.
const (
	testBusinessPhoto = "Golden Hour Photography"
	testBusinessFilms = "Golden Hour Films"
	testTenantPhoto   = "biz-photo"
	testTenantFilms   = "biz-films"
)

// gqlCall records one request seen by the fake server.
type gqlCall struct {
	Key       string
	Variables map[string]any
}

// fakeWave is an httptest-backed stand-in for the accounting GraphQL API.
// Requests are dispatched by operation key derived from the query text.
type fakeWave struct {
	t   *testing.T
	srv *httptest.Server

	mu      sync.Mutex
	calls   []gqlCall
	counts  map[string]int
	respond map[string]func(vars map[string]any) (int, string)
}

func newFakeWave(t *testing.T) *fakeWave {
	f := &fakeWave{
		t:       t,
		counts:  make(map[string]int),
		respond: make(map[string]func(map[string]any) (int, string)),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeWave) handle(w http.ResponseWriter, r *http.Request) {
	if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	key := opKey(req.Query)
	f.mu.Lock()
	f.counts[key]++
	f.calls = append(f.calls, gqlCall{Key: key, Variables: req.Variables})
	fn := f.respond[key]
	f.mu.Unlock()

	if fn == nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "no handler for operation %q", key)
		return
	}
	status, body := fn(req.Variables)
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// opKey classifies a query/mutation by its distinguishing field name.
func opKey(query string) string {
	switch {
	case strings.Contains(query, "customerCreate"):
		return "customerCreate"
	case strings.Contains(query, "productCreate"):
		return "productCreate"
	case strings.Contains(query, "invoiceCreate"):
		return "invoiceCreate"
	case strings.Contains(query, "invoiceDelete"):
		return "invoiceDelete"
	case strings.Contains(query, "invoices("):
		return "invoices"
	case strings.Contains(query, "customers("):
		return "customers"
	case strings.Contains(query, "accounts("):
		return "accounts"
	case strings.Contains(query, "businesses("):
		return "businesses"
	default:
		return "unknown"
	}
}

func (f *fakeWave) on(key string, fn func(vars map[string]any) (int, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respond[key] = fn
}

func (f *fakeWave) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[key]
}

// callOrder returns the sequence of operation keys seen so far.
func (f *fakeWave) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	order := make([]string, len(f.calls))
	for i, c := range f.calls {
		order[i] = c.Key
	}
	return order
}

// lastCall returns the most recent call for an operation key.
func (f *fakeWave) lastCall(key string) (gqlCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Key == key {
			return f.calls[i], true
		}
	}
	return gqlCall{}, false
}

// dataResponse wraps a data payload in the GraphQL envelope.
func dataResponse(payload string) (int, string) {
	return http.StatusOK, `{"data":` + payload + `}`
}

// stubDirectory installs business and account listings for the two test
// businesses so initialization succeeds.
func (f *fakeWave) stubDirectory() {
	f.on("businesses", func(map[string]any) (int, string) {
		return dataResponse(`{"businesses":{"edges":[
			{"node":{"id":"` + testTenantPhoto + `","name":"` + testBusinessPhoto + `"}},
			{"node":{"id":"` + testTenantFilms + `","name":"` + testBusinessFilms + `"}}
		]}}`)
	})
	f.on("accounts", func(vars map[string]any) (int, string) {
		switch vars["businessId"] {
		case testTenantPhoto:
			return dataResponse(`{"business":{"accounts":{"edges":[
				{"node":{"id":"acc-photo-income","name":"Photography Sales","type":{"name":"INCOME"}}},
				{"node":{"id":"acc-photo-expense","name":"Production Supplies","type":{"name":"EXPENSE"}}}
			]}}}`)
		case testTenantFilms:
			return dataResponse(`{"business":{"accounts":{"edges":[
				{"node":{"id":"acc-films-income","name":"Film Production Sales","type":{"name":"INCOME"}}},
				{"node":{"id":"acc-films-expense","name":"Production Supplies","type":{"name":"EXPENSE"}}}
			]}}}`)
		default:
			return dataResponse(`{"business":null}`)
		}
	})
}

// newTestAdapter builds an adapter pointed at the fake server.
func newTestAdapter(t *testing.T, f *fakeWave, mutate ...func(*WaveConfig)) *WaveAdapter {
	cfg := &WaveConfig{
		APIBaseURL: f.srv.URL,
		Token:      "test-token",
		Businesses: []string{testBusinessPhoto, testBusinessFilms},
		AccountNames: map[string]AccountNames{
			testBusinessPhoto: {Income: "Photography Sales", Expense: "Production Supplies"},
			testBusinessFilms: {Income: "Film Production Sales", Expense: "Production Supplies"},
		},
		TitleOverrides: map[string]string{
			testBusinessFilms: "Golden Hour Films Production Invoice",
		},
		RateLimitRetryDelay: 10 * time.Millisecond,
	}
	for _, m := range mutate {
		m(cfg)
	}
	adapter, err := NewWaveAdapter(cfg, zap.NewNop())
	require.NoError(t, err)
	return adapter
}
