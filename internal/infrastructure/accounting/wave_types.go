package accounting

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// GraphQL Envelope
// ---------------------------------------------------------------------------

// graphQLRequest is the wire shape of every request body.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is one entry of the top-level errors array.
type graphQLError struct {
	Message string `json:"message"`
}

// graphQLEnvelope is the { data, errors } response shape.
type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// waveInputError is a structured field-level validation failure returned
// inside a successful HTTP response, distinct from GraphQL-level errors.
type waveInputError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

func (e waveInputError) String() string {
	if len(e.Path) > 0 {
		return strings.Join(e.Path, ".") + ": " + e.Message + " (" + e.Code + ")"
	}
	return e.Message + " (" + e.Code + ")"
}

// joinInputErrors renders inputErrors[] for error wrapping, preserving every
// message and field path verbatim.
func joinInputErrors(errs []waveInputError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

// ---------------------------------------------------------------------------
// Scalar Normalization
// ---------------------------------------------------------------------------

// waveAmount decodes a monetary value that arrives either as a JSON number or
// as a decimal string, possibly with thousands separators. Absent or
// unparsable values decode to zero rather than failing the row.
type waveAmount struct {
	decimal.Decimal
}

func (a *waveAmount) UnmarshalJSON(data []byte) error {
	a.Decimal = decimal.Zero
	s := string(bytes.TrimSpace(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		a.Decimal = d
	}
	return nil
}

// waveTimeLayouts are the timestamp encodings observed on the wire: ISO-8601
// with and without fractional seconds or zone, plus bare dates.
var waveTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseWaveTime normalizes a wire timestamp. ok is false when the value is
// empty or matches no known layout.
func parseWaveTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range waveTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseWaveTimePtr is parseWaveTime for optional fields.
func parseWaveTimePtr(s string) *time.Time {
	if t, ok := parseWaveTime(s); ok {
		return &t
	}
	return nil
}

// ---------------------------------------------------------------------------
// Query Responses
// ---------------------------------------------------------------------------

type businessNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type businessListData struct {
	Businesses struct {
		Edges []struct {
			Node businessNode `json:"node"`
		} `json:"edges"`
	} `json:"businesses"`
}

type accountNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type struct {
		Name string `json:"name"`
	} `json:"type"`
}

type accountListData struct {
	Business *struct {
		Accounts struct {
			Edges []struct {
				Node accountNode `json:"node"`
			} `json:"edges"`
		} `json:"accounts"`
	} `json:"business"`
}

type customerNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerListData struct {
	Business *struct {
		Customers struct {
			Edges []struct {
				Node customerNode `json:"node"`
			} `json:"edges"`
		} `json:"customers"`
	} `json:"business"`
}

// wavePageInfo carries the pagination cursorless page counters.
type wavePageInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

type moneyNode struct {
	Value    waveAmount `json:"value"`
	Currency struct {
		Code string `json:"code"`
	} `json:"currency"`
}

type invoiceItemNode struct {
	Product struct {
		Name string `json:"name"`
	} `json:"product"`
	Quantity  waveAmount `json:"quantity"`
	UnitPrice waveAmount `json:"unitPrice"`
	Total     moneyNode  `json:"total"`
}

type invoiceNode struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	ViewURL      string            `json:"viewUrl"`
	Status       string            `json:"status"`
	CreatedAt    string            `json:"createdAt"`
	DueDate      string            `json:"dueDate"`
	Memo         string            `json:"memo"`
	Footer       string            `json:"footer"`
	LastSentAt   string            `json:"lastSentAt"`
	LastSentVia  string            `json:"lastSentVia"`
	LastViewedAt string            `json:"lastViewedAt"`
	Total        moneyNode         `json:"total"`
	Customer     *customerNode     `json:"customer"`
	Items        []invoiceItemNode `json:"items"`
}

type invoiceListData struct {
	Business *struct {
		Invoices *struct {
			PageInfo wavePageInfo `json:"pageInfo"`
			Edges    []struct {
				Node invoiceNode `json:"node"`
			} `json:"edges"`
		} `json:"invoices"`
	} `json:"business"`
}

// ---------------------------------------------------------------------------
// Mutation Responses
// ---------------------------------------------------------------------------

type customerCreateData struct {
	CustomerCreate *struct {
		DidSucceed  bool             `json:"didSucceed"`
		InputErrors []waveInputError `json:"inputErrors"`
		Customer    *struct {
			ID string `json:"id"`
		} `json:"customer"`
	} `json:"customerCreate"`
}

type productCreateData struct {
	ProductCreate *struct {
		DidSucceed  bool             `json:"didSucceed"`
		InputErrors []waveInputError `json:"inputErrors"`
		Product     *struct {
			ID string `json:"id"`
		} `json:"product"`
	} `json:"productCreate"`
}

type invoiceCreateData struct {
	InvoiceCreate *struct {
		DidSucceed  bool             `json:"didSucceed"`
		InputErrors []waveInputError `json:"inputErrors"`
		Invoice     *struct {
			ID      string `json:"id"`
			ViewURL string `json:"viewUrl"`
		} `json:"invoice"`
	} `json:"invoiceCreate"`
}

type invoiceDeleteData struct {
	InvoiceDelete *struct {
		DidSucceed  bool             `json:"didSucceed"`
		InputErrors []waveInputError `json:"inputErrors"`
	} `json:"invoiceDelete"`
}
