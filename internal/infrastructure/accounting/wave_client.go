package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// maxResponseSize caps the response body read from the accounting API (10MB).
const maxResponseSize = 10 * 1024 * 1024

// graphQLClient issues signed GraphQL requests and classifies HTTP and
// GraphQL-level failures into the billing error taxonomy.
type graphQLClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func newGraphQLClient(config *WaveConfig, logger *zap.Logger) *graphQLClient {
	return &graphQLClient{
		endpoint: config.APIBaseURL,
		token:    config.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// execute posts a query with variables and decodes the data payload into out.
// Classification:
//
//	transport failure        -> billing.ErrProviderUnavailable
//	HTTP 401                 -> billing.ErrUnauthorized
//	HTTP 429                 -> billing.ErrRateLimited
//	other HTTP >= 400        -> billing.ErrProviderRejected
//	GraphQL errors[]         -> billing.ErrProviderRejected (messages joined)
//	missing/undecodable data -> billing.ErrInvalidResponse
func (c *graphQLClient) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("wave: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("wave: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", billing.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", billing.ErrProviderUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: HTTP 401", billing.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP 429", billing.ErrRateLimited)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: HTTP %d", billing.ErrProviderRejected, resp.StatusCode)
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: undecodable envelope: %v", billing.ErrInvalidResponse, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		c.logger.Debug("GraphQL request rejected", zap.Strings("errors", messages))
		return fmt.Errorf("%w: %s", billing.ErrProviderRejected, strings.Join(messages, "; "))
	}

	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: missing data payload", billing.ErrInvalidResponse)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrInvalidResponse, err)
	}
	return nil
}
