package properties

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/homespark/campaigner/pkg/models"
)

const defaultTimeoutSeconds = 10

// HTTPSource fetches property listings from a JSON listing API.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a listing source against the given base URL. The
// source expects GET {baseURL}/properties/{id} to return the listing as JSON.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeoutSeconds * time.Second,
		},
	}
}

// Property fetches one listing. A 404 maps to ErrPropertyNotFound.
func (s *HTTPSource) Property(ctx context.Context, id string) (*models.Property, error) {
	url := s.baseURL + "/properties/" + id

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("property %s: %w", id, ErrPropertyNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing API returned status %d for property %s", resp.StatusCode, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing response: %w", err)
	}

	var property models.Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}

	return &property, nil
}
