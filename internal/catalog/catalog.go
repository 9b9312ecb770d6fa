// Package catalog fetches and parses experiment metadata from the ENCODE
// report endpoint. The fetcher issues a single request and hands back the
// raw tab-separated payload; parsing into records is a separate step so
// that the raw report can be snapshotted for audit.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HerwigLab/IsoTools2/internal/errors"
)

// Query describes one catalog report request.
type Query struct {
	Type       string   // record type, e.g. "Experiment"
	AssayTitle string   // e.g. "long read RNA-seq"
	Organism   string   // scientific name
	FileTypes  []string // required file types, e.g. fastq, bam
}

// Client issues report requests against the catalog.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a catalog client. A timeout of 0 disables the
// client-side deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ReportURL builds the full report.tsv URL for a query.
func (c *Client) ReportURL(q Query) string {
	params := url.Values{}
	params.Set("type", q.Type)
	if q.AssayTitle != "" {
		params.Set("assay_title", q.AssayTitle)
	}
	if q.Organism != "" {
		params.Set("replicates.library.biosample.donor.organism.scientific_name", q.Organism)
	}
	for _, ft := range q.FileTypes {
		params.Add("files.file_type", ft)
	}
	params.Set("limit", "all")

	return c.BaseURL + "/report.tsv?" + params.Encode()
}

// FetchReport issues the catalog request and returns the raw tab-separated
// payload. Failures are not retried; catalog errors are expected to be
// inspected manually.
func (c *Client) FetchReport(ctx context.Context, q Query) ([]byte, error) {
	const op = errors.Op("catalog.FetchReport")

	reqURL := c.ReportURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, err)
	}
	req.Header.Set("Accept", "text/tsv")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, "catalog request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.E(op, errors.KindNetwork,
			fmt.Sprintf("catalog returned HTTP %d", resp.StatusCode))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.E(op, errors.KindNetwork, "reading catalog response", err)
	}

	return payload, nil
}
