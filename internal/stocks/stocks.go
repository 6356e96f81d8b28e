// Package stocks retrieves daily closing prices as CSV over HTTP and
// assembles them into chartable series.
package stocks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint serves daily history as CSV. It is a format string
// with one %s verb for the lowercased symbol.
const DefaultEndpoint = "https://stooq.com/q/d/l/?s=%s&i=d"

// DefaultDays bounds a series to the most recent trading days.
const DefaultDays = 90

var (
	// ErrNoHeader means the quote CSV did not start with the expected
	// Date,Open,High,Low,Close,Volume header row.
	ErrNoHeader = errors.New("stocks: quote CSV missing header row")
	// ErrNoData means no row of the quote CSV could be parsed.
	ErrNoData = errors.New("stocks: no usable rows in quote CSV")
)

// Series holds the daily closes for one symbol, oldest first.
type Series struct {
	Symbol string
	Dates  []time.Time
	Closes []float64
}

// Trim keeps only the most recent n samples.
func (s *Series) Trim(n int) {
	if n <= 0 || len(s.Dates) <= n {
		return
	}
	s.Dates = s.Dates[len(s.Dates)-n:]
	s.Closes = s.Closes[len(s.Closes)-n:]
}

// Client fetches daily close series over HTTP.
type Client struct {
	Endpoint string
	Days     int
	HTTP     *http.Client
}

// NewClient returns a client for endpoint, falling back to the default
// endpoint and day window when the arguments are zero.
func NewClient(endpoint string, days int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if days <= 0 {
		days = DefaultDays
	}
	return &Client{
		Endpoint: endpoint,
		Days:     days,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves and parses the series for one symbol, trimmed to the
// client's day window.
func (c *Client) Fetch(ctx context.Context, symbol string) (*Series, error) {
	url := fmt.Sprintf(c.Endpoint, strings.ToLower(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stocks: fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stocks: fetch %s: unexpected status %s", symbol, resp.Status)
	}
	s, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stocks: fetch %s: %w", symbol, err)
	}
	s.Symbol = strings.ToUpper(symbol)
	s.Trim(c.Days)
	return s, nil
}

// FetchAll retrieves each symbol in order, failing on the first error.
func (c *Client) FetchAll(ctx context.Context, symbols []string) ([]*Series, error) {
	out := make([]*Series, 0, len(symbols))
	for _, sym := range symbols {
		s, err := c.Fetch(ctx, sym)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Parse reads a Date,Open,High,Low,Close,Volume CSV. The header row is
// mandatory; data rows with unparseable dates or closes are skipped,
// surviving rows keep their input order.
func Parse(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, ErrNoHeader
	}
	if len(header) < 5 || !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, ErrNoHeader
	}
	s := &Series{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stocks: read quote CSV: %w", err)
		}
		if len(rec) < 5 {
			continue
		}
		day, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
		if err != nil {
			continue
		}
		closeVal, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
		if err != nil {
			continue
		}
		s.Dates = append(s.Dates, day)
		s.Closes = append(s.Closes, closeVal)
	}
	if len(s.Dates) == 0 {
		return nil, ErrNoData
	}
	return s, nil
}
