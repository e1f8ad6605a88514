package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/inference-directory/infdir/internal/models"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the Hugging Face datasets-server rows endpoint of the
// open inference pricing dataset.
const DefaultBaseURL = "https://datasets-server.huggingface.co/rows?dataset=cfahlgren1%2Fopen-inference-pricing&config=default&split=train"

// Page is one response of the paginated endpoint.
type Page struct {
	// Rows is the number of rows the endpoint returned, including rows
	// without a record. Pagination advances by Rows.
	Rows    int
	Records []models.Record
	// Total is the declared row count of the dataset; 0 when not declared.
	Total   int
	PerPage int
	Partial bool
}

// Source returns one page of the dataset.
type Source interface {
	FetchPage(ctx context.Context, offset, length int) (Page, error)
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int            `json:"row_idx"`
		Row    *models.Record `json:"row"`
	} `json:"rows"`
	NumRowsTotal   int  `json:"num_rows_total"`
	NumRowsPerPage int  `json:"num_rows_per_page"`
	Partial        bool `json:"partial"`
}

// HTTPSource reads pages from an offset/length paginated HTTP endpoint.
type HTTPSource struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPSource creates a source for baseURL. An empty baseURL selects
// DefaultBaseURL and a nil client selects http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{BaseURL: baseURL, HTTPClient: client}
}

func (s *HTTPSource) pageURL(offset, length int) (string, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(length))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage performs a single GET for the page. Failures are reported as
// *TransportError or *FormatError.
func (s *HTTPSource) FetchPage(ctx context.Context, offset, length int) (Page, error) {
	pageURL, err := s.pageURL(offset, length)
	if err != nil {
		return Page{}, &TransportError{Offset: offset, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, &TransportError{Offset: offset, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return Page{}, &TransportError{Offset: offset, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &TransportError{Offset: offset, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, &TransportError{Offset: offset, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return decodePage(offset, body)
}

func decodePage(offset int, body []byte) (Page, error) {
	if !gjson.ValidBytes(body) {
		return Page{}, &FormatError{Offset: offset, Reason: "response is not valid JSON"}
	}
	if !gjson.GetBytes(body, "rows").IsArray() {
		return Page{}, &FormatError{Offset: offset, Reason: "response has no rows array"}
	}

	var resp rowsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Page{}, &FormatError{Offset: offset, Reason: "failed to decode rows", Err: err}
	}

	page := Page{
		Rows:    len(resp.Rows),
		Records: make([]models.Record, 0, len(resp.Rows)),
		Total:   resp.NumRowsTotal,
		PerPage: resp.NumRowsPerPage,
		Partial: resp.Partial,
	}
	for _, row := range resp.Rows {
		if row.Row != nil {
			page.Records = append(page.Records, *row.Row)
		}
	}
	return page, nil
}
