package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inovacc/phonebook/internal/model"
)

// Action is the value of the action field in the remote store protocol.
type Action string

const (
	ActionRead   Action = "read"
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// maxErrorBody bounds how much of a non-2xx body is quoted in errors.
const maxErrorBody = 512

// RemoteStore is the spreadsheet-backed API the directory mirrors.
// Implementations return *RemoteError when the store answers success:false
// and any other error for transport-level failures.
type RemoteStore interface {
	Read(ctx context.Context) ([]model.Record, error)
	Add(ctx context.Context, entry model.Record) error
	Update(ctx context.Context, rowIndex int, entry model.Record) error
	Delete(ctx context.Context, rowIndex int) error
}

// SheetClient is a client for the remote store endpoint
type SheetClient struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// SheetClientOptions configures the remote store client
type SheetClientOptions struct {
	// Timeout is the HTTP client timeout; zero keeps the transport default
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewSheetClient creates a new remote store client for endpoint
func NewSheetClient(endpoint string, opts SheetClientOptions) (*SheetClient, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint URL %q", endpoint)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	logger.Debug("creating remote store client", slog.String("endpoint", u.Redacted()))

	return &SheetClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		logger:     logger,
	}, nil
}

// Endpoint returns the configured endpoint URL.
func (c *SheetClient) Endpoint() string {
	return c.endpoint
}

// remoteResponse is the envelope every action answers with.
type remoteResponse struct {
	Success bool          `json:"success"`
	Data    []remoteEntry `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type remoteEntry struct {
	Location  cellString `json:"location"`
	Extension cellString `json:"extension"`
	Username  cellString `json:"username"`
}

// cellString decodes a spreadsheet cell that may arrive as a string, number,
// boolean or null.
type cellString string

func (s *cellString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		*s = cellString(v)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = cellString(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported cell value %s", data)
		}

		*s = cellString(n.String())
	}

	return nil
}

// Read fetches the full record list. RowIndex is assigned from each entry's
// position in the response.
func (c *SheetClient) Read(ctx context.Context) ([]model.Record, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	q := u.Query()
	q.Set("action", string(ActionRead))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req, ActionRead)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, &RemoteError{Action: ActionRead, Reason: reasonOrDefault(resp.Error)}
	}

	records := make([]model.Record, len(resp.Data))
	for i, e := range resp.Data {
		records[i] = model.Record{
			Location:  string(e.Location),
			Extension: string(e.Extension),
			Username:  string(e.Username),
			RowIndex:  i,
		}
	}

	c.logger.Debug("remote store read complete", slog.Int("records", len(records)))

	return records, nil
}

// Add submits a creation request.
func (c *SheetClient) Add(ctx context.Context, entry model.Record) error {
	form := url.Values{}
	form.Set("action", string(ActionAdd))
	setEntryFields(form, entry)

	return c.mutate(ctx, ActionAdd, form)
}

// Update submits a modification request addressed by rowIndex.
func (c *SheetClient) Update(ctx context.Context, rowIndex int, entry model.Record) error {
	form := url.Values{}
	form.Set("action", string(ActionUpdate))
	form.Set("rowIndex", strconv.Itoa(rowIndex))
	setEntryFields(form, entry)

	return c.mutate(ctx, ActionUpdate, form)
}

// Delete submits a deletion request addressed by rowIndex.
func (c *SheetClient) Delete(ctx context.Context, rowIndex int) error {
	form := url.Values{}
	form.Set("action", string(ActionDelete))
	form.Set("rowIndex", strconv.Itoa(rowIndex))

	return c.mutate(ctx, ActionDelete, form)
}

func setEntryFields(form url.Values, entry model.Record) {
	form.Set("location", entry.Location)
	form.Set("extension", entry.Extension)
	form.Set("username", entry.Username)
}

func (c *SheetClient) mutate(ctx context.Context, action Action, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req, action)
	if err != nil {
		return err
	}

	if !resp.Success {
		return &RemoteError{Action: action, Reason: reasonOrDefault(resp.Error)}
	}

	return nil
}

// do performs the request and decodes the response envelope
func (c *SheetClient) do(req *http.Request, action Action) (*remoteResponse, error) {
	c.logger.Debug("making remote store request",
		slog.String("method", req.Method),
		slog.String("action", string(action)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("remote store error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &out, nil
}

func reasonOrDefault(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return "unknown error"
	}

	return reason
}
