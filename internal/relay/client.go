// Package relay is the HTTP client for the backend relay over the remote
// issue tracker: the record-fetch service everything else consumes. It
// exposes typed operations and drops unmodeled wire fields at this
// boundary.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/google/uuid"
)

// Config holds the relay connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend relay. The relay authenticates via a
// session cookie, so one Client carries one login.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// NewClient creates a relay client. A nil observer disables call logging.
func NewClient(cfg Config, observer Observer) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("relay base URL is required")
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
	}, nil
}

// Login opens a relay session for the given tracker organization.
func (c *Client) Login(ctx context.Context, organization, pat string) error {
	body := map[string]string{"organization": organization, "pat": pat}
	return c.doJSON(ctx, http.MethodPost, "/api/login", nil, body, nil)
}

// Logout clears the relay session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
}

// Session reports whether the relay session is authenticated and for
// which organization.
func (c *Client) Session(ctx context.Context) (bool, string, error) {
	var out struct {
		Authenticated bool   `json:"authenticated"`
		Organization  string `json:"organization"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/session", nil, nil, &out); err != nil {
		return false, "", err
	}
	return out.Authenticated, out.Organization, nil
}

// ListProjects returns all tracker projects visible to the session.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out struct {
		Projects []wireProject `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(out.Projects))
	for _, p := range out.Projects {
		projects = append(projects, p.toDomain())
	}
	return projects, nil
}

// ListItems fetches one page of work items. An empty projectID queries
// all projects. hasMore signals that further pages exist.
func (c *Client) ListItems(ctx context.Context, projectID string, f ListFilters, page, pageSize int) ([]domain.WorkItem, bool, error) {
	params := url.Values{}
	if len(f.States) > 0 {
		params.Set("state", strings.Join(f.States, ","))
	}
	switch {
	case len(f.Types) > 0:
		params.Set("type", strings.Join(f.Types, ","))
	case f.ExcludeEpics:
		params.Set("type", NoEpicSentinel)
	}
	if f.Keyword != "" {
		params.Set("keyword", f.Keyword)
	}
	if f.AssignedTo != "" {
		params.Set("assignedTo", f.AssignedTo)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	path := "/api/todos"
	if projectID != "" {
		path = "/api/projects/" + url.PathEscape(projectID) + "/todos"
	}

	var out struct {
		Todos   []wireItem `json:"todos"`
		HasMore bool       `json:"hasMore"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, false, err
	}
	items := make([]domain.WorkItem, 0, len(out.Todos))
	for _, w := range out.Todos {
		items = append(items, w.toDomain(projectID))
	}
	return items, out.HasMore, nil
}

// ListDescendants fetches the full subtree under rootID in one call.
// Best effort: older relays answer 404 (see IsNotFound) and the caller
// falls back to manual paging.
func (c *Client) ListDescendants(ctx context.Context, projectID string, rootID int) ([]domain.WorkItem, error) {
	path := fmt.Sprintf("/api/projects/%s/todos/%d/descendants", url.PathEscape(projectID), rootID)
	var out struct {
		Todos []wireItem `json:"todos"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	items := make([]domain.WorkItem, 0, len(out.Todos))
	for _, w := range out.Todos {
		items = append(items, w.toDomain(projectID))
	}
	return items, nil
}

// GetItem fetches a single work item.
func (c *Client) GetItem(ctx context.Context, projectID string, id int) (domain.WorkItem, error) {
	path := fmt.Sprintf("/api/projects/%s/todos/%d", url.PathEscape(projectID), id)
	var out struct {
		Todo wireItem `json:"todo"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return domain.WorkItem{}, err
	}
	return out.Todo.toDomain(projectID), nil
}

// CreateItem creates a work item and returns the authoritative
// post-mutation record.
func (c *Client) CreateItem(ctx context.Context, projectID string, fields ItemFields) (domain.WorkItem, error) {
	path := "/api/projects/" + url.PathEscape(projectID) + "/todos"
	var out struct {
		Todo wireItem `json:"todo"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, fields, &out); err != nil {
		return domain.WorkItem{}, err
	}
	return out.Todo.toDomain(projectID), nil
}

// UpdateItem applies a partial update and returns the authoritative
// post-mutation record.
func (c *Client) UpdateItem(ctx context.Context, projectID string, id int, fields ItemFields) (domain.WorkItem, error) {
	path := fmt.Sprintf("/api/projects/%s/todos/%d", url.PathEscape(projectID), id)
	var out struct {
		Todo wireItem `json:"todo"`
	}
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, fields, &out); err != nil {
		return domain.WorkItem{}, err
	}
	return out.Todo.toDomain(projectID), nil
}

// DeleteItem soft-deletes a work item (the tracker moves it to Removed).
func (c *Client) DeleteItem(ctx context.Context, projectID string, id int) error {
	path := fmt.Sprintf("/api/projects/%s/todos/%d", url.PathEscape(projectID), id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListComments returns a work item's discussion, newest last.
func (c *Client) ListComments(ctx context.Context, projectID string, id int) ([]domain.Comment, error) {
	path := fmt.Sprintf("/api/projects/%s/todos/%d/comments", url.PathEscape(projectID), id)
	var out struct {
		Comments []wireComment `json:"comments"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(out.Comments))
	for _, w := range out.Comments {
		comments = append(comments, w.toDomain())
	}
	return comments, nil
}

// AddComment posts a comment and returns the stored copy.
func (c *Client) AddComment(ctx context.Context, projectID string, id int, text string) (domain.Comment, error) {
	path := fmt.Sprintf("/api/projects/%s/todos/%d/comments", url.PathEscape(projectID), id)
	var out struct {
		Comment wireComment `json:"comment"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, map[string]string{"text": text}, &out); err != nil {
		return domain.Comment{}, err
	}
	return out.Comment.toDomain(), nil
}

// ListTags returns the project's tag vocabulary, optionally filtered.
func (c *Client) ListTags(ctx context.Context, projectID, search string) ([]string, error) {
	return c.listStrings(ctx, projectID, "tags", search)
}

// ListAreaPaths returns the project's area path tree, flattened.
func (c *Client) ListAreaPaths(ctx context.Context, projectID, search string) ([]string, error) {
	return c.listStrings(ctx, projectID, "areas", search)
}

// ListIterationPaths returns the project's iteration path tree, flattened.
func (c *Client) ListIterationPaths(ctx context.Context, projectID, search string) ([]string, error) {
	return c.listStrings(ctx, projectID, "iterations", search)
}

// SearchIdentities resolves a partial name or email against the
// tracker's identity picker. An empty search returns no matches.
func (c *Client) SearchIdentities(ctx context.Context, search string) ([]domain.Identity, error) {
	if search == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("search", search)
	var out struct {
		Identities []wireIdentity `json:"identities"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/identities", params, nil, &out); err != nil {
		return nil, err
	}
	identities := make([]domain.Identity, 0, len(out.Identities))
	for _, w := range out.Identities {
		identities = append(identities, w.toDomain())
	}
	return identities, nil
}

func (c *Client) listStrings(ctx context.Context, projectID, kind, search string) ([]string, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	path := "/api/projects/" + url.PathEscape(projectID) + "/" + kind
	out := map[string][]string{}
	if err := c.doJSON(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out[kind], nil
}

// doJSON performs one relay round trip: JSON in, JSON out, error body
// decoded into the package error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Method: method, Path: path, RequestID: requestID,
			LatencyMs: time.Since(start).Milliseconds(), Err: err,
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.observer.OnCallComplete(CallEvent{
		Method: method, Path: path, RequestID: requestID,
		LatencyMs: time.Since(start).Milliseconds(), Status: resp.StatusCode,
	})

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
