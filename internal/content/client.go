package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	// ErrHTMLResponse means the server answered with an HTML page, usually a
	// misrouted endpoint or a proxy error page.
	ErrHTMLResponse = errors.New("server returned HTML instead of JSON")
	// ErrUnexpectedContentType means the body is neither JSON nor HTML.
	ErrUnexpectedContentType = errors.New("unexpected response content type")
	// ErrTimeout means the request did not finish within the client timeout.
	ErrTimeout = errors.New("request timed out")
)

// StatusError reports an HTTP error status from the content API.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Fetcher loads every content section. *Client implements it; tests substitute
// fakes.
type Fetcher interface {
	FetchAll(ctx context.Context) Result
}

var _ Fetcher = (*Client)(nil)

// Observer is told about every section request as it completes.
type Observer interface {
	ObserveFetch(section Section, elapsed time.Duration, err error)
}

// Client talks to the lab's content APIs.
type Client struct {
	apiBase   *url.URL
	homeBase  *url.URL
	http      *http.Client
	userAgent string
	observer  Observer
}

const (
	defaultAPIBase   = "http://127.0.0.1:8000"
	defaultUserAgent = "lobby/0.1"
	// DefaultTimeout bounds a single section request.
	DefaultTimeout = 10 * time.Second
	maxSniffBytes  = 512
)

// NewClient builds a Client. apiBase serves every section except home, which
// comes from homeBase. An empty homeBase falls back to apiBase.
func NewClient(apiBase, homeBase string, timeout time.Duration) (*Client, error) {
	api, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	home := api
	if strings.TrimSpace(homeBase) != "" {
		home, err = parseBaseURL(homeBase)
		if err != nil {
			return nil, err
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiBase:   api,
		homeBase:  home,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// SetObserver installs o to receive per-section fetch outcomes.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// APIBase returns the base URL used for asset resolution.
func (c *Client) APIBase() *url.URL {
	u := *c.apiBase
	return &u
}

// Asset resolves an asset reference from a payload against the API base.
func (c *Client) Asset(ref string) string {
	return ResolveAsset(c.apiBase, ref)
}

// FetchHome retrieves the home page payload.
func (c *Client) FetchHome(ctx context.Context) (Home, error) {
	var payload Home
	if err := c.get(ctx, SectionHome, &payload); err != nil {
		return Home{}, err
	}
	return payload, nil
}

// FetchProjects retrieves every project across years.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	var payload struct {
		Projects []Project `json:"projects"`
	}
	if err := c.get(ctx, SectionProjects, &payload); err != nil {
		return nil, err
	}
	return payload.Projects, nil
}

// FetchPapers retrieves the paper list.
func (c *Client) FetchPapers(ctx context.Context) ([]Paper, error) {
	var payload struct {
		Papers []Paper `json:"papers"`
	}
	if err := c.get(ctx, SectionPapers, &payload); err != nil {
		return nil, err
	}
	return payload.Papers, nil
}

// FetchAwards retrieves the award list.
func (c *Client) FetchAwards(ctx context.Context) ([]Award, error) {
	var payload struct {
		Awards []Award `json:"awards"`
	}
	if err := c.get(ctx, SectionAwards, &payload); err != nil {
		return nil, err
	}
	return payload.Awards, nil
}

// FetchPatents retrieves the patent list.
func (c *Client) FetchPatents(ctx context.Context) ([]Patent, error) {
	var payload struct {
		Patents []Patent `json:"patents"`
	}
	if err := c.get(ctx, SectionPatents, &payload); err != nil {
		return nil, err
	}
	return payload.Patents, nil
}

// FetchSeminars retrieves the seminar list. Missing fields get placeholder
// values so every card renders.
func (c *Client) FetchSeminars(ctx context.Context) ([]Seminar, error) {
	var payload []Seminar
	if err := c.get(ctx, SectionSeminars, &payload); err != nil {
		return nil, err
	}
	for i := range payload {
		payload[i] = payload[i].withDefaults()
	}
	return payload, nil
}

// FetchAll requests every section concurrently. A failing section does not
// affect the others.
func (c *Client) FetchAll(ctx context.Context) Result {
	var (
		res Result
		mu  sync.Mutex
		wg  sync.WaitGroup
	)
	res.Errs = make(map[Section]error)

	fail := func(section Section, err error) {
		mu.Lock()
		res.Errs[section] = err
		mu.Unlock()
	}
	run := func(section Section, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := fn()
			if c.observer != nil {
				c.observer.ObserveFetch(section, time.Since(start), err)
			}
			if err != nil {
				fail(section, fmt.Errorf("%s: %w", section, err))
			}
		}()
	}

	run(SectionHome, func() (err error) {
		res.Bundle.Home, err = c.FetchHome(ctx)
		return err
	})
	run(SectionProjects, func() (err error) {
		res.Bundle.Projects, err = c.FetchProjects(ctx)
		return err
	})
	run(SectionPapers, func() (err error) {
		res.Bundle.Papers, err = c.FetchPapers(ctx)
		return err
	})
	run(SectionAwards, func() (err error) {
		res.Bundle.Awards, err = c.FetchAwards(ctx)
		return err
	})
	run(SectionPatents, func() (err error) {
		res.Bundle.Patents, err = c.FetchPatents(ctx)
		return err
	})
	run(SectionSeminars, func() (err error) {
		res.Bundle.Seminars, err = c.FetchSeminars(ctx)
		return err
	})

	wg.Wait()
	res.FetchedAt = time.Now()
	return res
}

func (c *Client) get(ctx context.Context, section Section, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	base := c.apiBase
	if section == SectionHome {
		base = c.homeBase
	}
	return c.doURL(ctx, combineURL(base, section.endpoint()), dest)
}

func (c *Client) doURL(ctx context.Context, reqURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s", ErrTimeout, reqURL)
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: req.URL.Path, Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isJSON(contentType) {
		sniff, _ := io.ReadAll(io.LimitReader(resp.Body, maxSniffBytes))
		if strings.HasPrefix(strings.TrimSpace(string(sniff)), "<!") {
			return fmt.Errorf("%w (url: %s)", ErrHTMLResponse, reqURL)
		}
		return fmt.Errorf("%w: %q", ErrUnexpectedContentType, contentType)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s", ErrTimeout, reqURL)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// combineURL joins base and endpoint with exactly one slash between them.
func combineURL(base *url.URL, endpoint string) string {
	return strings.TrimSuffix(base.String(), "/") + "/" + strings.TrimPrefix(endpoint, "/")
}
