// Package backend is the HTTP client for the catalog backend. Every call is a
// single attempt; failures are returned to the caller as-is.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jewelry-storefront/internal/domain"
)

// ErrNoToken is returned by admin calls made without a session token.
var ErrNoToken = errors.New("no authentication token found, please login")

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match status classes with the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrConflict:
		return e.Status == http.StatusConflict
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

type Options struct {
	PublicURL  string
	AdminURL   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the public catalog endpoints. Admin returns a client bound
// to an admin token.
type Client struct {
	publicURL string
	adminURL  string
	http      *http.Client
	validate  *validator.Validate
	logger    *zap.Logger
}

func New(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		adminURL:  strings.TrimRight(opts.AdminURL, "/"),
		http:      hc,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Ping checks that the backend answers the category listing.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.publicURL+"/categories", "", nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, c.publicURL+"/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return keepValid(c, domain.KindCategory, out), nil
}

func (c *Client) Subcategories(ctx context.Context) ([]domain.Subcategory, error) {
	var out []domain.Subcategory
	if err := c.do(ctx, http.MethodGet, c.publicURL+"/subcategories", "", nil, &out); err != nil {
		return nil, err
	}
	return keepValid(c, domain.KindSubcategory, out), nil
}

// SubcategoriesByCategory asks the backend for one category's subcategories.
func (c *Client) SubcategoriesByCategory(ctx context.Context, categorySlug string) ([]domain.Subcategory, error) {
	var out []domain.Subcategory
	u := c.publicURL + "/subcategories/category/" + url.PathEscape(categorySlug)
	if err := c.do(ctx, http.MethodGet, u, "", nil, &out); err != nil {
		return nil, err
	}
	return keepValid(c, domain.KindSubcategory, out), nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, c.publicURL+"/products", "", nil, &out); err != nil {
		return nil, err
	}
	return keepValid(c, domain.KindProduct, out), nil
}

// ProductBySlug returns domain.ErrNotFound (via errors.Is) for unknown slugs.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, c.publicURL+"/products/slug/"+url.PathEscape(slug), "", nil, &out); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("product %q: %w: %v", slug, domain.ErrValidation, err)
	}
	return &out, nil
}

func (c *Client) Collections(ctx context.Context) ([]domain.Collection, error) {
	var out []domain.Collection
	if err := c.do(ctx, http.MethodGet, c.publicURL+"/collections", "", nil, &out); err != nil {
		return nil, err
	}
	return keepValid(c, domain.KindCollection, out), nil
}

func (c *Client) do(ctx context.Context, method, u, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, u, err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("url", u), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, u, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// keepValid drops records that fail boundary validation so they never reach
// the catalog store.
func keepValid[T any](c *Client, kind domain.EntityKind, items []T) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		if err := c.validate.Struct(item); err != nil {
			c.logger.Warn("dropping invalid backend record",
				zap.String("kind", string(kind)),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		out = append(out, item)
	}
	return out
}
