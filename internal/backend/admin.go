package backend

import (
	"context"
	"net/http"
	"net/url"

	"jewelry-storefront/internal/domain"
)

// AdminClient performs authenticated writes. The token comes from the admin
// session and is sent as a bearer token.
type AdminClient struct {
	c     *Client
	token string
}

func (c *Client) Admin(token string) *AdminClient {
	return &AdminClient{c: c, token: token}
}

func (a *AdminClient) CreateCategory(ctx context.Context, in domain.Category) (domain.Category, error) {
	var out domain.Category
	err := a.write(ctx, http.MethodPost, "/category", in, &out)
	return out, err
}

func (a *AdminClient) UpdateCategory(ctx context.Context, id string, in domain.Category) (domain.Category, error) {
	var out domain.Category
	err := a.write(ctx, http.MethodPut, "/category/"+url.PathEscape(id), in, &out)
	return out, err
}

func (a *AdminClient) DeleteCategory(ctx context.Context, id string) error {
	return a.write(ctx, http.MethodDelete, "/category/"+url.PathEscape(id), nil, nil)
}

func (a *AdminClient) CreateSubcategory(ctx context.Context, in domain.Subcategory) (domain.Subcategory, error) {
	var out domain.Subcategory
	err := a.write(ctx, http.MethodPost, "/subcategory", in, &out)
	return out, err
}

func (a *AdminClient) UpdateSubcategory(ctx context.Context, id string, in domain.Subcategory) (domain.Subcategory, error) {
	var out domain.Subcategory
	err := a.write(ctx, http.MethodPut, "/subcategory/"+url.PathEscape(id), in, &out)
	return out, err
}

func (a *AdminClient) DeleteSubcategory(ctx context.Context, id string) error {
	return a.write(ctx, http.MethodDelete, "/subcategory/"+url.PathEscape(id), nil, nil)
}

func (a *AdminClient) CreateProduct(ctx context.Context, in domain.Product) (domain.Product, error) {
	var out domain.Product
	err := a.write(ctx, http.MethodPost, "/products", in, &out)
	return out, err
}

func (a *AdminClient) UpdateProduct(ctx context.Context, id string, in domain.Product) (domain.Product, error) {
	var out domain.Product
	err := a.write(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in, &out)
	return out, err
}

func (a *AdminClient) DeleteProduct(ctx context.Context, id string) error {
	return a.write(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (a *AdminClient) write(ctx context.Context, method, path string, body, out any) error {
	if a.token == "" {
		return ErrNoToken
	}
	return a.c.do(ctx, method, a.c.adminURL+path, a.token, body, out)
}
