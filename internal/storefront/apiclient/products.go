package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
)

type ProductQuery struct {
	Category string
	Page     int
	PageSize int
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return values
}

func (c *Client) ListProducts(ctx context.Context, query ProductQuery) (*models.PaginatedResponse[*models.Product], error) {
	var page models.PaginatedResponse[*models.Product]
	if err := c.doJSON(ctx, http.MethodGet, "products", query.values(), nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, productPath(id), nil, nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateProduct uploads the product as multipart form data. The image is required.
func (c *Client) CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.Image) (*models.Product, error) {
	if image == nil {
		return nil, fmt.Errorf("product image is required")
	}

	fields := map[string]string{
		"nameEn":        req.NameEn,
		"nameBn":        req.NameBn,
		"price":         strconv.FormatFloat(req.Price, 'f', -1, 64),
		"category":      req.Category,
		"descriptionEn": req.DescriptionEn,
		"descriptionBn": req.DescriptionBn,
	}

	return c.sendProduct(ctx, http.MethodPost, "products", fields, image)
}

// UpdateProduct sends only the fields that are set.
func (c *Client) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest, image *models.Image) (*models.Product, error) {
	fields := map[string]string{}

	setField := func(name string, value *string) {
		if value != nil {
			fields[name] = *value
		}
	}
	setField("nameEn", req.NameEn)
	setField("nameBn", req.NameBn)
	setField("category", req.Category)
	setField("descriptionEn", req.DescriptionEn)
	setField("descriptionBn", req.DescriptionBn)
	if req.Price != nil {
		fields["price"] = strconv.FormatFloat(*req.Price, 'f', -1, 64)
	}

	return c.sendProduct(ctx, http.MethodPut, productPath(id), fields, image)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

func (c *Client) sendProduct(ctx context.Context, method, path string, fields map[string]string, image *models.Image) (*models.Product, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	if image != nil {
		part, err := writer.CreateFormFile("image", image.Filename)
		if err != nil {
			return nil, fmt.Errorf("writing image part: %w", err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, fmt.Errorf("writing image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := c.do(req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func productPath(id int64) string {
	return "products/" + strconv.FormatInt(id, 10)
}
