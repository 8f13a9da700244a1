package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type upload struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)

		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := newTestRequest(method, target, body.Bytes())
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestCreateProduct(t *testing.T) {
	fields := map[string]string{
		"nameEn":        "Teak Bed",
		"nameBn":        "সেগুন খাট",
		"price":         "45000",
		"category":      "bed",
		"descriptionEn": "Solid teak",
	}

	t.Run("Success - With image", func(t *testing.T) {
		// Arrange
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		file := &upload{name: "bed.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8, 0xff, 0xe0}}
		req := multipartRequest(t, http.MethodPost, "/api/products", fields, file)
		rr := httptest.NewRecorder()

		svc.On("CreateProduct", mock.Anything,
			mock.MatchedBy(func(r *models.CreateProductRequest) bool {
				return r.NameEn == "Teak Bed" && r.Price == 45000 && r.Category == "bed"
			}),
			mock.MatchedBy(func(img *models.Image) bool {
				return img != nil && img.Filename == "bed.jpg" && img.ContentType == "image/jpeg" && len(img.Data) == 4
			}),
		).Return(&models.Product{ID: 11, NameEn: "Teak Bed", Image: "/static/uploads/x.jpg"}, nil).Once()

		// Act
		h.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		got := decodeData[models.Product](t, rr)
		assert.Equal(t, int64(11), got.ID)
	})

	t.Run("Success - Without image", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		req := multipartRequest(t, http.MethodPost, "/api/products", fields, nil)
		rr := httptest.NewRecorder()

		svc.On("CreateProduct", mock.Anything, mock.Anything, (*models.Image)(nil)).Return(&models.Product{ID: 12}, nil).Once()

		h.CreateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Unknown category", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		bad := map[string]string{"nameEn": "Lamp", "nameBn": "বাতি", "price": "10", "category": "lamp"}
		rr := httptest.NewRecorder()

		h.CreateProduct().ServeHTTP(rr, multipartRequest(t, http.MethodPost, "/api/products", bad, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Price not a number", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		bad := map[string]string{"nameEn": "Bed", "nameBn": "খাট", "price": "cheap", "category": "bed"}
		rr := httptest.NewRecorder()

		h.CreateProduct().ServeHTTP(rr, multipartRequest(t, http.MethodPost, "/api/products", bad, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "price")
	})

	t.Run("Failure - Image too large", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		file := &upload{name: "huge.png", contentType: "image/png", data: bytes.Repeat([]byte{1}, (1<<20)+10)}
		rr := httptest.NewRecorder()

		h.CreateProduct().ServeHTTP(rr, multipartRequest(t, http.MethodPost, "/api/products", fields, file))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Success - Partial fields", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		req := multipartRequest(t, http.MethodPut, "/api/products/4", map[string]string{"price": "18000"}, nil)
		req.SetPathValue("id", "4")
		rr := httptest.NewRecorder()

		svc.On("UpdateProduct", mock.Anything, int64(4),
			mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
				return r.Price != nil && *r.Price == 18000 && r.NameEn == nil && r.Category == nil
			}),
			(*models.Image)(nil),
		).Return(&models.Product{ID: 4, Price: 18000}, nil).Once()

		h.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		req := multipartRequest(t, http.MethodPut, "/api/products/99", map[string]string{"nameEn": "Chair"}, nil)
		req.SetPathValue("id", "99")
		rr := httptest.NewRecorder()

		svc.On("UpdateProduct", mock.Anything, int64(99), mock.Anything, mock.Anything).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		h.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		req := newTestRequest(http.MethodGet, "/api/products/4", nil)
		req.SetPathValue("id", "4")
		rr := httptest.NewRecorder()

		svc.On("GetProductByID", mock.Anything, int64(4)).Return(&models.Product{ID: 4, NameEn: "Sofa"}, nil).Once()

		h.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Sofa", decodeData[models.Product](t, rr).NameEn)
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		req := newTestRequest(http.MethodGet, "/api/products/abc", nil)
		req.SetPathValue("id", "abc")
		rr := httptest.NewRecorder()

		h.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("Success - Category filter", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		rr := httptest.NewRecorder()

		svc.On("ListProducts", mock.Anything, "sofa", 2, 5).
			Return(&models.PaginatedResponse[*models.Product]{Data: []*models.Product{{ID: 1}}, Total: 6, Page: 2, PageSize: 5}, nil).Once()

		h.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/products?category=sofa&page=2&pageSize=5", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		got := decodeData[models.PaginatedResponse[models.Product]](t, rr)
		assert.Equal(t, 6, got.Total)
		assert.Len(t, got.Data, 1)
	})

	t.Run("Failure - Unknown category", func(t *testing.T) {
		svc := mocks.NewProductService(t)
		h := handlers.NewProductHandler(svc, 1)
		rr := httptest.NewRecorder()

		h.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/products?category=lamp", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	svc := mocks.NewProductService(t)
	h := handlers.NewProductHandler(svc, 1)
	req := newTestRequest(http.MethodDelete, "/api/products/4", nil)
	req.SetPathValue("id", "4")
	rr := httptest.NewRecorder()

	svc.On("DeleteProduct", mock.Anything, int64(4)).Return(nil).Once()

	h.DeleteProduct().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Product deleted successfully")
}
