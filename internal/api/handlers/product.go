package handlers

import (
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	service "github.com/aaravmahajanofficial/furniture-storefront/internal/services"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
	maxUpload      int64
}

// NewProductHandler limits uploaded images to maxUploadMB megabytes.
func NewProductHandler(productService service.ProductService, maxUploadMB int64) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New(), maxUpload: maxUploadMB << 20}
}

// for eg: GET /api/products?category=bed&page=1&pageSize=20
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, size := utils.ParsePage(r)
		category := r.URL.Query().Get("category")

		if category != "" && h.validator.Var(category, "oneof=bed sofa cupboard door dining") != nil {
			response.Error(w, errors.AddValidationError("category", "must be one of bed, sofa, cupboard, door, dining"))
			return
		}

		products, err := h.productService.ListProducts(r.Context(), category, page, size)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.parseForm(w, r); err != nil {
			response.Error(w, err)
			return
		}

		price, err := parsePrice(r.PostForm.Get("price"))
		if err != nil {
			response.Error(w, err)
			return
		}

		req := models.CreateProductRequest{
			NameEn:        r.PostForm.Get("nameEn"),
			NameBn:        r.PostForm.Get("nameBn"),
			Price:         price,
			Category:      r.PostForm.Get("category"),
			DescriptionEn: r.PostForm.Get("descriptionEn"),
			DescriptionBn: r.PostForm.Get("descriptionBn"),
		}

		if !utils.Validate(w, &req, h.validator) {
			return
		}

		image, err := h.readImage(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req, image)
		if err != nil {
			logger.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.parseForm(w, r); err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest

		req.NameEn = optionalField(r, "nameEn")
		req.NameBn = optionalField(r, "nameBn")
		req.Category = optionalField(r, "category")
		req.DescriptionEn = optionalField(r, "descriptionEn")
		req.DescriptionBn = optionalField(r, "descriptionBn")

		if raw := optionalField(r, "price"); raw != nil {
			price, err := parsePrice(*raw)
			if err != nil {
				response.Error(w, err)
				return
			}
			req.Price = &price
		}

		if !utils.Validate(w, &req, h.validator) {
			return
		}

		image, err := h.readImage(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req, image)
		if err != nil {
			logger.Error("Error during product update", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
	}
}

// parseForm accepts multipart and urlencoded bodies; the image part is only
// available with multipart.
func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) error {

	// room for the text fields on top of the image
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+(1<<20))

	err := r.ParseMultipartForm(h.maxUpload)
	if err == nil || stdErrors.Is(err, http.ErrNotMultipart) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if stdErrors.As(err, &maxErr) {
		return errors.BadRequestError("Upload too large").WithDetail(fmt.Sprintf("limit is %d bytes", h.maxUpload))
	}

	return errors.BadRequestError("Invalid form body").WithDetail(err.Error())
}

func (h *ProductHandler) readImage(r *http.Request) (*models.Image, error) {

	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if stdErrors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.BadRequestError("Invalid image upload").WithDetail(err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		return nil, errors.BadRequestError("Failed to read image").WithError(err)
	}

	if int64(len(data)) > h.maxUpload {
		return nil, errors.BadRequestError("Upload too large").WithDetail(fmt.Sprintf("limit is %d bytes", h.maxUpload))
	}

	if len(data) == 0 {
		return nil, nil
	}

	return &models.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func optionalField(r *http.Request, name string) *string {
	values, ok := r.PostForm[name]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.AddValidationError("price", "must be a number")
	}

	return price, nil
}
