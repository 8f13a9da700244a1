package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/cache"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/errors"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/images"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/utils"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.Image) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest, image *models.Image) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, category string, page, pageSize int) (*models.PaginatedResponse[*models.Product], error)
}

type productService struct {
	repo   repository.ProductRepository
	cache  cache.Cache
	images images.Store
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, images images.Store) ProductService {
	return &productService{repo: repo, cache: cache, images: images}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.Image) (*models.Product, error) {

	product := &models.Product{
		NameEn:        utils.Sanitize(req.NameEn),
		NameBn:        utils.Sanitize(req.NameBn),
		Price:         req.Price,
		Category:      models.Category(req.Category),
		DescriptionEn: utils.Sanitize(req.DescriptionEn),
		DescriptionBn: utils.Sanitize(req.DescriptionBn),
	}

	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.removeImage(ctx, product.Image)
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest, image *models.Image) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.NameEn != nil {
		product.NameEn = utils.Sanitize(*req.NameEn)
	}
	if req.NameBn != nil {
		product.NameBn = utils.Sanitize(*req.NameBn)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = models.Category(*req.Category)
	}
	if req.DescriptionEn != nil {
		product.DescriptionEn = utils.Sanitize(*req.DescriptionEn)
	}
	if req.DescriptionBn != nil {
		product.DescriptionBn = utils.Sanitize(*req.DescriptionBn)
	}

	oldImage := product.Image
	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Image = url
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if image != nil {
			s.removeImage(ctx, product.Image)
		}
		if isNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	// the old photo goes only once the row points at the new one
	if image != nil && oldImage != "" {
		s.removeImage(ctx, oldImage)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("Product not found").WithError(err)
		}
		return errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if isNotFound(err) {
			return errors.NotFoundError("Product not found").WithError(err)
		}
		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.removeImage(ctx, product.Image)
	s.invalidate(ctx, id)

	return nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, category string, page, pageSize int) (*models.PaginatedResponse[*models.Product], error) {

	products, total, err := s.repo.ListProducts(ctx, category, page, pageSize)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return &models.PaginatedResponse[*models.Product]{Data: products, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *productService) saveImage(ctx context.Context, image *models.Image) (string, error) {

	url, err := s.images.Save(ctx, image)
	if err != nil {
		if stdErrors.Is(err, images.ErrUnsupportedType) {
			return "", errors.BadRequestError("Unsupported image type").WithDetail(image.Filename)
		}
		return "", errors.ThirdPartyError("Failed to store image").WithError(err)
	}

	return url, nil
}

func (s *productService) removeImage(ctx context.Context, url string) {

	if url == "" {
		return
	}

	if err := s.images.Delete(ctx, url); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to remove product image", slog.String("image", url), slog.Any("error", err))
	}
}

func (s *productService) invalidate(ctx context.Context, id int64) {

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id), cache.Key(cache.RatingKeyPrefix, id)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.Int64("productId", id), slog.Any("error", err))
	}
}
