package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name_bn", "name_en", "price", "description_bn", "description_en", "image", "category", "created_at", "updated_at"}

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			product := &models.Product{
				NameBn:        "খাট",
				NameEn:        "Teak Bed",
				Price:         45000,
				DescriptionEn: "Solid teak",
				Image:         "/static/uploads/a.jpg",
				Category:      models.CategoryBed,
			}

			mock.ExpectQuery(`INSERT INTO products \(name_bn, name_en, price, description_bn, description_en, image, category\)`).
				WithArgs(product.NameBn, product.NameEn, product.Price, product.DescriptionBn, product.DescriptionEn, product.Image, product.Category).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(5), product.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			product := &models.Product{NameEn: "Broken", Category: models.CategorySofa}
			dbError := errors.New("database insertion error")

			mock.ExpectQuery(`INSERT INTO products`).WillReturnError(dbError)

			err := repo.CreateProduct(ctx, product)

			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			expected := &models.Product{
				ID: 7, NameBn: "সোফা", NameEn: "Sofa", Price: 250, DescriptionBn: "", DescriptionEn: "Three seater",
				Image: "/static/uploads/s.png", Category: models.CategorySofa, CreatedAt: now, UpdatedAt: now,
			}

			mock.ExpectQuery(`SELECT id, name_bn, name_en, .* FROM products WHERE id = \$1`).
				WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows(productColumns).AddRow(
					expected.ID, expected.NameBn, expected.NameEn, expected.Price, expected.DescriptionBn, expected.DescriptionEn,
					expected.Image, string(expected.Category), expected.CreatedAt, expected.UpdatedAt,
				))

			product, err := repo.GetProductByID(ctx, 7)

			require.NoError(t, err)
			assert.Equal(t, expected, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			mock.ExpectQuery(`FROM products WHERE id = \$1`).
				WithArgs(int64(404)).
				WillReturnError(sql.ErrNoRows)

			product, err := repo.GetProductByID(ctx, 404)

			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, product)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			product := &models.Product{ID: 7, NameEn: "Sofa XL", NameBn: "সোফা", Price: 300, Category: models.CategorySofa, Image: "/static/uploads/s.png"}

			mock.ExpectQuery(`UPDATE products SET name_bn = \$1`).
				WithArgs(product.NameBn, product.NameEn, product.Price, product.DescriptionBn, product.DescriptionEn, product.Image, product.Category, product.ID).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

			err := repo.UpdateProduct(ctx, product)

			require.NoError(t, err)
			assert.WithinDuration(t, now, product.UpdatedAt, time.Second)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("NotFound", func(t *testing.T) {
			product := &models.Product{ID: 70}

			mock.ExpectQuery(`UPDATE products SET`).WillReturnError(sql.ErrNoRows)

			err := repo.UpdateProduct(ctx, product)

			assert.ErrorIs(t, err, repository.ErrNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteProduct(ctx, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListProducts", func(t *testing.T) {
		t.Run("Filtered by category", func(t *testing.T) {
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE`).
				WithArgs("bed").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery(`FROM products\s+WHERE \(\$1 = '' OR category = \$1\)\s+ORDER BY id\s+LIMIT \$2 OFFSET \$3`).
				WithArgs("bed", 20, 20).
				WillReturnRows(sqlmock.NewRows(productColumns).AddRow(
					int64(1), "খাট", "Bed", 100.0, "", "", "/static/uploads/b.jpg", "bed", now, now,
				))

			products, total, err := repo.ListProducts(ctx, "bed", 2, 20)

			require.NoError(t, err)
			assert.Equal(t, 1, total)
			require.Len(t, products, 1)
			assert.Equal(t, models.CategoryBed, products[0].Category)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Count error", func(t *testing.T) {
			dbError := errors.New("count failed")
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE`).WillReturnError(dbError)

			products, total, err := repo.ListProducts(ctx, "", 1, 20)

			assert.ErrorIs(t, err, dbError)
			assert.Nil(t, products)
			assert.Zero(t, total)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
