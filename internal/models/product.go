package models

import "time"

type Category string

const (
	CategoryBed      Category = "bed"
	CategorySofa     Category = "sofa"
	CategoryCupboard Category = "cupboard"
	CategoryDoor     Category = "door"
	CategoryDining   Category = "dining"
)

type Product struct {
	ID            int64     `json:"id"`
	NameBn        string    `json:"nameBn"`
	NameEn        string    `json:"nameEn"`
	Price         float64   `json:"price"`
	DescriptionBn string    `json:"descriptionBn"`
	DescriptionEn string    `json:"descriptionEn"`
	Image         string    `json:"image"`
	Category      Category  `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Name returns the product name for the given language, falling back to English.
func (p Product) Name(lang string) string {
	if lang == "bn" && p.NameBn != "" {
		return p.NameBn
	}

	return p.NameEn
}

// Image is the uploaded file handed to the product service.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateProductRequest struct {
	NameEn        string  `json:"nameEn" validate:"required,min=2,max=200"`
	NameBn        string  `json:"nameBn" validate:"required,min=2,max=200"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Category      string  `json:"category" validate:"required,oneof=bed sofa cupboard door dining"`
	DescriptionEn string  `json:"descriptionEn" validate:"max=5000"`
	DescriptionBn string  `json:"descriptionBn" validate:"max=5000"`
}

type UpdateProductRequest struct {
	NameEn        *string  `json:"nameEn,omitempty" validate:"omitempty,min=2,max=200"`
	NameBn        *string  `json:"nameBn,omitempty" validate:"omitempty,min=2,max=200"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,oneof=bed sofa cupboard door dining"`
	DescriptionEn *string  `json:"descriptionEn,omitempty" validate:"omitempty,max=5000"`
	DescriptionBn *string  `json:"descriptionBn,omitempty" validate:"omitempty,max=5000"`
}
