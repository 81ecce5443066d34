package dto

import (
	"time"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Icon  string              `json:"icon"`
	Color string              `json:"color"`
	Type  domain.CategoryType `json:"type" binding:"required,oneof=EXPENSE INCOME"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name  *string              `json:"name" binding:"omitempty,max=100"`
	Icon  *string              `json:"icon"`
	Color *string              `json:"color"`
	Type  *domain.CategoryType `json:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Icon          string              `json:"icon"`
	Color         string              `json:"color"`
	Type          domain.CategoryType `json:"type"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:            cat.ID,
		Name:          cat.Name,
		Icon:          cat.Icon,
		Color:         cat.Color,
		Type:          cat.Type,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
