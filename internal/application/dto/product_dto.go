package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddProductRequest alta de producto por parte de un farmer.
type AddProductRequest struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	ImgURL   string          `json:"img_url"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes (y cantidad no negativa) pisan.
// La ventana solo aplica a surprise bags.
type UpdateProductRequest struct {
	ProductID string           `json:"product_id"`
	Name      *string          `json:"name,omitempty"`
	Quantity  *int             `json:"quantity,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ImgURL    *string          `json:"img_url,omitempty"`
	StartTime *time.Time       `json:"start_time,omitempty"`
	EndTime   *time.Time       `json:"end_time,omitempty"`
}

// CreateSurpriseBagRequest alta de una surprise bag con ventana de validez.
type CreateSurpriseBagRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Quantity  int       `json:"quantity"`
}

// ProductResponse producto expuesto por la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	FarmerID      string          `json:"farmer_id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	ImgURL        string          `json:"img_url"`
	IsSurpriseBag bool            `json:"is_surprise_bag"`
	StartTime     *time.Time      `json:"start_time,omitempty"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	Available     bool            `json:"available"`
}
