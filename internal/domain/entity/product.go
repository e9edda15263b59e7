package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductItem publicación de un farmer. Las surprise bags llevan ventana de validez
// (StartTime, EndTime); el resto de productos las deja en nil.
// Deleted es soft-delete: el registro se conserva para no romper el historial de órdenes.
type ProductItem struct {
	ID            string
	FarmerID      string
	Name          string
	Quantity      int
	Price         decimal.Decimal
	ImgURL        string
	IsSurpriseBag bool
	StartTime     *time.Time
	EndTime       *time.Time
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAvailableAt evalúa la disponibilidad en el instante dado:
// producto normal: quantity > 0 y no borrado;
// surprise bag: además now estrictamente dentro de (StartTime, EndTime).
func (p *ProductItem) IsAvailableAt(now time.Time) bool {
	if p.Deleted || p.Quantity <= 0 {
		return false
	}
	if !p.IsSurpriseBag {
		return true
	}
	if p.StartTime == nil || p.EndTime == nil {
		return false
	}
	return now.After(*p.StartTime) && now.Before(*p.EndTime)
}
