package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU              string    `gorm:"uniqueIndex;not null" json:"sku"`
	Name             string    `gorm:"not null" json:"name"`
	Slug             string    `gorm:"uniqueIndex" json:"slug"`
	CategoryID       *uint     `json:"category_id"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Price            int64     `gorm:"not null" json:"price"` // poisha
	StockQuantity    int       `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	Sizes            []Size    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Colors           []Color   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`
	Images           []Image   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// InStock reports whether any units are left.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// CanOrder reports whether quantity units can be ordered right now.
// Inactive products are never orderable.
func (p *Product) CanOrder(quantity int) bool {
	return p.IsActive && quantity > 0 && p.StockQuantity >= quantity
}

// BeforeCreate fills the slug from the name when it was left empty.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// Size is a named size variant of one product (e.g. "M", "42").
type Size struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"uniqueIndex:idx_product_size" json:"product_id"`
	Name      string `gorm:"uniqueIndex:idx_product_size;not null" json:"name"`
}

// Color is a named color variant of one product.
type Color struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"uniqueIndex:idx_product_color" json:"product_id"`
	Name      string `gorm:"uniqueIndex:idx_product_color;not null" json:"name"`
	HexCode   string `json:"hex_code"`
}

type Image struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
}

// BeforeSave keeps at most one primary image per product.
func (i *Image) BeforeSave(tx *gorm.DB) error {
	if !i.IsPrimary {
		return nil
	}
	return tx.Model(&Image{}).
		Where("product_id = ? AND is_primary = ? AND id <> ?", i.ProductID, true, i.ID).
		Update("is_primary", false).Error
}

// PrimaryImage returns the primary image, or the first one as a fallback.
func (p *Product) PrimaryImage() *Image {
	for idx := range p.Images {
		if p.Images[idx].IsPrimary {
			return &p.Images[idx]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and dash-joins a name for URL use.
func Slugify(name string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
