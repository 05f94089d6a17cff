package model

import "time"

// Product represents a catalogue entry.
// ID is the internal storage reference; DisplayID is the sequential number
// shown to shoppers and used by the add-to-cart endpoint.
type Product struct {
	ID          string         `json:"_id" db:"id" bson:"_id"`
	DisplayID   int            `json:"id" db:"display_id" bson:"display_id"`
	Name        string         `json:"name" db:"name" bson:"name"`
	Description string         `json:"description" db:"description" bson:"description"`
	Images      []ProductImage `json:"images" db:"images" bson:"images"`
	Category    string         `json:"category" db:"category" bson:"category"`
	NewPrice    float64        `json:"new_price" db:"new_price" bson:"new_price"`
	OldPrice    float64        `json:"old_price" db:"old_price" bson:"old_price"`
	Colour      string         `json:"colour" db:"colour" bson:"colour"`
	Sizes       []SizeOption   `json:"sizes" db:"sizes" bson:"sizes"`
	Available   bool           `json:"available" db:"available" bson:"available"`
	CreatedAt   time.Time      `json:"date" db:"created_at" bson:"date"`
}

// ProductImage is a stored product picture.
type ProductImage struct {
	ID  string `json:"id" bson:"id"`
	URL string `json:"url" bson:"url"`
}

// SizeOption describes a size offered for a product.
type SizeOption struct {
	Name     string `json:"name" bson:"name"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// FirstImageURL returns the URL of the first image, or "" when there is none.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Snapshot captures the display and price fields copied into a cart line.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:        p.Name,
		Description: p.Description,
		OldPrice:    p.OldPrice,
		NewPrice:    p.NewPrice,
		Colour:      p.Colour,
		Image:       p.FirstImageURL(),
	}
}

// ProductRequest represents the admin payload for creating a product.
type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	NewPrice    float64        `json:"new_price"`
	OldPrice    float64        `json:"old_price"`
	Colour      string         `json:"colour"`
	Sizes       []SizeOption   `json:"sizes"`
	Images      []ProductImage `json:"images"`
}

// RelatedProductsRequest is the body of POST /relatedproducts.
type RelatedProductsRequest struct {
	Category string `json:"category"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Success bool           `json:"success"`
	Images  []ProductImage `json:"images"`
}

// RemoveProductRequest is the body of POST /removeproduct.
type RemoveProductRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
