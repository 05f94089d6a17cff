package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductSnapshot holds the product fields copied into a cart line when it is
// first added. It is deliberately decoupled from the live product and is not
// refreshed when the product is edited later.
type ProductSnapshot struct {
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	OldPrice    float64 `json:"old_price" bson:"old_price"`
	NewPrice    float64 `json:"new_price" bson:"new_price"`
	Colour      string  `json:"colour" bson:"colour"`
	Image       string  `json:"image" bson:"image"`
}

// CartLine is one product+size entry in a user's cart.
type CartLine struct {
	ProductID       string `json:"productId" bson:"productId"`
	Size            string `json:"size" bson:"size"`
	Quantity        int    `json:"quantity" bson:"quantity"`
	ProductSnapshot `bson:",inline"`
}

// Cart is the ordered collection of lines owned by a user.
// At most one line exists per (product, size) pair.
type Cart []CartLine

// Find returns the index of the line matching productID and size, or -1.
func (c Cart) Find(productID, size string) int {
	for i, line := range c {
		if line.ProductID == productID && line.Size == size {
			return i
		}
	}
	return -1
}

// Add merges one unit of product in the given size into the cart.
// An existing line is incremented; otherwise a new line with quantity 1 and a
// snapshot of the product is appended.
func (c *Cart) Add(p *Product, size string) {
	if i := c.Find(p.ID, size); i >= 0 {
		(*c)[i].Quantity++
		return
	}
	*c = append(*c, CartLine{
		ProductID:       p.ID,
		Size:            size,
		Quantity:        1,
		ProductSnapshot: p.Snapshot(),
	})
}

// Remove takes one unit of the matching line out of the cart, dropping the
// line when its quantity reaches zero. The cart is left untouched and
// ErrCartLineNotFound is returned when no line matches.
func (c *Cart) Remove(productID, size string) error {
	i := c.Find(productID, size)
	if i < 0 {
		return ErrCartLineNotFound
	}
	if (*c)[i].Quantity > 1 {
		(*c)[i].Quantity--
		return nil
	}
	*c = append((*c)[:i], (*c)[i+1:]...)
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Total returns the sum of new_price × quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// MarshalJSON encodes an empty cart as [] rather than null.
func (c Cart) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]CartLine(c))
}

// Subtotal returns new_price × quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.NewPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartItemRequest is the body of the add/remove cart endpoints.
// For add, ItemID is the product display id; for remove it is the raw
// product reference stored on the cart line.
type CartItemRequest struct {
	ItemID json.RawMessage `json:"itemId"`
	Size   string          `json:"size"`
}

// CartResponse wraps the cart returned after a mutation.
type CartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cart    Cart   `json:"cart"`
}
