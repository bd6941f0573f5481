package domain

// ShippingFee is the flat surcharge applied to any non-empty cart.
const ShippingFee = 15.00

// CartItem is a single product-and-quantity pairing. Name, price and image are
// snapshots taken when the product was first added, so later catalog changes
// do not rewrite carts already in flight.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the session's line items in insertion order. At most one item
// exists per product id; quantities never drop below 1.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Totals derives the cart's money values. Shipping applies exactly once and
// only when the cart is non-empty.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Totals computes subtotal, shipping and total for the current items.
func (c *Cart) Totals() Totals {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	var shipping float64
	if subtotal > 0 {
		shipping = ShippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// ItemCount is the sum of all quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns a pointer to the item for productID, or nil when absent.
func (c *Cart) Find(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
