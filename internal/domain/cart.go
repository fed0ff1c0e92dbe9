package domain

// CartItem is a product line in the cart. NegotiatedPrice overrides the list
// price when set.
type CartItem struct {
	Product         Product  `json:"product"`
	Quantity        int      `json:"quantity"`
	NegotiatedPrice *float64 `json:"negotiated_price,omitempty"`
}

// UnitPrice returns the price charged per unit, or false when the product has
// neither a negotiated nor a list price.
func (i CartItem) UnitPrice() (float64, bool) {
	if i.NegotiatedPrice != nil {
		return *i.NegotiatedPrice, true
	}
	if i.Product.Price != nil {
		return *i.Product.Price, true
	}
	return 0, false
}

// TotalPrice is the unit price times quantity; unpriced items count as 0.
func (i CartItem) TotalPrice() float64 {
	unit, ok := i.UnitPrice()
	if !ok {
		return 0
	}
	return unit * float64(i.Quantity)
}

// Cart is an ordered collection of cart items keyed by product ID.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add puts quantity units of p in the cart. An existing line has its quantity
// increased and, when negotiatedPrice is non-nil, its negotiated price replaced.
func (c *Cart) Add(p Product, quantity int, negotiatedPrice *float64) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity += quantity
			if negotiatedPrice != nil {
				c.Items[i].NegotiatedPrice = Float64Ptr(*negotiatedPrice)
			}
			return
		}
	}
	item := CartItem{Product: p, Quantity: quantity}
	if negotiatedPrice != nil {
		item.NegotiatedPrice = Float64Ptr(*negotiatedPrice)
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line for productID, if present.
func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// Returns false when the product is not in the cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.Remove(productID)
			return true
		}
		c.Items[i].Quantity = quantity
		return true
	}
	return false
}

// Total sums the line totals.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.TotalPrice()
	}
	return total
}

// ItemCount sums quantities across lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
