package models

import "github.com/shopspring/decimal"

// CartLine is one product-and-quantity entry of a sale being composed.
type CartLine struct {
	Product  Product         `json:"produto"`
	Quantity int             `json:"quantidade"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func newCartLine(p Product, qty int) CartLine {
	return CartLine{
		Product:  p,
		Quantity: qty,
		Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// Cart keeps lines in insertion order, one line per product id.
// Stock checks against the snapshot are advisory; the backend re-checks on submit.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add inserts a line or merges qty into the existing line for the product.
// A rejected add leaves the cart untouched.
func (c *Cart) Add(p Product, qty int) error {
	if qty <= 0 {
		return NewValidationError(ErrMsgQuantityPositive)
	}
	if qty > p.Quantity {
		return NewValidationErrorf(ErrMsgInsufficientStock, p.Quantity)
	}

	if i := c.index(p.ID); i >= 0 {
		merged := c.lines[i].Quantity + qty
		if merged > p.Quantity {
			return NewValidationErrorf(ErrMsgMergedExceedsStock, p.Quantity)
		}
		c.lines[i] = newCartLine(c.lines[i].Product, merged)
		return nil
	}

	c.lines = append(c.lines, newCartLine(p, qty))
	return nil
}

// Remove deletes the line for productID; absent ids are a no-op.
func (c *Cart) Remove(productID int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

func (c *Cart) Line(productID int) (CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Clone() *Cart {
	return &Cart{lines: c.Lines()}
}

// OrderLines builds the order-creation items: product id and quantity only.
// The backend prices the order from its own records.
func (c *Cart) OrderLines() []OrderLineRequest {
	items := make([]OrderLineRequest, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, OrderLineRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}
	return items
}

func (c *Cart) index(productID int) int {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}
