package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Product is the catalog view of a product. It carries no amount.
type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the remote-reported available quantity for a product.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

// LineItem is a product plus its requested quantity in the cart.
type LineItem struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

func NewLineItem(p Product) LineItem {
	return LineItem{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: 1,
	}
}

func (it LineItem) Validate() error {
	if it.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidItem, it.ID)
	}
	if it.Amount < 1 {
		return fmt.Errorf("%w: amount must be >= 1, got %d (id=%d)", ErrInvalidItem, it.Amount, it.ID)
	}
	return nil
}

func (it LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Amount)))
}

// Cart keeps insertion order. Methods never mutate the receiver; they return
// a fresh slice so callers can swap state only after persisting it.
type Cart []LineItem

func (c Cart) Find(productID int) (LineItem, bool) {
	for _, it := range c {
		if it.ID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

func (c Cart) Contains(productID int) bool {
	_, ok := c.Find(productID)
	return ok
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

func (c Cart) Append(it LineItem) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, it)
}

func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ID != productID {
			out = append(out, it)
		}
	}
	return out
}

func (c Cart) WithAmount(productID, amount int) Cart {
	out := c.Clone()
	for i := range out {
		if out[i].ID == productID {
			out[i].Amount = amount
		}
	}
	return out
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c Cart) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for _, it := range c {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: id=%d", ErrDuplicateItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// EncodeCart always produces a JSON array, never null.
func EncodeCart(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return b, nil
}

// DecodeCart parses persisted slot data strictly. Anything other than a single
// JSON array of valid, unique line items is rejected.
func DecodeCart(b []byte) (Cart, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil, fmt.Errorf("%w: slot does not hold a json array", ErrInvalidItem)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var c Cart
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrInvalidItem)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}
