package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeCart(t *testing.T) {
	t.Run("valid array keeps order", func(t *testing.T) {
		c, err := DecodeCart([]byte(`[
			{"id":2,"title":"Sneaker","price":179.9,"image":"a.jpg","amount":1},
			{"id":1,"title":"Boot","price":99.5,"image":"b.jpg","amount":3}
		]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c) != 2 || c[0].ID != 2 || c[1].ID != 1 || c[1].Amount != 3 {
			t.Fatalf("unexpected cart: %+v", c)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		c, err := DecodeCart([]byte(`[]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c == nil || len(c) != 0 {
			t.Fatalf("expected empty non-nil cart, got %#v", c)
		}
	})

	bad := map[string]string{
		"not json":      `{{{`,
		"object":        `{"id":1}`,
		"null":          `null`,
		"empty":         ``,
		"zero amount":   `[{"id":1,"title":"x","price":1,"image":"","amount":0}]`,
		"negative id":   `[{"id":-1,"title":"x","price":1,"image":"","amount":1}]`,
		"duplicate id":  `[{"id":1,"amount":1},{"id":1,"amount":2}]`,
		"unknown field": `[{"id":1,"amount":1,"color":"red"}]`,
		"trailing data": `[{"id":1,"amount":1}] []`,
		"wrong type":    `[{"id":"1","amount":1}]`,
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCart([]byte(raw)); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}

	t.Run("duplicate reports sentinel", func(t *testing.T) {
		_, err := DecodeCart([]byte(`[{"id":1,"amount":1},{"id":1,"amount":2}]`))
		if !errors.Is(err, ErrDuplicateItem) {
			t.Fatalf("expected ErrDuplicateItem, got %v", err)
		}
	})
}

func TestEncodeCartNilIsArray(t *testing.T) {
	b, err := EncodeCart(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("expected [], got %s", b)
	}
}

func TestCartMutationsDoNotAlias(t *testing.T) {
	orig := Cart{{ID: 1, Amount: 1}, {ID: 2, Amount: 4}}

	updated := orig.WithAmount(1, 5)
	if orig[0].Amount != 1 {
		t.Fatalf("WithAmount mutated receiver: %+v", orig)
	}
	if updated[0].Amount != 5 || updated[1].Amount != 4 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	removed := orig.Without(1)
	if !reflect.DeepEqual(removed, Cart{{ID: 2, Amount: 4}}) {
		t.Fatalf("unexpected remove result: %+v", removed)
	}
	if len(orig) != 2 {
		t.Fatalf("Without mutated receiver: %+v", orig)
	}

	appended := orig[:1].Append(LineItem{ID: 3, Amount: 1})
	if orig[1].ID != 2 {
		t.Fatalf("Append overwrote shared backing array: %+v", orig)
	}
	if len(appended) != 2 || appended[1].ID != 3 {
		t.Fatalf("unexpected append result: %+v", appended)
	}
}

func TestCartTotal(t *testing.T) {
	c := Cart{
		{ID: 1, Price: 0.1, Amount: 3},
		{ID: 2, Price: 179.9, Amount: 2},
	}
	if got := c.Total().StringFixed(2); got != "360.10" {
		t.Fatalf("expected 360.10, got %s", got)
	}
	if got := (Cart{}).Total().StringFixed(2); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		ok   bool
	}{
		{"add", Command{Op: OpAdd, ProductID: 1}, true},
		{"update", Command{Op: OpUpdate, ProductID: 1, Amount: 2}, true},
		{"remove", Command{Op: OpRemove, ProductID: 1}, true},
		{"unknown op", Command{Op: "clear", ProductID: 1}, false},
		{"missing id", Command{Op: OpAdd}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidCommand) {
				t.Fatalf("expected ErrInvalidCommand, got %v", err)
			}
		})
	}
}
