package domain

import "fmt"

type CommandOp string

const (
	OpAdd    CommandOp = "add"
	OpRemove CommandOp = "remove"
	OpUpdate CommandOp = "update"
)

// Command is a cart mutation delivered by an asynchronous producer.
type Command struct {
	Op        CommandOp `json:"op"`
	ProductID int       `json:"product_id"`
	Amount    int       `json:"amount,omitempty"`
}

func (c Command) Validate() error {
	if c.ProductID <= 0 {
		return fmt.Errorf("%w: product_id must be positive", ErrInvalidCommand)
	}
	switch c.Op {
	case OpAdd, OpRemove, OpUpdate:
		return nil
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidCommand, c.Op)
	}
}
