package kafkain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cart_service/internal/core/domain"
)

func DecodeCommand(b []byte) (domain.Command, error) {
	var c domain.Command

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&c); err != nil {
		return domain.Command{}, fmt.Errorf("json decode: %w", err)
	}

	if err := c.Validate(); err != nil {
		return domain.Command{}, fmt.Errorf("domain validate: %w", err)
	}

	return c, nil
}
