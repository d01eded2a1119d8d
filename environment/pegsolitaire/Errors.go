package pegsolitaire

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned when a board cannot be constructed
// from the given shape, size, or initial empty cells.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (c *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid board configuration: %v: %v", c.Field,
		c.Reason)
}

// IllegalMoveError is returned when a move that does not satisfy the
// legality rule is applied to a board.
type IllegalMoveError struct {
	Move  Move
	State string
}

// Error implements the error interface
func (i *IllegalMoveError) Error() string {
	return fmt.Sprintf("move %v is illegal in state %v", i.Move, i.State)
}

// IsConfigurationError returns whether err is or wraps a
// *ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsIllegalMove returns whether err is or wraps an *IllegalMoveError
func IsIllegalMove(err error) bool {
	var target *IllegalMoveError
	return errors.As(err, &target)
}
