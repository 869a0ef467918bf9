package common

import (
	"errors"
	"fmt"
)

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(msg)
}
