package errors

import (
	"errors"
	"fmt"
)

var (
	Is = errors.Is
	As = errors.As
)

const cantPrefix = "can't"

// Collapse folds an error list into one error.
func Collapse(errs []error) error {
	return errors.Join(errs...)
}

func Error(msg string) error {
	return errors.New(msg)
}

func Errorf(msgFormat string, args ...any) error {
	return fmt.Errorf(msgFormat, args...)
}

func Wrap(err error, wrapper string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", wrapper, err)
}

func Wrapf(err error, wrapperFormat string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(wrapperFormat, args...))
}

// WrapFail wraps err with a "can't <do whatever failed>" prefix.
func WrapFail(err error, whatFailed string) error {
	return Wrapf(err, "%s %s", cantPrefix, whatFailed)
}
