// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every error returned by Load and Decode matches exactly one of these
// with errors.Is.
var (
	ErrIO                 = errors.New("i/o error")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrDataCorruption     = errors.New("data corruption")
)

// ioError keeps the cause so callers can still match fs.ErrNotExist and friends.
func ioError(err error, format string, args ...any) error {
	return errors.Wrapf(fmt.Errorf("%w: %w", ErrIO, err), format, args...)
}

func corrupt(format string, args ...any) error {
	return errors.Wrapf(ErrDataCorruption, format, args...)
}
