package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid registry input")
	// ErrPersistence signals the snapshot could not be saved. The mutation that
	// triggered the save stays applied in memory and is written by the next
	// successful save; callers must not repeat it.
	ErrPersistence = errors.New("registry snapshot could not be saved")
	// ErrNoExporter is returned when archiving without an export destination.
	ErrNoExporter = errors.New("no export destination configured")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domainerrors.ErrInvalidField) ||
		errors.Is(err, domainerrors.ErrInvalidDate) ||
		errors.Is(err, domainerrors.ErrInvalidStage) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
