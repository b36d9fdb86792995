package domain

import "errors"

var (
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrPassengerServed   = errors.New("passenger already served")
	ErrDuplicateCardNo   = errors.New("card number already in use today")
	ErrTrainNotFound     = errors.New("train not found")
	ErrInvalidTime       = errors.New("time must be HH:mm")
	ErrPersistence       = errors.New("persistence write failed")
	ErrUnsupportedFile   = errors.New("unsupported import file")
)
