package bmap

import "errors"

// Format errors
var (
	ErrCorruptFormat       = errors.New("corrupt map file")
	ErrIncompatibleVersion = errors.New("incompatible map version")
	ErrEncodingFailure     = errors.New("map encoding failed")
	ErrResourceExhausted   = errors.New("output buffer too small")
)

// Edit errors
var (
	ErrListFull        = errors.New("object list is full")
	ErrIndexOutOfRange = errors.New("object index out of range")
	ErrOutOfBounds     = errors.New("position outside the sea")
	ErrOccupied        = errors.New("position already has an object")
	ErrInvalidTile     = errors.New("invalid tile")
)
