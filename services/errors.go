package services

import "errors"

// Error taxonomy for the order pipeline. Controllers map these onto HTTP
// status codes; anything else is treated as a store error (500).
var (
	ErrValidation        = errors.New("invalid request")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrSignatureMismatch = errors.New("payment verification failed")
	ErrAlreadyAssigned   = errors.New("order already has a delivery partner")
	ErrNotAssigned       = errors.New("order not found or not assigned to you")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
)
