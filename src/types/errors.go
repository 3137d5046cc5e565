package types

import "errors"

var (
	ErrRoomNotFound            = errors.New("room not found")
	ErrPlanNotFound            = errors.New("pricing plan not found")
	ErrRoomNoLongerAvailable   = errors.New("room is no longer available")
	ErrAlreadyBooked           = errors.New("student already has an active booking")
	ErrInvalidPaymentSignature = errors.New("invalid payment signature")
	ErrGatewayUnavailable      = errors.New("payment gateway unavailable")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidBookingStatus    = errors.New("booking is not in a valid status for this operation")
	ErrPersistenceFailure      = errors.New("payment received but booking could not be recorded")
	ErrNotAllowed              = errors.New("not enough permissions to perform this action")
)
