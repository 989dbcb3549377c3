/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrThrottled is returned when a request reached the store but was
	// rejected for consuming more capacity than provisioned
	ErrThrottled = errors.New("provisioned throughput exceeded")

	// ErrServiceFault is returned when a request reached the store and was
	// rejected for a non-capacity reason
	ErrServiceFault = errors.New("service fault")

	// ErrTransportFault is returned when a request never produced a
	// definitive service response
	ErrTransportFault = errors.New("transport fault")

	// ErrInvalidArgument is returned when a caller precondition is violated
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrProvisioningFailure is returned when a table never reached the
	// awaited status before the wait bound, or the wait was interrupted
	ErrProvisioningFailure = errors.New("table provisioning failure")
)

// ThrottledError represents a capacity-rejected request. The request made it
// to the store; only the message is kept so the common throttling case does
// not flood logs with full fault detail.
type ThrottledError struct {
	Message string
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("throttled: %s", e.Message)
}

func (e *ThrottledError) Is(target error) bool {
	return target == ErrThrottled
}

// ServiceFaultError represents a request the store rejected with an error
// response. It carries enough detail to diagnose capacity versus
// configuration problems.
type ServiceFaultError struct {
	Code       string
	Fault      string
	Message    string
	StatusCode int
	RequestID  string
}

func (e *ServiceFaultError) Error() string {
	return fmt.Sprintf("service fault %s (status %d, request %s): %s", e.Code, e.StatusCode, e.RequestID, e.Message)
}

func (e *ServiceFaultError) Is(target error) bool {
	return target == ErrServiceFault
}

// TransportFaultError represents a request that never got a definitive
// answer: network failure, serialization failure, or client-side timeout.
type TransportFaultError struct {
	Message string
}

func (e *TransportFaultError) Error() string {
	return fmt.Sprintf("transport fault: %s", e.Message)
}

func (e *TransportFaultError) Is(target error) bool {
	return target == ErrTransportFault
}

// InvalidArgumentError represents a violated caller precondition, such as
// duplicate keys within a single batch.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ProvisioningFailureError represents a table lifecycle wait that did not
// complete: the table never reached the awaited status within the bound, or
// the wait was interrupted.
type ProvisioningFailureError struct {
	Table   string
	Status  string
	Message string
}

func (e *ProvisioningFailureError) Error() string {
	return fmt.Sprintf("provisioning failure for table %q (status %s): %s", e.Table, e.Status, e.Message)
}

func (e *ProvisioningFailureError) Is(target error) bool {
	return target == ErrProvisioningFailure
}

// Helper functions for creating errors

// NewThrottledError creates a new ThrottledError
func NewThrottledError(message string) error {
	return &ThrottledError{Message: message}
}

// NewServiceFaultError creates a new ServiceFaultError
func NewServiceFaultError(code, fault, message string, statusCode int, requestID string) error {
	return &ServiceFaultError{Code: code, Fault: fault, Message: message, StatusCode: statusCode, RequestID: requestID}
}

// NewTransportFaultError creates a new TransportFaultError
func NewTransportFaultError(message string) error {
	return &TransportFaultError{Message: message}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(message string) error {
	return &InvalidArgumentError{Message: message}
}

// NewProvisioningFailureError creates a new ProvisioningFailureError
func NewProvisioningFailureError(table, status, message string) error {
	return &ProvisioningFailureError{Table: table, Status: status, Message: message}
}

// IsThrottled checks if an error is a throttling error
func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}

// IsServiceFault checks if an error is a service fault
func IsServiceFault(err error) bool {
	return errors.Is(err, ErrServiceFault)
}

// IsTransportFault checks if an error is a transport fault
func IsTransportFault(err error) bool {
	return errors.Is(err, ErrTransportFault)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsProvisioningFailure checks if an error is a provisioning failure
func IsProvisioningFailure(err error) bool {
	return errors.Is(err, ErrProvisioningFailure)
}
