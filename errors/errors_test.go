/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestThrottledError(t *testing.T) {
	err := NewThrottledError("rate of requests exceeds the allowed throughput")

	// Test error message
	expected := "throttled: rate of requests exceeds the allowed throughput"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrThrottled) {
		t.Error("ThrottledError should match ErrThrottled")
	}

	// Test helper function
	if !IsThrottled(err) {
		t.Error("IsThrottled should return true for ThrottledError")
	}

	// Throttling is not a service fault
	if IsServiceFault(err) {
		t.Error("ThrottledError should not match ErrServiceFault")
	}
}

func TestServiceFaultError(t *testing.T) {
	err := NewServiceFaultError("ValidationException", "client", "one or more parameter values were invalid", 400, "ABC123")

	expected := `service fault ValidationException (status 400, request ABC123): one or more parameter values were invalid`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrServiceFault) {
		t.Error("ServiceFaultError should match ErrServiceFault")
	}

	if !IsServiceFault(err) {
		t.Error("IsServiceFault should return true for ServiceFaultError")
	}

	// Detail fields survive errors.As
	var sf *ServiceFaultError
	if !errors.As(err, &sf) {
		t.Fatal("errors.As should extract ServiceFaultError")
	}
	if sf.Code != "ValidationException" || sf.StatusCode != 400 || sf.RequestID != "ABC123" {
		t.Errorf("unexpected fault detail: %+v", sf)
	}
}

func TestTransportFaultError(t *testing.T) {
	err := NewTransportFaultError("dial tcp: connection refused")

	expected := "transport fault: dial tcp: connection refused"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrTransportFault) {
		t.Error("TransportFaultError should match ErrTransportFault")
	}

	if !IsTransportFault(err) {
		t.Error("IsTransportFault should return true for TransportFaultError")
	}
}

func TestInvalidArgumentError(t *testing.T) {
	err := NewInvalidArgumentError(`duplicate key "k1" in batch`)

	expected := `invalid argument: duplicate key "k1" in batch`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("InvalidArgumentError should match ErrInvalidArgument")
	}

	if !IsInvalidArgument(err) {
		t.Error("IsInvalidArgument should return true for InvalidArgumentError")
	}
}

func TestProvisioningFailureError(t *testing.T) {
	err := NewProvisioningFailureError("bench-table", "CREATING", "did not become ACTIVE within 5m0s")

	expected := `provisioning failure for table "bench-table" (status CREATING): did not become ACTIVE within 5m0s`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrProvisioningFailure) {
		t.Error("ProvisioningFailureError should match ErrProvisioningFailure")
	}

	if !IsProvisioningFailure(err) {
		t.Error("IsProvisioningFailure should return true for ProvisioningFailureError")
	}
}

func TestWrappedErrors(t *testing.T) {
	inner := NewThrottledError("capacity exceeded")
	wrapped := fmt.Errorf("readBulk: %w", inner)

	if !IsThrottled(wrapped) {
		t.Error("IsThrottled should see through fmt.Errorf wrapping")
	}

	var te *ThrottledError
	if !errors.As(wrapped, &te) {
		t.Error("errors.As should extract ThrottledError from wrapped error")
	}
}

func TestClassesAreDisjoint(t *testing.T) {
	errs := map[string]error{
		"throttled":    NewThrottledError("x"),
		"service":      NewServiceFaultError("InternalServerError", "server", "x", 500, "r"),
		"transport":    NewTransportFaultError("x"),
		"invalid":      NewInvalidArgumentError("x"),
		"provisioning": NewProvisioningFailureError("t", "CREATING", "x"),
	}
	checks := map[string]func(error) bool{
		"throttled":    IsThrottled,
		"service":      IsServiceFault,
		"transport":    IsTransportFault,
		"invalid":      IsInvalidArgument,
		"provisioning": IsProvisioningFailure,
	}

	for errName, err := range errs {
		for checkName, check := range checks {
			want := errName == checkName
			if got := check(err); got != want {
				t.Errorf("check %s on %s error: got %v, want %v", checkName, errName, got, want)
			}
		}
	}
}
