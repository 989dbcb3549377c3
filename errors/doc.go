/*
Package errors provides the fault taxonomy for the DynaBench driver.

The package defines the five fault classes a benchmark run can surface,
with specific types that can be checked using the standard errors.Is()
function or the provided helper functions.

Common Errors:

	var (
	    ErrThrottled           = errors.New("provisioned throughput exceeded")
	    ErrServiceFault        = errors.New("service fault")
	    ErrTransportFault      = errors.New("transport fault")
	    ErrInvalidArgument     = errors.New("invalid argument")
	    ErrProvisioningFailure = errors.New("table provisioning failure")
	)

Usage:

	// Check error class
	items, err := driver.ReadBulk(ctx, keys)
	if err != nil {
	    if errors.IsThrottled(err) {
	        // Capacity exhausted: the request reached the store
	        return nil, err
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewThrottledError("rate of requests exceeds the allowed throughput")
	err := errors.NewServiceFaultError("ValidationException", "client", "empty key", 400, "req-1")
	err := errors.NewInvalidArgumentError("duplicate key in batch")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
