/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	dberrors "github.com/suparena/dynabench/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyNil(t *testing.T) {
	if got := classify(quietLogger(), "GetItem", nil); got != nil {
		t.Errorf("classify(nil) should be nil, got %v", got)
	}
}

func TestClassifyThrottled(t *testing.T) {
	raw := &types.ProvisionedThroughputExceededException{
		Message: aws.String("rate of requests exceeds the allowed throughput"),
	}

	err := classify(quietLogger(), "BatchGetItem", raw)

	if !dberrors.IsThrottled(err) {
		t.Fatalf("expected throttled classification, got %v", err)
	}
	if dberrors.IsServiceFault(err) {
		t.Error("throttling must not classify as a service fault")
	}
}

func TestClassifyThrottledByCode(t *testing.T) {
	// The same error code can arrive as a generic API error, e.g. through
	// the caching tier.
	raw := &smithy.GenericAPIError{
		Code:    "ProvisionedThroughputExceededException",
		Message: "throughput exceeded",
		Fault:   smithy.FaultClient,
	}

	err := classify(quietLogger(), "BatchWriteItem", raw)

	if !dberrors.IsThrottled(err) {
		t.Fatalf("expected throttled classification, got %v", err)
	}
}

func TestClassifyServiceFault(t *testing.T) {
	raw := &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: 400}},
			Err: &smithy.GenericAPIError{
				Code:    "ValidationException",
				Message: "one or more parameter values were invalid",
				Fault:   smithy.FaultClient,
			},
		},
		RequestID: "REQ-42",
	}

	err := classify(quietLogger(), "PutItem", raw)

	if !dberrors.IsServiceFault(err) {
		t.Fatalf("expected service fault classification, got %v", err)
	}

	var sf *dberrors.ServiceFaultError
	if !errors.As(err, &sf) {
		t.Fatal("expected a ServiceFaultError")
	}
	if sf.Code != "ValidationException" {
		t.Errorf("expected code ValidationException, got %q", sf.Code)
	}
	if sf.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", sf.StatusCode)
	}
	if sf.RequestID != "REQ-42" {
		t.Errorf("expected request id REQ-42, got %q", sf.RequestID)
	}
}

func TestClassifyServiceFaultModeledException(t *testing.T) {
	raw := &types.ResourceNotFoundException{
		Message: aws.String("Requested resource not found"),
	}

	err := classify(quietLogger(), "DescribeTable", raw)

	var sf *dberrors.ServiceFaultError
	if !errors.As(err, &sf) {
		t.Fatalf("expected a ServiceFaultError, got %v", err)
	}
	if sf.Code != "ResourceNotFoundException" {
		t.Errorf("expected code ResourceNotFoundException, got %q", sf.Code)
	}
}

func TestClassifyTransportFault(t *testing.T) {
	raw := fmt.Errorf("request send failed: %w", errors.New("dial tcp 10.0.0.1:443: connection refused"))

	err := classify(quietLogger(), "GetItem", raw)

	if !dberrors.IsTransportFault(err) {
		t.Fatalf("expected transport fault classification, got %v", err)
	}
	if dberrors.IsServiceFault(err) || dberrors.IsThrottled(err) {
		t.Error("transport faults must not match the service classes")
	}
}

func TestTableStateHelpers(t *testing.T) {
	if !isTableNotFound(&types.ResourceNotFoundException{}) {
		t.Error("isTableNotFound should match ResourceNotFoundException")
	}
	if isTableNotFound(errors.New("other")) {
		t.Error("isTableNotFound should not match arbitrary errors")
	}
	if !isTableInUse(&types.ResourceInUseException{}) {
		t.Error("isTableInUse should match ResourceInUseException")
	}
	if isTableInUse(&types.ResourceNotFoundException{}) {
		t.Error("isTableInUse should not match ResourceNotFoundException")
	}
}
