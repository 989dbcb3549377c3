/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"log/slog"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	dberrors "github.com/suparena/dynabench/errors"
)

// throughputExceededCode identifies the capacity-rejection condition.
const throughputExceededCode = "ProvisionedThroughputExceededException"

func (s *Store) classify(op string, err error) error {
	return classify(s.log, op, err)
}

// classify maps a raw SDK fault into the driver's fault taxonomy. It logs a
// diagnostic record with the full fault detail and returns the classified
// error; it never retries and never swallows the fault.
//
// Throttled means the request made it to the store but was rejected for
// consuming more capacity than provisioned; only the message is carried
// forward to keep the common case quiet. Any other modeled service error
// becomes a service fault carrying code, HTTP status, and request id. A
// fault with no service response at all is a transport fault.
func classify(log *slog.Logger, op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode() == throughputExceededCode {
			log.Warn("request throttled: it reached the store but consumed more capacity than provisioned",
				"op", op,
				"message", apiErr.ErrorMessage())
			return dberrors.NewThrottledError(apiErr.ErrorMessage())
		}

		statusCode := 0
		requestID := ""
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			statusCode = respErr.HTTPStatusCode()
			requestID = respErr.ServiceRequestID()
		}
		log.Error("request rejected by the store",
			"op", op,
			"code", apiErr.ErrorCode(),
			"fault", apiErr.ErrorFault().String(),
			"status", statusCode,
			"requestID", requestID,
			"message", apiErr.ErrorMessage())
		return dberrors.NewServiceFaultError(apiErr.ErrorCode(), apiErr.ErrorFault().String(),
			apiErr.ErrorMessage(), statusCode, requestID)
	}

	log.Error("request never got a definitive response from the store",
		"op", op,
		"error", err)
	return dberrors.NewTransportFaultError(err.Error())
}

// isTableNotFound reports whether a raw SDK fault says the table does not
// exist. Used by the lifecycle poll loops, which treat the condition as a
// state rather than a fault.
func isTableNotFound(err error) bool {
	var nf *types.ResourceNotFoundException
	return errors.As(err, &nf)
}

// isTableInUse reports whether a raw SDK fault says the table already
// exists, which the create-if-absent path treats as success.
func isTableInUse(err error) bool {
	var inUse *types.ResourceInUseException
	return errors.As(err, &inUse)
}
