/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dberrors "github.com/suparena/dynabench/errors"
)

// Lifecycle polling uses a fixed sleep between describe calls, bounded by a
// maximum wait. This is distinct from the client handle's request-level
// retry policy.
const (
	defaultPollInterval = 3 * time.Second
	defaultWaitTimeout  = 5 * time.Minute
)

// EnsureTable issues a create-if-absent for the backing table and polls
// until it is ACTIVE. A table that already exists is logged and treated as
// success. The wait is bounded: if the table never reaches ACTIVE before
// the bound, or the wait is interrupted, a provisioning failure is
// returned and the table is never left half-awaited in CREATING.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &sdk.CreateTableInput{
		TableName: aws.String(s.tableName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(s.attributeName), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(s.attributeName), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(s.cfg.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(s.cfg.WriteCapacityUnits),
		},
	})
	if err != nil {
		if !isTableInUse(err) {
			return s.classify("CreateTable", err)
		}
		s.log.Info("table already exists, no problem")
	}

	return s.waitUntilActive(ctx)
}

// Describe fetches the current table metadata. A missing table surfaces as
// a service fault, since every caller of Describe expects it to exist.
func (s *Store) Describe(ctx context.Context) (*types.TableDescription, error) {
	out, err := s.client.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return nil, s.classify("DescribeTable", err)
	}
	return out.Table, nil
}

// waitUntilActive polls DescribeTable at a fixed interval until the table
// reports ACTIVE. A not-found response means the create has not propagated
// yet and polling continues; any other fault aborts the wait.
func (s *Store) waitUntilActive(ctx context.Context) error {
	s.log.Info("waiting until the table is in ACTIVE state")
	deadline := time.Now().Add(s.waitTimeout)
	lastStatus := "UNKNOWN"

	for {
		out, err := s.client.DescribeTable(ctx, &sdk.DescribeTableInput{
			TableName: aws.String(s.tableName),
		})
		switch {
		case err == nil:
			lastStatus = string(out.Table.TableStatus)
			if out.Table.TableStatus == types.TableStatusActive {
				return nil
			}
		case isTableNotFound(err):
			lastStatus = "ABSENT"
		default:
			return s.classify("DescribeTable", err)
		}

		if time.Now().After(deadline) {
			return dberrors.NewProvisioningFailureError(s.tableName, lastStatus,
				"did not become ACTIVE within "+s.waitTimeout.String())
		}

		select {
		case <-ctx.Done():
			return dberrors.NewProvisioningFailureError(s.tableName, lastStatus,
				"wait interrupted: "+ctx.Err().Error())
		case <-time.After(s.pollInterval):
		}
	}
}

// DeleteTableAndWait issues a delete for the backing table and polls until
// it disappears. Every fault along the way is logged and absorbed: cleanup
// must not prevent shutdown from completing. When the poll does not observe
// the table disappearing, one more direct delete is attempted, since the
// store rejects a delete issued while the table is still DELETING from a
// prior call.
func (s *Store) DeleteTableAndWait(ctx context.Context) {
	s.log.Info("issuing delete for table")
	if _, err := s.client.DeleteTable(ctx, &sdk.DeleteTableInput{
		TableName: aws.String(s.tableName),
	}); err != nil {
		s.log.Warn("delete request failed", "error", err)
	}

	s.log.Info("waiting for table to be deleted, this may take a while")
	deadline := time.Now().Add(s.waitTimeout)
	for {
		_, err := s.client.DescribeTable(ctx, &sdk.DescribeTableInput{
			TableName: aws.String(s.tableName),
		})
		if err != nil {
			if isTableNotFound(err) {
				return
			}
			s.log.Warn("describe failed while awaiting deletion", "error", err)
			break
		}

		if time.Now().After(deadline) {
			s.log.Warn("table still present after wait bound")
			break
		}

		select {
		case <-ctx.Done():
			s.log.Warn("delete wait interrupted", "error", ctx.Err())
			return
		case <-time.After(s.pollInterval):
		}
	}

	if _, err := s.client.DeleteTable(ctx, &sdk.DeleteTableInput{
		TableName: aws.String(s.tableName),
	}); err != nil {
		s.log.Warn("final delete attempt failed", "error", err)
	}
}
