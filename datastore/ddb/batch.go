/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	dberrors "github.com/suparena/dynabench/errors"
)

// defaultMaxDrainRounds caps the batch-drain loops so a permanently
// over-capacity table surfaces as throttling instead of spinning forever.
const defaultMaxDrainRounds = 16

// ReadBulk expands the keys into a batched get and drains the store's
// unprocessed-keys set until none remain, accumulating results across
// rounds. The consistency mode is reasserted on every round, since the
// store resets request-level flags on retry. Result order follows
// accumulation order, not input order.
func (s *Store) ReadBulk(ctx context.Context, keys []string) ([]string, error) {
	if err := checkUniqueKeys(keys); err != nil {
		return nil, err
	}

	pending := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		pending = append(pending, map[string]types.AttributeValue{
			s.attributeName: &types.AttributeValueMemberS{Value: k},
		})
	}

	results := make([]string, 0, len(keys))
	for round := 0; len(pending) > 0; round++ {
		if round >= s.maxDrainRounds {
			return nil, dberrors.NewThrottledError(
				fmt.Sprintf("batch read did not drain after %d rounds", s.maxDrainRounds))
		}

		opctx, cancel := s.opCtx(ctx)
		out, err := s.dataClient.BatchGetItem(opctx, &sdk.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				s.tableName: {
					Keys:           pending,
					ConsistentRead: aws.Bool(s.cfg.ConsistentRead),
				},
			},
		})
		cancel()
		if err != nil {
			return nil, s.classify("BatchGetItem", err)
		}

		for _, item := range out.Responses[s.tableName] {
			results = append(results, renderItem(item))
		}

		unprocessed, ok := out.UnprocessedKeys[s.tableName]
		if !ok {
			pending = nil
		} else {
			pending = unprocessed.Keys
		}
	}

	return results, nil
}

// WriteBulk expands the keys into a batched put, pairing each key with a
// value generated exactly once, and drains the store's unprocessed-items
// set until none remain. Retried rounds resend the exact unprocessed
// requests, never regenerating a value, so a retry can never silently
// duplicate a write with a different payload. The return value renders
// every put request originally built: the drain loop guarantees each was
// eventually delivered, or the call failed.
func (s *Store) WriteBulk(ctx context.Context, keys []string) ([]string, error) {
	if err := checkUniqueKeys(keys); err != nil {
		return nil, err
	}

	requests := make([]types.WriteRequest, 0, len(keys))
	rendered := make([]string, 0, len(keys))
	for _, k := range keys {
		item := map[string]types.AttributeValue{
			s.attributeName:    &types.AttributeValueMemberS{Value: k},
			valueAttributeName: &types.AttributeValueMemberS{Value: s.gen.RandomValue()},
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
		rendered = append(rendered, renderItem(item))
	}

	pending := requests
	for round := 0; len(pending) > 0; round++ {
		if round >= s.maxDrainRounds {
			return nil, dberrors.NewThrottledError(
				fmt.Sprintf("batch write did not drain after %d rounds", s.maxDrainRounds))
		}

		opctx, cancel := s.opCtx(ctx)
		out, err := s.dataClient.BatchWriteItem(opctx, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.tableName: pending,
			},
		})
		cancel()
		if err != nil {
			return nil, s.classify("BatchWriteItem", err)
		}

		pending = out.UnprocessedItems[s.tableName]
	}

	return rendered, nil
}

// checkUniqueKeys enforces the caller precondition that keys within one
// batch are pairwise distinct. Violations fail before any network call.
func checkUniqueKeys(keys []string) error {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return dberrors.NewInvalidArgumentError(fmt.Sprintf("duplicate key %q in batch", k))
		}
		seen[k] = struct{}{}
	}
	return nil
}
