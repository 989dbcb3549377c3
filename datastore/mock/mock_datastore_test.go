/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func key(attr, val string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attr: &types.AttributeValueMemberS{Value: val},
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	m := New("bench", "id")
	ctx := context.Background()

	item := map[string]types.AttributeValue{
		"id":    &types.AttributeValueMemberS{Value: "k1"},
		"value": &types.AttributeValueMemberS{Value: "v1"},
	}
	if _, err := m.PutItem(ctx, &sdk.PutItemInput{TableName: aws.String("bench"), Item: item}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	out, err := m.GetItem(ctx, &sdk.GetItemInput{TableName: aws.String("bench"), Key: key("id", "k1")})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got, ok := out.Item["value"].(*types.AttributeValueMemberS)
	if !ok || got.Value != "v1" {
		t.Errorf("stored value: %v", out.Item["value"])
	}

	if m.PutItemCalls != 1 || m.GetItemCalls != 1 {
		t.Errorf("call counters: put=%d get=%d", m.PutItemCalls, m.GetItemCalls)
	}
}

func TestGetItemMissing(t *testing.T) {
	m := New("bench", "id")

	out, err := m.GetItem(context.Background(), &sdk.GetItemInput{
		TableName: aws.String("bench"),
		Key:       key("id", "absent"),
	})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.Item != nil {
		t.Errorf("expected nil item, got %v", out.Item)
	}
}

func TestBatchGetScriptedUnprocessed(t *testing.T) {
	m := New("bench", "id").
		WithItem("a", nil).WithItem("b", nil).
		WithUnprocessedReads([]string{"b"})
	ctx := context.Background()

	in := &sdk.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			"bench": {Keys: []map[string]types.AttributeValue{key("id", "a"), key("id", "b")}},
		},
	}
	out, err := m.BatchGetItem(ctx, in)
	if err != nil {
		t.Fatalf("batch get failed: %v", err)
	}
	if len(out.Responses["bench"]) != 1 {
		t.Errorf("round 1 should serve only %q, got %d items", "a", len(out.Responses["bench"]))
	}
	if len(out.UnprocessedKeys["bench"].Keys) != 1 {
		t.Fatalf("round 1 should decline only %q", "b")
	}

	// Round 2 is past the script and serves everything.
	out, err = m.BatchGetItem(ctx, &sdk.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			"bench": {Keys: out.UnprocessedKeys["bench"].Keys},
		},
	})
	if err != nil {
		t.Fatalf("batch get failed: %v", err)
	}
	if len(out.Responses["bench"]) != 1 || len(out.UnprocessedKeys["bench"].Keys) != 0 {
		t.Errorf("round 2 should drain fully: %v", out)
	}
}

func TestBatchWriteScriptedUnprocessed(t *testing.T) {
	m := New("bench", "id").WithUnprocessedWrites([]string{"b"})
	ctx := context.Background()

	put := func(k string) types.WriteRequest {
		return types.WriteRequest{PutRequest: &types.PutRequest{Item: key("id", k)}}
	}
	out, err := m.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{"bench": {put("a"), put("b")}},
	})
	if err != nil {
		t.Fatalf("batch write failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("only %q should be applied in round 1, stored %d", "a", m.Len())
	}
	if len(out.UnprocessedItems["bench"]) != 1 {
		t.Fatalf("round 1 should return one unprocessed request")
	}

	if _, err := m.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{"bench": out.UnprocessedItems["bench"]},
	}); err != nil {
		t.Fatalf("batch write failed: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("round 2 should apply the remainder, stored %d", m.Len())
	}
}

func TestDescribeScript(t *testing.T) {
	m := New("bench", "id").
		WithDescribeScript(StatusAbsent, types.TableStatusCreating, types.TableStatusActive)
	ctx := context.Background()
	in := &sdk.DescribeTableInput{TableName: aws.String("bench")}

	var nf *types.ResourceNotFoundException
	if _, err := m.DescribeTable(ctx, in); !errors.As(err, &nf) {
		t.Fatalf("call 1 should answer not-found, got %v", err)
	}

	out, err := m.DescribeTable(ctx, in)
	if err != nil || out.Table.TableStatus != types.TableStatusCreating {
		t.Fatalf("call 2: %v %v", out, err)
	}

	out, err = m.DescribeTable(ctx, in)
	if err != nil || out.Table.TableStatus != types.TableStatusActive {
		t.Fatalf("call 3: %v %v", out, err)
	}

	// Script exhausted: falls back to the live table state.
	out, err = m.DescribeTable(ctx, in)
	if err != nil || out.Table.TableStatus != types.TableStatusActive {
		t.Fatalf("call 4: %v %v", out, err)
	}
}

func TestCreateAndDeleteSemantics(t *testing.T) {
	m := New("bench", "id").WithoutTable()
	ctx := context.Background()

	if _, err := m.CreateTable(ctx, &sdk.CreateTableInput{TableName: aws.String("bench")}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var inUse *types.ResourceInUseException
	if _, err := m.CreateTable(ctx, &sdk.CreateTableInput{TableName: aws.String("bench")}); !errors.As(err, &inUse) {
		t.Fatalf("second create should answer in-use, got %v", err)
	}

	if _, err := m.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: aws.String("bench")}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var nf *types.ResourceNotFoundException
	if _, err := m.DeleteTable(ctx, &sdk.DeleteTableInput{TableName: aws.String("bench")}); !errors.As(err, &nf) {
		t.Fatalf("second delete should answer not-found, got %v", err)
	}
}

func TestScriptedErrors(t *testing.T) {
	boom := errors.New("boom")
	m := New("bench", "id").WithGetItemError(boom).WithBatchWriteError(boom)
	ctx := context.Background()

	if _, err := m.GetItem(ctx, &sdk.GetItemInput{Key: key("id", "k")}); !errors.Is(err, boom) {
		t.Errorf("get: %v", err)
	}
	if _, err := m.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{}); !errors.Is(err, boom) {
		t.Errorf("batch write: %v", err)
	}
}
