/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a scriptable in-memory implementation of the
// datastore.DynamoAPI interface for testing
package mock

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StatusAbsent scripts a DescribeTable round that answers "not found".
const StatusAbsent types.TableStatus = "ABSENT"

// Store is a mock implementation of datastore.DynamoAPI backed by a single
// in-memory table. Batch partial failures and table status transitions are
// scripted per round through the WithX builder methods, and every request
// is recorded so tests can assert exactly what was sent.
type Store struct {
	mu sync.Mutex

	tableName     string
	attributeName string

	items  map[string]map[string]types.AttributeValue
	exists bool
	status types.TableStatus

	describeScript    []types.TableStatus
	unprocessedReads  [][]string
	unprocessedWrites [][]string
	readRound         int
	writeRound        int

	getItemErr    error
	putItemErr    error
	batchGetErr   error
	batchWriteErr error
	describeErr   error
	createErr     error
	deleteErr     error

	// Recorded traffic, exported for assertions.
	GetItemCalls     int
	PutItemCalls     int
	DescribeCalls    int
	CreateCalls      int
	DeleteCalls      int
	BatchGetInputs   []*sdk.BatchGetItemInput
	BatchWriteInputs []*sdk.BatchWriteItemInput
}

// New creates a mock store for an existing, ACTIVE table.
func New(tableName, attributeName string) *Store {
	return &Store{
		tableName:     tableName,
		attributeName: attributeName,
		items:         make(map[string]map[string]types.AttributeValue),
		exists:        true,
		status:        types.TableStatusActive,
	}
}

// WithoutTable starts the mock with no table present.
func (m *Store) WithoutTable() *Store {
	m.exists = false
	return m
}

// WithItem seeds an item under the given partition-key value.
func (m *Store) WithItem(key string, extra map[string]types.AttributeValue) *Store {
	item := map[string]types.AttributeValue{
		m.attributeName: &types.AttributeValueMemberS{Value: key},
	}
	for k, v := range extra {
		item[k] = v
	}
	m.items[key] = item
	return m
}

// WithDescribeScript sets the statuses successive DescribeTable calls
// report, in order; StatusAbsent answers "not found". Once the script is
// exhausted the mock falls back to its live table state.
func (m *Store) WithDescribeScript(statuses ...types.TableStatus) *Store {
	m.describeScript = statuses
	return m
}

// WithUnprocessedReads scripts, per batch-get round, the keys the store
// declines to serve and returns in the unprocessed set.
func (m *Store) WithUnprocessedReads(rounds ...[]string) *Store {
	m.unprocessedReads = rounds
	return m
}

// WithUnprocessedWrites scripts, per batch-write round, the keys whose put
// requests come back in the unprocessed set.
func (m *Store) WithUnprocessedWrites(rounds ...[]string) *Store {
	m.unprocessedWrites = rounds
	return m
}

// WithGetItemError makes GetItem return an error
func (m *Store) WithGetItemError(err error) *Store { m.getItemErr = err; return m }

// WithPutItemError makes PutItem return an error
func (m *Store) WithPutItemError(err error) *Store { m.putItemErr = err; return m }

// WithBatchGetError makes BatchGetItem return an error
func (m *Store) WithBatchGetError(err error) *Store { m.batchGetErr = err; return m }

// WithBatchWriteError makes BatchWriteItem return an error
func (m *Store) WithBatchWriteError(err error) *Store { m.batchWriteErr = err; return m }

// WithDescribeError makes DescribeTable return an error
func (m *Store) WithDescribeError(err error) *Store { m.describeErr = err; return m }

// WithCreateError makes CreateTable return an error
func (m *Store) WithCreateError(err error) *Store { m.createErr = err; return m }

// WithDeleteError makes DeleteTable return an error
func (m *Store) WithDeleteError(err error) *Store { m.deleteErr = err; return m }

// GetItem returns the stored item for the requested key, or a nil Item.
func (m *Store) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetItemCalls++
	if m.getItemErr != nil {
		return nil, m.getItemErr
	}

	key := m.keyValue(params.Key)
	item, ok := m.items[key]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	return &sdk.GetItemOutput{Item: copyItem(item)}, nil
}

// PutItem stores the given item under its partition-key value.
func (m *Store) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutItemCalls++
	if m.putItemErr != nil {
		return nil, m.putItemErr
	}

	m.items[m.keyValue(params.Item)] = copyItem(params.Item)
	return &sdk.PutItemOutput{}, nil
}

// BatchGetItem serves the requested keys, leaving the scripted subset for
// the current round unprocessed.
func (m *Store) BatchGetItem(ctx context.Context, params *sdk.BatchGetItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchGetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BatchGetInputs = append(m.BatchGetInputs, params)
	round := m.readRound
	m.readRound++
	if m.batchGetErr != nil {
		return nil, m.batchGetErr
	}

	declined := m.scriptedKeys(m.unprocessedReads, round)
	out := &sdk.BatchGetItemOutput{
		Responses:       make(map[string][]map[string]types.AttributeValue),
		UnprocessedKeys: make(map[string]types.KeysAndAttributes),
	}

	var unprocessed []map[string]types.AttributeValue
	for _, keyAttr := range params.RequestItems[m.tableName].Keys {
		key := m.keyValue(keyAttr)
		if _, skip := declined[key]; skip {
			unprocessed = append(unprocessed, keyAttr)
			continue
		}
		if item, ok := m.items[key]; ok {
			out.Responses[m.tableName] = append(out.Responses[m.tableName], copyItem(item))
		}
	}
	if len(unprocessed) > 0 {
		out.UnprocessedKeys[m.tableName] = types.KeysAndAttributes{Keys: unprocessed}
	}
	return out, nil
}

// BatchWriteItem applies the put requests, returning the scripted subset
// for the current round in the unprocessed set without applying it.
func (m *Store) BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BatchWriteInputs = append(m.BatchWriteInputs, params)
	round := m.writeRound
	m.writeRound++
	if m.batchWriteErr != nil {
		return nil, m.batchWriteErr
	}

	declined := m.scriptedKeys(m.unprocessedWrites, round)
	out := &sdk.BatchWriteItemOutput{
		UnprocessedItems: make(map[string][]types.WriteRequest),
	}

	for _, req := range params.RequestItems[m.tableName] {
		key := m.keyValue(req.PutRequest.Item)
		if _, skip := declined[key]; skip {
			out.UnprocessedItems[m.tableName] = append(out.UnprocessedItems[m.tableName], req)
			continue
		}
		m.items[key] = copyItem(req.PutRequest.Item)
	}
	return out, nil
}

// DescribeTable reports the scripted status for this call, falling back to
// the live table state once the script is exhausted.
func (m *Store) DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DescribeCalls++
	if m.describeErr != nil {
		return nil, m.describeErr
	}

	status := m.status
	absent := !m.exists
	if len(m.describeScript) > 0 {
		status = m.describeScript[0]
		m.describeScript = m.describeScript[1:]
		absent = status == StatusAbsent
	}
	if absent {
		return nil, &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
	}
	return &sdk.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   aws.String(m.tableName),
			TableStatus: status,
		},
	}, nil
}

// CreateTable creates the table, failing with ResourceInUseException when
// it already exists.
func (m *Store) CreateTable(ctx context.Context, params *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.exists {
		return nil, &types.ResourceInUseException{Message: aws.String("Table already exists")}
	}

	m.exists = true
	m.status = types.TableStatusActive
	return &sdk.CreateTableOutput{
		TableDescription: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusCreating,
		},
	}, nil
}

// DeleteTable removes the table, failing with ResourceNotFoundException
// when it does not exist.
func (m *Store) DeleteTable(ctx context.Context, params *sdk.DeleteTableInput, optFns ...func(*sdk.Options)) (*sdk.DeleteTableOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	if !m.exists {
		return nil, &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
	}

	m.exists = false
	m.items = make(map[string]map[string]types.AttributeValue)
	return &sdk.DeleteTableOutput{}, nil
}

// Item returns a stored item by partition-key value.
func (m *Store) Item(key string) (map[string]types.AttributeValue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return nil, false
	}
	return copyItem(item), true
}

// Len returns the number of stored items.
func (m *Store) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// BatchGetRoundKeys returns the partition-key values requested in batch-get
// round i, in request order.
func (m *Store) BatchGetRoundKeys(i int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i >= len(m.BatchGetInputs) {
		return nil
	}
	var keys []string
	for _, keyAttr := range m.BatchGetInputs[i].RequestItems[m.tableName].Keys {
		keys = append(keys, m.keyValue(keyAttr))
	}
	return keys
}

// BatchWriteRoundItems returns the items sent in batch-write round i, keyed
// by partition-key value.
func (m *Store) BatchWriteRoundItems(i int) map[string]map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i >= len(m.BatchWriteInputs) {
		return nil
	}
	items := make(map[string]map[string]types.AttributeValue)
	for _, req := range m.BatchWriteInputs[i].RequestItems[m.tableName] {
		items[m.keyValue(req.PutRequest.Item)] = copyItem(req.PutRequest.Item)
	}
	return items
}

func (m *Store) scriptedKeys(rounds [][]string, round int) map[string]struct{} {
	declined := make(map[string]struct{})
	if round < len(rounds) {
		for _, k := range rounds[round] {
			declined[k] = struct{}{}
		}
	}
	return declined
}

func (m *Store) keyValue(attrs map[string]types.AttributeValue) string {
	if v, ok := attrs[m.attributeName].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
