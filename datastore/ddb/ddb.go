/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dynabench"
	"github.com/suparena/dynabench/config"
	"github.com/suparena/dynabench/datagen"
	"github.com/suparena/dynabench/datastore"
	dberrors "github.com/suparena/dynabench/errors"
	"github.com/suparena/dynabench/registry"
)

// DriverName is the name the driver registers itself under.
const DriverName = "dynamodb"

// valueAttributeName is the attribute the generated payload is written to.
const valueAttributeName = "value"

func init() {
	registry.Register(DriverName, func(cfg *config.Config) (dynabench.Driver, error) {
		return New(cfg), nil
	})
}

// Store implements dynabench.Driver against DynamoDB. After Init, client is
// the control-plane handle and dataClient serves the data path; the two
// differ only when a caching-tier endpoint is configured. Both handles and
// the table/attribute names are read-only after Init, which is what makes
// concurrent data-path calls safe without locks.
type Store struct {
	cfg *config.Config
	log *slog.Logger

	client     datastore.DynamoAPI
	dataClient datastore.DynamoAPI
	awsCfg     *aws.Config
	release    func()

	gen datagen.Generator

	tableName     string
	attributeName string

	pollInterval   time.Duration
	waitTimeout    time.Duration
	maxDrainRounds int
}

// New creates an uninitialized Store for the given configuration.
func New(cfg *config.Config) *Store {
	cfg.Validate()
	return &Store{
		cfg:            cfg,
		log:            slog.Default().With("driver", DriverName, "table", cfg.TableName),
		tableName:      cfg.TableName,
		attributeName:  cfg.AttributeName,
		pollInterval:   defaultPollInterval,
		waitTimeout:    defaultWaitTimeout,
		maxDrainRounds: defaultMaxDrainRounds,
	}
}

// NewWithClient creates a Store bound to an existing client handle instead
// of constructing one from credentials at Init. Used by tests and by
// harnesses that manage their own client.
func NewWithClient(cfg *config.Config, client datastore.DynamoAPI) *Store {
	s := New(cfg)
	s.client = client
	return s
}

// Init resolves credentials, builds the client handle, optionally creates
// the backing table and waits until it is ACTIVE, verifies the table with a
// final describe, and optionally swaps the data path onto the caching tier.
func (s *Store) Init(ctx context.Context, gen datagen.Generator) error {
	if gen == nil {
		return dberrors.NewInvalidArgumentError("data generator is required")
	}
	s.gen = gen

	if s.client == nil {
		awsCfg, release, err := resolveAWSConfig(ctx, s.cfg)
		if err != nil {
			return err
		}
		s.awsCfg = &awsCfg
		s.release = release
		s.client = newStoreClient(awsCfg, s.cfg)
	}
	s.dataClient = s.client

	if s.cfg.ProgrammableTables {
		s.log.Info("creating table programmatically")
		if err := s.EnsureTable(ctx); err != nil {
			return err
		}
	}

	desc, err := s.Describe(ctx)
	if err != nil {
		return err
	}
	s.log.Info("table described", "status", desc.TableStatus)

	if s.cfg.CacheEndpoint != "" {
		if s.awsCfg == nil {
			return dberrors.NewInvalidArgumentError("cache endpoint requires a driver-constructed client")
		}
		s.log.Info("switching data path to caching tier", "endpoint", s.cfg.CacheEndpoint)
		s.dataClient = newCacheClient(*s.awsCfg, s.cfg)
	}

	s.log.Info("driver initialized")
	return nil
}

// ReadSingle fetches one item by key, honoring the configured consistency
// mode. It returns nil when the item does not exist.
func (s *Store) ReadSingle(ctx context.Context, key string) (*string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	out, err := s.dataClient.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			s.attributeName: &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(s.cfg.ConsistentRead),
	})
	if err != nil {
		return nil, s.classify("GetItem", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	rendered := renderItem(out.Item)
	return &rendered, nil
}

// WriteSingle writes one item pairing the key with a freshly generated
// value and returns a string rendering of the written item.
func (s *Store) WriteSingle(ctx context.Context, key string) (string, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	item := map[string]types.AttributeValue{
		s.attributeName:    &types.AttributeValueMemberS{Value: key},
		valueAttributeName: &types.AttributeValueMemberS{Value: s.gen.RandomValue()},
	}
	_, err := s.dataClient.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return "", s.classify("PutItem", err)
	}
	return renderItem(item), nil
}

// Shutdown optionally deletes the owned table, then releases the client
// handles. Table deletion is best-effort: its faults are logged, never
// returned, so cleanup cannot prevent shutdown from completing.
func (s *Store) Shutdown(ctx context.Context) error {
	if s.cfg.ProgrammableTables && s.client != nil {
		s.DeleteTableAndWait(ctx)
	}
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.client = nil
	s.dataClient = nil
	s.log.Info("driver shut down")
	return nil
}

// ConnectionInfo returns a human-readable summary of the connection target.
func (s *Store) ConnectionInfo() string {
	return fmt.Sprintf("Table Name - %s : Attribute Name - %s : Consistent Read - %t",
		s.tableName, s.attributeName, s.cfg.ConsistentRead)
}

// opCtx bounds a single store call with the configured request timeout.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.RequestTimeout())
}

// renderItem produces the opaque string representation returned to the
// harness. The attribute map is decoded into plain Go values first so the
// rendering reads as attribute names and values rather than SDK wrappers.
func renderItem(item map[string]types.AttributeValue) string {
	var decoded map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &decoded); err != nil {
		return fmt.Sprintf("%v", item)
	}
	return fmt.Sprint(decoded)
}
