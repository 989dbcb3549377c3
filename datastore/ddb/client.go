/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/dynabench/config"
)

// resolveAWSConfig loads credentials and builds the shared AWS config the
// client handles are derived from. Explicit static keys win when both are
// configured; otherwise the production environment uses the ambient
// provider chain and everything else falls back to the shared-config
// profile. Either way the credentials are retrieved eagerly so a
// misconfigured environment fails at init rather than on the first call.
//
// The returned release function closes idle pooled connections; the
// session manager calls it at shutdown.
func resolveAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, func(), error) {
	var transport *http.Transport
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		tr.MaxConnsPerHost = cfg.MaxConnections
		tr.MaxIdleConnsPerHost = cfg.MaxConnections
		transport = tr
	})

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(httpClient),
	}

	if cfg.MaxRetries <= 0 {
		opts = append(opts, awsconfig.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}))
	} else {
		opts = append(opts,
			awsconfig.WithRetryMode(aws.RetryModeStandard),
			awsconfig.WithRetryMaxAttempts(cfg.MaxRetries+1),
		)
	}

	env := os.Getenv(config.EnvDeployment)
	slog.Info("resolving credentials", "deploymentEnv", env)
	switch {
	case cfg.AccessKey != "" && cfg.SecretKey != "":
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	case !config.IsProduction():
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, nil, fmt.Errorf(
			"cannot load credentials: verify the credential profile (profile %q) or the instance role: %w",
			cfg.Profile, err)
	}

	release := func() {
		if transport != nil {
			transport.CloseIdleConnections()
		}
	}
	return awsCfg, release, nil
}

// newStoreClient builds the primary DynamoDB client handle.
func newStoreClient(awsCfg aws.Config, cfg *config.Config) *sdk.Client {
	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.EnableAcceptEncodingGzip = cfg.Compression
	})
}

// newCacheClient builds the caching-tier client. The accelerator exposes
// the same operation surface as the store, so it is a DynamoDB client
// pointed at the configured cache endpoint.
func newCacheClient(awsCfg aws.Config, cfg *config.Config) *sdk.Client {
	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		o.BaseEndpoint = aws.String(cfg.CacheEndpoint)
		o.EnableAcceptEncodingGzip = cfg.Compression
	})
}
