/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by the driver. EnvDeployment selects
// the credential source: "aws" (or unset) uses the ambient provider chain,
// anything else falls back to the local shared-config profile.
const (
	EnvDeployment = "DYNABENCH_ENV"
	EnvAWS        = "aws"

	envEndpoint      = "DYNABENCH_ENDPOINT"
	envRegion        = "DYNABENCH_REGION"
	envTable         = "DYNABENCH_TABLE"
	envAttribute     = "DYNABENCH_ATTRIBUTE"
	envCacheEndpoint = "DYNABENCH_CACHE_ENDPOINT"
	envProfile       = "DYNABENCH_PROFILE"
	envAccessKey     = "DYNABENCH_ACCESS_KEY"
	envSecretKey     = "DYNABENCH_SECRET_KEY"
	envProgrammable  = "DYNABENCH_PROGRAMMABLE_TABLES"
	envConsistent    = "DYNABENCH_CONSISTENT_READ"
)

// Config holds the benchmark driver configuration. Fields map one-to-one to
// the YAML config file; a subset can be overridden through the environment.
type Config struct {
	// Endpoint overrides the store's network endpoint. Empty means the
	// SDK default endpoint for the region.
	Endpoint string `yaml:"endpoint"`

	// Region is the AWS region. Required when Endpoint is set.
	Region string `yaml:"region"`

	// MaxConnections bounds the HTTP connection pool per host.
	MaxConnections int `yaml:"maxConnections"`

	// MaxRequestTimeoutMs bounds every single store call, in milliseconds.
	MaxRequestTimeoutMs int `yaml:"maxRequestTimeoutMs"`

	// MaxRetries is the request-level retry budget inside the client
	// handle. Zero or negative disables client retries entirely.
	MaxRetries int `yaml:"maxRetries"`

	// Compression enables gzip accept-encoding on store responses.
	Compression bool `yaml:"compression"`

	// TableName is the backing table for all benchmark operations.
	TableName string `yaml:"tableName"`

	// AttributeName is the partition-key attribute name.
	AttributeName string `yaml:"attributeName"`

	// ReadCapacityUnits and WriteCapacityUnits are the provisioned
	// throughput used when the benchmark owns the table.
	ReadCapacityUnits  int64 `yaml:"readCapacityUnits"`
	WriteCapacityUnits int64 `yaml:"writeCapacityUnits"`

	// ConsistentRead selects strongly consistent reads on every get.
	ConsistentRead bool `yaml:"consistentRead"`

	// ProgrammableTables makes the driver own the table lifecycle:
	// create and await it at init, delete and await removal at shutdown.
	ProgrammableTables bool `yaml:"programmableTables"`

	// CacheEndpoint, when set, swaps the data path onto a caching-tier
	// client pointed at this endpoint after init completes.
	CacheEndpoint string `yaml:"cacheEndpoint"`

	// Profile is the shared-config credential profile used when the
	// deployment environment is not the production environment.
	Profile string `yaml:"profile"`

	// AccessKey and SecretKey, when both set, select static credentials
	// ahead of the provider chain and the profile. Typically supplied
	// through the environment rather than the config file.
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		Region:              "us-east-1",
		MaxConnections:      64,
		MaxRequestTimeoutMs: 10000,
		MaxRetries:          3,
		TableName:           "dynabench",
		AttributeName:       "id",
		ReadCapacityUnits:   5,
		WriteCapacityUnits:  5,
	}
}

// Load reads a YAML config file and applies defaults for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// ApplyEnv overrides config fields from the process environment. Unset
// variables leave the existing values untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(envRegion); v != "" {
		c.Region = v
	}
	if v := os.Getenv(envTable); v != "" {
		c.TableName = v
	}
	if v := os.Getenv(envAttribute); v != "" {
		c.AttributeName = v
	}
	if v := os.Getenv(envCacheEndpoint); v != "" {
		c.CacheEndpoint = v
	}
	if v := os.Getenv(envProfile); v != "" {
		c.Profile = v
	}
	if v := os.Getenv(envAccessKey); v != "" {
		c.AccessKey = v
	}
	if v := os.Getenv(envSecretKey); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv(envProgrammable); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ProgrammableTables = b
		}
	}
	if v := os.Getenv(envConsistent); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ConsistentRead = b
		}
	}
}

// Validate clamps out-of-range values back to usable defaults.
func (c *Config) Validate() {
	d := Default()
	if c.Region == "" {
		c.Region = d.Region
	}
	if c.MaxConnections < 1 {
		c.MaxConnections = d.MaxConnections
	}
	if c.MaxRequestTimeoutMs < 1 {
		c.MaxRequestTimeoutMs = d.MaxRequestTimeoutMs
	}
	if c.TableName == "" {
		c.TableName = d.TableName
	}
	if c.AttributeName == "" {
		c.AttributeName = d.AttributeName
	}
	if c.ReadCapacityUnits < 1 {
		c.ReadCapacityUnits = d.ReadCapacityUnits
	}
	if c.WriteCapacityUnits < 1 {
		c.WriteCapacityUnits = d.WriteCapacityUnits
	}
}

// RequestTimeout returns the per-call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.MaxRequestTimeoutMs) * time.Millisecond
}

// IsProduction reports whether the deployment environment variable selects
// the production credential source.
func IsProduction() bool {
	env := os.Getenv(EnvDeployment)
	return env == "" || env == EnvAWS
}
