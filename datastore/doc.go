/*
Package datastore defines the store-client surface the benchmark driver
depends on.

The main interface is DynamoAPI, the subset of DynamoDB operations the
driver issues:

	type DynamoAPI interface {
	    GetItem(...)
	    PutItem(...)
	    BatchGetItem(...)
	    BatchWriteItem(...)
	    DescribeTable(...)
	    CreateTable(...)
	    DeleteTable(...)
	}

Implementations:
  - the AWS SDK v2 *dynamodb.Client (and a caching-tier client built
    against an accelerator endpoint) satisfy the interface directly
  - mock: scriptable in-memory implementation for testing

Depending on the interface rather than the concrete client is what allows
the session manager to swap the data path onto the caching tier after
initialization without touching the coordinators.
*/
package datastore
