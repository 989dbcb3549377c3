/*
Package dynabench is a benchmarking client driver for AWS DynamoDB.

The driver issues single-key and batched read/write operations against a
DynamoDB table, copes with the store's partial-failure semantics (a batch
call may only partially succeed and return the subset still pending), and
manages the lifecycle of the backing table when the benchmark is configured
to own it.

The public contract is the Driver interface:

	Init(ctx, gen)          // build the client handle, ready the table
	ReadSingle(ctx, key)    // consistent or eventual single get
	WriteSingle(ctx, key)   // single put with a generated value
	ReadBulk(ctx, keys)     // batched get, drains unprocessed keys
	WriteBulk(ctx, keys)    // batched put, drains unprocessed items
	Shutdown(ctx)           // optional table deletion, client release
	ConnectionInfo()        // diagnostic summary

Drivers are constructed through the registry package:

	cfg := config.Default()
	drv, err := registry.New("dynamodb", cfg)
	if err != nil { ... }
	if err := drv.Init(ctx, datagen.NewRandomGenerator(128)); err != nil { ... }
	defer drv.Shutdown(ctx)

After Init completes, every data-path method is safe for concurrent use
from many goroutines against the same driver: the only shared state is the
immutable client handle and the table and attribute names. Init and
Shutdown must not overlap with data-path calls; the harness enforces that
phase boundary.

Faults surface through the errors package taxonomy: throttling, service
faults, transport faults, invalid arguments, and provisioning failures.
*/
package dynabench
