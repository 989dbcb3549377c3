/*
Package ddb provides the DynamoDB implementation of the dynabench.Driver
contract.

The Store supports:
  - Single-key gets and puts honoring the configured consistency mode
  - Batched gets and puts that drain the store's unprocessed sets,
    resubmitting only the subset the store declined
  - Benchmark-owned table lifecycle: create-if-absent with a bounded
    ACTIVE wait at init, best-effort delete-and-wait at shutdown
  - Fault classification into the errors package taxonomy (throttled,
    service fault, transport fault)
  - Optional caching-tier substitution: after init, the data path can be
    swapped onto a client pointed at an accelerator endpoint exposing the
    same operation surface

Partial failures:

A batched call against DynamoDB may partially succeed; the response then
carries the unprocessed subset. The coordinators treat that as expected
behavior on a successful response, not as an error: they resubmit exactly
the unprocessed subset until it is empty, bounded by a round cap that
classifies permanent capacity exhaustion as throttling.

The package registers itself with the registry under the name "dynamodb".
*/
package ddb
