// Package testdb provides database helpers for integration tests.
//
// Tests get a migrated PostgreSQL database either from the URL in
// ITEMAPI_TEST_DATABASE_URL or, when that is unset, from a disposable
// container started with testcontainers. Each test should isolate its
// writes with WithTx.
//
// All helpers are behind the integration build tag:
//
//	go test -tags=integration ./...
package testdb
