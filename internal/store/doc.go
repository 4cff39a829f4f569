// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// DBTX is the query executor every store is built on: it accepts a
// parameterized statement and returns rows or a result.
package store
