// Package storage defines persistence contracts for installed boxes.
//
// It covers the box table keyed by (identifier, package id), localized
// names and content, and the box-to-page visibility join table. SQL
// implementations live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested record is missing
package storage
