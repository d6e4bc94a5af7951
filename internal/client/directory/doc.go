// Package directory talks to a Graph-style directory REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering user
//     and group lookups, paginated listings, relationship listings and the
//     mutations the console needs.
//  2. A concrete HTTP implementation (see GraphClient) that authenticates with
//     OAuth2 client credentials, optionally goes through a proxy and maps
//     service responses to sentinel errors.
//
// # Pagination
//
// Listing methods return one models.Page at a time. An empty cursor issues the
// initial request; a non-empty cursor is the @odata.nextLink of the previous
// page and is followed verbatim. Aggregation across pages belongs to callers.
//
// # Error Handling
//
// Service failures are returned as *ServiceError. Common conditions can be
// matched with errors.Is: ErrNotFound, ErrConflict, ErrUnauthorized,
// ErrUnavailable.
package directory
