// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package rental defines the wire types for the property-management
// API: properties, clients, tenants, leases, payments, and maintenance
// requests, plus the user/account type shared with the auth endpoints.
//
// The remote service is document-backed: records carry an "_id" key,
// and reference fields are delivered either as a bare ID string or as
// a populated sub-document depending on the endpoint. [Ref] absorbs
// that duality so screen code can read Ref.ID unconditionally and
// reach for the populated document only when present.
package rental
