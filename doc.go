// Package catalog implements the request pipeline of a catalog-management
// backend: signed-token authentication, role-based authorization, declarative
// payload validation, and the derived-value generators (slug, SKU, canonical
// price) that products and variants depend on.
//
// Pipeline:
//   - middleware/authware verifies the Bearer token and attaches AuthClaims to
//     the request, then enforces the required role. Both gates short-circuit
//     with typed errors before any handler runs.
//   - Payloads implement Validate (structure), Normalize (transform), and
//     Refine (cross-field invariants); RunSchema drives the three stages in
//     that fixed order and never partially applies them.
//   - Command handlers resolve uniqueness against the repositories and hand
//     fully-normalized records to Bun. A unique-constraint violation reported
//     by the driver maps to the same conflict outcome as the pre-check, so
//     correctness does not depend on the look-then-act race.
//
// Prices are canonicalized to exact decimals before they ever reach storage;
// no binary float survives past PriceAmount parsing. SKU generation is
// deterministic but not collision free: two product names sharing a
// four-character prefix with identically named variants produce the same SKU.
package catalog
