// Package services implements the directory operations offered by the
// console on top of a directory.Client.
//
// Listings are aggregated across pages with FetchAll. Relationship listings
// (group members, group owners, a user's group memberships) are resolved
// through a Resolver, which looks references up concurrently while keeping
// their order and isolating per-reference failures.
//
// Lookups return models.Option so "absent" is never confused with an empty
// result. Mutations that name a user or group return false when the name
// does not resolve, and every mutation is written to the operation journal.
package services
