// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The only entity is Message; its invariants (positive sender and recipient
// ids, non-empty text, sender different from recipient) live here so that the
// HTTP layer and the storage layer agree on them.
package domain
