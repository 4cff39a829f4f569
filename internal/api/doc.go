// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for the /api/mensagens resource. It acts as an
// adapter between external clients and the message store, translating HTTP
// concerns to store operations.
//
// Identifiers in the path and in request bodies are coerced loosely: numeric
// strings, booleans and null are accepted and converted before validation.
package api
