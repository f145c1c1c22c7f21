// Package http contains the chi HTTP handlers for the screening API.
// Handlers translate between the JSON/multipart wire contract and the
// application services; errors render as RFC 7807 problem documents.
package http
