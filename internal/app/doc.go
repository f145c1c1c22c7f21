// Package app wires the application together: configuration, logging,
// metrics, the dataset store with its expiry janitor, the screening service,
// the chi router and the HTTP server lifecycle.
package app
