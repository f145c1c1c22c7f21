// Package services holds the application services between the HTTP transport
// and the screening pipeline: the in-memory dataset store with its expiry
// janitor, the screening service that runs uploads through parse, screen and
// export, and the health service.
package services
