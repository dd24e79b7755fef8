// Package http provides the HTTP transport layer: chi handlers for the
// dot plot API and health endpoints.
package http
