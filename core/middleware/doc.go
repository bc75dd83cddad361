// Package middleware contains HTTP middleware for the report server.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header or api_key query parameter.
//   - rayid: a unique Request ID (RayID) per request, stored in the context locals and
//     echoed in the response headers for tracing.
//
// Both are registered globally by the serve command, rayid first.
package middleware
