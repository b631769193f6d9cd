// Package main provides the entry point for the RBAC admin console.
// It initializes and runs a web server using the Fiber framework that lets
// operators manage users, roles, and permissions stored in an external RBAC
// backend service, reached over its HTTP JSON API. The application itself
// holds no database; it is a presentation and session layer over the backend.
package main
