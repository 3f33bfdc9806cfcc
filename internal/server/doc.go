// Package server implements the HTTP server using Echo framework.
//
// Routes: feedback submission, tenant-scoped analytics views, admin
// operations (re-classification, model reload), health and metrics.
// Handlers split by domain: handlers_feedback.go, handlers_analytics.go,
// handlers_admin.go, handlers_health.go.
package server
