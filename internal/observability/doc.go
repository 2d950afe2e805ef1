// Package observability builds the structured logger shared by the NexoHub
// API components.
//
// Components never construct their own logger; they receive a *zap.Logger
// through app.Dependencies. Request-scoped entries carry the request_id
// assigned by the router.
package observability
