// Package api exposes the account and advertisement endpoints over HTTP.
//
// AuthHandler serves registration, login and the current-user lookup.
// AdvertisementHandler serves the paginated listing and the single-ad CRUD
// routes; the mutating ones expect the auth middleware to have placed the
// caller in the request context. Every failure goes through HandleAPIError,
// which picks the status code and a client-safe message.
package api
