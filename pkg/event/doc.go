// Package event implements the registered-handler table for
// asynchronous instrument events.
//
// A session owns exactly one Registry. Installing a handler records
// the (event type, callback, user data) triple and hands back a
// Registration whose token is later used for exact-match removal;
// there is no wildcard uninstall. The registry is bookkeeping only:
// callbacks are invoked by the driver, not by this package.
//
// # Lifecycle
//
// Registrations do not outlive their session. Callers must uninstall
// every handler before closing the session; a handler still registered
// at close time may be invoked by the driver against a dead handle.
package event
