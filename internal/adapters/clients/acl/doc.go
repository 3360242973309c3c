// Package acl is the anti-corruption layer between downstream HTTP hosts
// and the domain.
//
// Adapters embed [BaseAdapter], issue requests through the instrumented
// client and hand back either domain values or domain errors. Transport
// failures, exhausted retries, an open circuit and non-2xx statuses all
// surface as [domain.ErrUnavailable]; the body of a failed response only
// enriches the message.
//
// [QuoteListClient] fetches the daily quote list the way the viewer's
// browser build did: GET {base}/sozler.json with Cache-Control: no-store.
package acl
