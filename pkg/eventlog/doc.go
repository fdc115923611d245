// Package eventlog provides bounded, append-only stores for the event
// streams captured from a live browser page.
//
// Two stores back the log query surface:
//
//  1. ConsoleStore holds diagnostic console messages.
//  2. NetworkStore holds network transaction events plus the pending
//     correlation records that link a request start to its terminal
//     response or failure.
//
// Both are built on Ring, a fixed-capacity FIFO-eviction buffer, so
// memory stays bounded no matter how chatty a page is. Appends arrive
// from asynchronous page callbacks and may interleave with queries and
// clears; each store serializes access with a single mutex.
//
// Correlation is keyed by (method, URL). When two requests to the same
// endpoint are in flight at once, the later start overwrites the
// earlier pending record, so durations are best-effort rather than a
// correctness guarantee.
package eventlog
