// Package browser owns the single managed browser session and the
// actions performed against it, built on Playwright.
//
// # Architecture
//
// The package is built around four pieces:
//
//  1. Manager: the session lifecycle state machine. It owns exactly one
//     browser+context+page triple, launching, attaching over remote
//     debugging, recovering an externally closed page, and tearing
//     everything down with cleanup guarantees.
//  2. Capture: per-page subscriptions feeding console messages and
//     network transactions into the bounded eventlog stores.
//  3. Executor: the uniform resolve-then-act-then-retry policy wrapped
//     around every element-targeting action, plus screenshots and
//     script evaluation.
//  4. ArtifactStore: named screenshot payloads, retrievable until
//     process exit.
//
// # Session lifecycle
//
// Sessions move Absent -> Active -> Absent. A launch request while a
// session is active first tears the old one down completely, so the
// new session always starts with empty log buffers and no pending
// network correlations. Close is idempotent: page, context, and
// browser are closed in that order, each step's failure swallowed so
// the next always runs. Any non-lifecycle operation implicitly launches
// a default session when none exists.
//
// # Ambiguous locators
//
// Locator resolution returns a typed verdict (not found, single match,
// multiple matches). On an ambiguous match the action retries against
// the first matching element; results always name the original
// locator. All action failures are typed outcome values, never
// propagated faults.
package browser
