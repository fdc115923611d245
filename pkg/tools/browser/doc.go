// Package browser implements the browser_* tool suite over the single
// managed session: lifecycle (launch/close), navigation, element
// actions, screenshots, script evaluation, captured-log retrieval, and
// page content extraction.
//
// Every tool returns the uniform result envelope. Operational failures
// (locator not found, evaluation fault, launch rejection) come back as
// failure-flagged envelopes; tools never panic and never surface
// transport errors for expected conditions.
//
// Lifecycle tools operate on session state directly. Every other tool
// first ensures an active session, implicitly launching a default
// browser when none exists.
package browser
