// Package core provides a small, stable facade over keysweep's internal
// engine for host integrations. It deliberately re-exports a narrow API
// surface so editors, hooks, and third-party tools can depend on a stable
// import path without reaching into internal packages.
//
// Example:
//
//	found, err := core.StartScan(ctx, ".")
//	if err != nil { /* handle */ }
//	if found { /* surface to the user */ }
package core
