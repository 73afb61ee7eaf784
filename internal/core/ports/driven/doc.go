// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentTextSource: Opens a PDF and yields page text in order
//   - DocumentTree: Enumerates and watches PDFs under a root directory
//   - HistoryGateway: Loads and saves history stores
//   - FileOpener: Hands a file to the system default viewer
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
