// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the transformation core and the outside
// world. They define what the application needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [ArticleSource]: Lists and reads raw article files
//   - [ArticleWriter]: Persists rewritten article bodies
//   - [AssetCopier]: Copies referenced images to the output tree
//   - [ReportWriter]: Persists the batch report
//   - [TitleLoader]: Loads the desired-identifier list
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with the file
// system and zerolog.
package ports
