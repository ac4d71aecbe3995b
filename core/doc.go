// Package core contains the business logic for xlthumbs.
// It is designed to be framework-agnostic and can be used independently
// of any CLI or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Link, media kind classification)
// - workbook: The mutable spreadsheet document model
// - links: Column allocation for thumbnail insertion slots
// - services: Fetch-and-convert thumbnail service and PDF rasterization
// - workers: Bounded worker pool dispatching one task per link
// - pipeline: The orchestrator driving one full run
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (HTTP, logger, rasterizer)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Per-link failures are recovered at the worker boundary and never
// abort the run
//
// # Usage Example
//
//	import (
//	    "xlthumbs/core/interfaces"
//	    "xlthumbs/core/pipeline"
//	    "xlthumbs/core/services"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create and run the pipeline
//	p := pipeline.New(deps, services.NewPopplerRasterizer(""), pipeline.Options{
//	    InputPath:  "input.xlsx",
//	    OutputPath: "output.xlsx",
//	    ScratchDir: "temp_files",
//	    MaxWorkers: 4,
//	})
//	err := p.Run(ctx)
package core
