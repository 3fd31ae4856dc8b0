// Package core contains the business logic of the news enrichment
// pipeline. It is framework-agnostic and can be used independently of
// any web framework or infrastructure concern.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure data models (RawFeedEntry, Article, documents, run summaries)
// - feed: Aggregator RSS client and the category fetch roster
// - redirect: Aggregator redirect resolution to publisher URLs
// - extract: Title, content and image extraction from rendered pages
// - scoring: Tiered keyword quality scoring
// - keypoints: Key point generation from extracted content
// - merge: Cross-query deduplication and document merging
// - assemble: Article assembly and the storage upload gate
// - pipeline: Per-entry enrichment chain and the batch runner
// - services: Workflow orchestration (generation, accent colors)
// - briefing: Audio briefing synthesis
// - workers: Background job queue and the refresh scheduler
// - errors: Structured error types for failure classification
// - interfaces: Contracts for external dependencies
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "github.com/sundeep8967/keypoints-backend-1/core/feed"
//	    "github.com/sundeep8967/keypoints-backend-1/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	feedService := feed.NewFeedService(deps, feed.DefaultOptions())
//
//	// Fetch one category
//	doc, err := feedService.Fetch(ctx, feed.PlanFor("technology"))
package core
