// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as HTTP communication and logging.
//
// The infrastructure package is organized by technical concern:
//
// - http/standard: Standard library HTTP client with a bounded timeout
// - logger/logrusadapter: Logrus-backed structured logger implementation
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration values
// - Testable: Include unit tests with local fixtures
//
// # HTTP Client
//
// The HTTP client performs single-attempt streamed downloads; a failed
// link is logged and skipped, never retried:
//
//	client := standard.NewStandardHTTPClient(15 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com/photo.jpg")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrusadapter.NewLogrusLogger(false)
//	logger.Info("Processing workbook", map[string]interface{}{
//	    "input": "input.xlsx",
//	    "links": 12,
//	})
package infrastructure
