// Package bgg provides a native Go client for the BoardGameGeek XML API2.
//
// # Features
//
//   - Service-based architecture for expandability
//   - Modern Go 1.25+ iterators for paginated rosters
//   - Typed errors for precise error handling
//   - Functional options for flexible configuration
//   - Transparent retry of queued (202 Accepted) responses
//
// # Quick Start
//
//	client, err := bgg.NewClient(
//	    bgg.WithUserAgent("my-app/1.0"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	game, err := client.Things.Get(ctx, 174430, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%d), rank %s\n", game.Name, game.YearPublished, game.Stats.Rank)
//
// # Error Handling
//
// The package uses typed errors that can be inspected with errors.As and
// errors.Is:
//
//	collection, err := client.Collections.Owned(ctx, "somebody")
//	if err != nil {
//	    if errors.Is(err, bgg.ErrUnknownUsername) {
//	        // No such user
//	    }
//	    var retryErr *bgg.RetryExhaustedError
//	    if errors.As(err, &retryErr) {
//	        // Collection still queued after retryErr.Attempts requests
//	    }
//	}
//
// The service reports many failures inside a well-formed error document
// rather than through HTTP status codes; those surface as *APIError.
//
// # Pagination
//
// Use iterators for automatic pagination:
//
//	// Iterate over a guild's full roster
//	for member, err := range client.Guilds.Members(ctx, 1234, bgg.SortByUsername) {
//	    // ...
//	}
//
//	// Collect all results into a slice
//	members, err := bgg.Collect(client.Guilds.Members(ctx, 1234, bgg.SortByUsername))
package bgg
