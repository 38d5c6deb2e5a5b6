// Package askshelf provides a Go client for the askshelf catalog
// question-answering API.
//
//	client, _ := askshelf.New("http://localhost:8080",
//	    askshelf.WithAPIKey("secret"),
//	)
//	answer, _ := client.Ask(ctx, "recommend dsa books for exam prep")
//	fmt.Println(answer.Reply)
//
// Errors carry the server's error code and unwrap to sentinel errors, so
// errors.Is(err, askshelf.ErrStoreUnavailable) works across the wire.
package askshelf
