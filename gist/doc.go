// Package gist is a client for the GitHub gists REST API.
//
// Request bodies are built as dyn values and responses are parsed with
// package parse and mapped onto the types here with package gomap, so file
// names that are not plain identifiers (such as "a b.txt") round trip
// exactly and file order follows the server's response.
//
// # Usage
//
//	c := gist.NewClient(clientID, clientSecret, "my-app/1.0")
//	// send the user to c.AuthorizeURL(state), then with the code from the
//	// redirect:
//	if err := c.Authorize(ctx, code); err != nil {
//		return err
//	}
//	g, err := c.Create(ctx, "notes", false, []gist.FileContent{
//		{Filename: "notes.md", Content: "# Notes\n"},
//	})
//
// List calls record the pagination links of the response, see
// Client.Links and Client.ListURL.
package gist
