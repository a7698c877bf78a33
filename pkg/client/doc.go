// Package client is a Go client for the Conduit REST API, as served by
// conduit-mock or any compatible backend.
//
// The client groups endpoints the way front-end code usually does:
//
//	c := client.New("http://localhost:3001/api")
//	u, err := c.Users.Login(ctx, "demo@civiclens.org", "password123")
//	c.SetToken(u.Token)
//	page, err := c.Articles.Feed(ctx, 0, 0)
//
// Failed calls return *APIError carrying the status code and the field
// messages from the error envelope.
package client
