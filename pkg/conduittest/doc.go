// Package conduittest runs the mock Conduit API inside Go tests.
//
// A Server wraps the engine in an httptest.Server, seeded with the built-in
// fixtures unless told otherwise, and closes itself when the test ends.
// Latency simulation is off by default so tests run at full speed.
//
// # Basic Usage
//
//	func TestFrontendLogin(t *testing.T) {
//	    srv := conduittest.New(t)
//
//	    c := srv.ClientAs("janedoe")
//	    a, err := c.Articles.Create(ctx, conduit.NewArticle{Title: "Hi", Description: "d", Body: "b"})
//	    require.NoError(t, err)
//
//	    srv.AssertCalledTimes(t, "createArticle", 1)
//	}
//
// # Custom Fixtures
//
//	srv := conduittest.New(t,
//	    conduittest.WithSeedFile("testdata/seed.yaml"),
//	    conduittest.WithClock(func() time.Time { return fixed }),
//	)
//
// Routes are identified by their dispatch table name, as listed by
// `conduit-mock routes`.
package conduittest
