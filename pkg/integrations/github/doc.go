// Package github takes repository snapshots through the GitHub REST API.
//
// # Usage
//
//	client := github.NewClient(c, token, 24*time.Hour)
//	repo, err := client.Fetch(ctx, "octo", "hello", source.Options{
//	    Wanted: func(name string) bool { return name == "go.mod" },
//	})
//
// A snapshot costs one request for the repository, one for the git tree of
// the default branch and one per wanted file. Wanted files are downloaded
// through the contents endpoint with the raw media type.
//
// # Authentication
//
// A personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour.
//
// # Caching
//
// Whole snapshots are cached under "github:repo:<owner>/<name>". Set
// [source.Options].Refresh to bypass the cache.
package github
