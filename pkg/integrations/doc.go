// Package integrations provides the HTTP plumbing shared by the hosting
// API clients.
//
// # Overview
//
// Each hosting platform has its own subpackage:
//
//   - [github]: GitHub REST API
//   - [gitlab]: GitLab REST API (gitlab.com and self-managed)
//
// Both return a [source.Repo] snapshot: repository metadata, the file
// listing of the default branch, and the content of the files the caller
// asked for.
//
// # Shared Infrastructure
//
// [Client] wraps net/http with default headers, status mapping and
// response caching:
//
//	c := integrations.NewClient(backend, "github:", 24*time.Hour, headers)
//	err := c.Cached(ctx, key, refresh, &v, func() error {
//	    return c.Get(ctx, url, &v)
//	})
//
// Status codes map to sentinel errors ([ErrNotFound], [ErrUnauthorized],
// [ErrForbidden], [ErrRateLimited], [ErrNetwork]); 5xx responses and
// connection failures are marked retryable and retried with backoff by
// [Client.Cached]. [Classify] turns those sentinels into coded errors from
// pkg/errors for the CLI and the API.
//
// [LoadContents] downloads file contents with bounded concurrency.
package integrations
