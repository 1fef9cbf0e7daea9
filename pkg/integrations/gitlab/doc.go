// Package gitlab takes repository snapshots through the GitLab REST API.
//
// # Usage
//
//	client := gitlab.NewClient(c, "https://gitlab.example.com", token, 24*time.Hour)
//	repo, err := client.Fetch(ctx, "group", "project", opts)
//
// Both gitlab.com and self-managed instances are supported. The project is
// addressed by its URL-encoded "namespace/path"; the tree listing is paged
// through the X-Next-Page header.
//
// # Authentication
//
// A GitLab personal access token is optional and is sent in the
// PRIVATE-TOKEN header. Without a token, only public projects can be
// accessed.
package gitlab
