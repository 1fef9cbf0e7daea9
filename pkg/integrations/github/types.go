package github

// repoResponse is the subset of GET /repos/{owner}/{repo} that a snapshot uses.
type repoResponse struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Language      *string `json:"language"`
	HTMLURL       string  `json:"html_url"`
	DefaultBranch string  `json:"default_branch"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// treeResponse is returned by GET /repos/{owner}/{repo}/git/trees/{ref}.
type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob", "tree" or "commit" (submodule)
	Size int64  `json:"size"`
}
