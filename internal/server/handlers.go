package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repolens/pkg/analyzer"
	"github.com/matzehuels/repolens/pkg/deps"
	"github.com/matzehuels/repolens/pkg/deps/languages"
	"github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/pipeline"
	"github.com/matzehuels/repolens/pkg/readme"
	"github.com/matzehuels/repolens/pkg/source"
)

// maxBody bounds request bodies; file listings may carry several manifests.
const maxBody = 8 * errors.MaxManifestSize

type handler struct {
	runner *pipeline.Runner
	logger *log.Logger
}

type urlRequest struct {
	URL       string `json:"url"`
	Recursive bool   `json:"recursive,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`
}

func (u urlRequest) options(formats ...string) pipeline.Options {
	return pipeline.Options{URL: u.URL, Recursive: u.Recursive, Refresh: u.Refresh, Formats: formats}
}

type readmeRequest struct {
	urlRequest
	Repo     *readme.RepoInfo `json:"repoInfo"`
	Analysis *analyzer.Result `json:"analysisResult"`
}

type readmeResponse struct {
	Readme string `json:"readme"`
}

type filesRequest struct {
	Files []source.File `json:"files"`
}

type extractRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type extractResponse struct {
	Filename       string            `json:"filename"`
	PackageManager string            `json:"packageManager,omitempty"`
	Packages       []deps.Dependency `json:"packages"`
	Meta           deps.ProjectMeta  `json:"meta"`
}

type graphRequest struct {
	urlRequest
	Format   string `json:"format,omitempty"` // dot or svg
	Detailed bool   `json:"detailed,omitempty"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) repositoryInfo(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decode(w, r, &req) {
		return
	}
	repo, err := h.runner.Fetch(r.Context(), req.options())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

func (h *handler) analyzeURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decode(w, r, &req) {
		return
	}
	report, err := h.report(r, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) report(r *http.Request, req urlRequest) (*pipeline.Report, error) {
	opts := req.options()
	repo, err := h.runner.Fetch(r.Context(), opts)
	if err != nil {
		return nil, err
	}
	res, err := h.runner.Analyze(r.Context(), repo, opts)
	if err != nil {
		return nil, err
	}
	return &pipeline.Report{Repo: repo, Analysis: res}, nil
}

func (h *handler) generateReadmeURL(w http.ResponseWriter, r *http.Request) {
	var req readmeRequest
	if !decode(w, r, &req) {
		return
	}

	var in readme.Input
	switch {
	case req.URL != "":
		report, err := h.report(r, req.urlRequest)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in = readme.Input{Repo: readme.Info(report.Repo), Analysis: *report.Analysis}
	case req.Repo != nil && req.Analysis != nil:
		in = readme.Input{Repo: *req.Repo, Analysis: *req.Analysis}
	default:
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			`Provide either "url" or both "repoInfo" and "analysisResult"`))
		return
	}
	if err := validateReadmeInput(in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, readmeResponse{Readme: readme.Generate(in)})
}

func (h *handler) generateReadme(w http.ResponseWriter, r *http.Request) {
	var in readme.Input
	if !decode(w, r, &in) {
		return
	}
	if err := validateReadmeInput(in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, readmeResponse{Readme: readme.Generate(in)})
}

func (h *handler) analyzeFiles(w http.ResponseWriter, r *http.Request) {
	var req filesRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validateFiles(req.Files); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.runner.Analyzer.Analyze(r.Context(), req.Files)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decode(w, r, &req) {
		return
	}
	if err := errors.ValidateManifestFilename(req.Filename); err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateManifestContent(req.Content); err != nil {
		writeError(w, r, err)
		return
	}

	reg := languages.Default
	if _, ok := reg.Extractor(req.Filename); !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest: %s", req.Filename))
		return
	}
	pkgs, err := reg.Extract(req.Filename, req.Content)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeParse, err, "malformed %s", req.Filename))
		return
	}
	pm, _ := reg.PackageManager(req.Filename)
	writeJSON(w, http.StatusOK, extractResponse{
		Filename:       req.Filename,
		PackageManager: pm,
		Packages:       pkgs,
		Meta:           reg.Meta(req.Filename, req.Content),
	})
}

func (h *handler) graph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if !decode(w, r, &req) {
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if format != pipeline.FormatSVG && format != pipeline.FormatDOT {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid graph format: %q (must be dot or svg)", format))
		return
	}

	opts := req.options(format)
	opts.Detailed = req.Detailed
	res, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ct := "image/svg+xml"
	if format == pipeline.FormatDOT {
		ct = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func validateFiles(files []source.File) error {
	if len(files) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "files must not be empty")
	}
	for i, f := range files {
		switch {
		case f.Name == "" || f.Path == "":
			return errors.New(errors.ErrCodeInvalidInput, "files[%d]: name and path are required", i)
		case f.Type != source.TypeFile && f.Type != source.TypeDir:
			return errors.New(errors.ErrCodeInvalidInput, "files[%d]: type must be file or dir", i)
		}
		if err := errors.ValidatePath(f.Path); err != nil {
			return errors.New(errors.ErrCodeInvalidPath, "files[%d]: %s", i, errors.UserMessage(err))
		}
	}
	return nil
}

func validateReadmeInput(in readme.Input) error {
	switch {
	case in.Repo.Name == "" || in.Repo.Owner == "":
		return errors.New(errors.ErrCodeInvalidInput, "repoInfo.name and repoInfo.owner are required")
	case in.Repo.Platform != source.GitHub && in.Repo.Platform != source.GitLab && in.Repo.Platform != source.Disk:
		return errors.New(errors.ErrCodeInvalidInput, "repoInfo.platform must be github or gitlab")
	case in.Analysis.Language == "":
		return errors.New(errors.ErrCodeInvalidInput, "analysisResult.language is required")
	}
	for _, f := range in.Analysis.Dependencies {
		for _, p := range f.Packages {
			if p.Name == "" || !p.Type.Valid() {
				return errors.New(errors.ErrCodeInvalidInput, "%s: packages need a name and a valid type", f.Path)
			}
		}
	}
	return nil
}

// decode reads a JSON body into v, writing a 400 response on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body too large"))
		case stderrors.Is(err, io.EOF):
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		default:
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body"))
		}
		return false
	}
	return true
}
