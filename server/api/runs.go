package api

import (
	"errors"
	"net/http"

	"github.com/corvane/slrforge/server/dao"
	"github.com/corvane/slrforge/server/middle"
	"github.com/corvane/slrforge/server/result"
	"github.com/corvane/slrforge/server/serr"
	"github.com/corvane/slrforge/server/svc"
)

type RunRequest struct {
	Source string `json:"source"`
}

type RunResponse struct {
	ID            string `json:"id"`
	GrammarName   string `json:"grammar_name"`
	Source        string `json:"source"`
	Accepted      bool   `json:"accepted"`
	ConflictCount int    `json:"conflict_count"`
	Created       string `json:"created"`
}

func runToResponse(r dao.Run) RunResponse {
	return RunResponse{
		ID:            r.ID.String(),
		GrammarName:   r.GrammarName,
		Source:        r.Source,
		Accepted:      r.Accepted,
		ConflictCount: r.ConflictCount,
		Created:       r.Created.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// HTTPCreateRun returns a HandlerFunc that scans and parses the submitted
// source against the server's loaded grammar and persists the outcome.
func (api API) HTTPCreateRun() http.HandlerFunc {
	return api.Endpoint(api.epCreateRun)
}

func (api API) epCreateRun(req *http.Request) result.Result {
	runData := RunRequest{}
	if err := parseJSON(req, &runData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if runData.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}

	user := req.Context().Value(middle.AuthUser).(dao.User)

	run, err := api.Backend.SubmitRun(req.Context(), user.ID, runData.Source)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(runToResponse(run), "user '%s' submitted run %s", user.Username, run.ID)
}

// HTTPGetRun returns a HandlerFunc that looks up a single run by ID.
func (api API) HTTPGetRun() http.HandlerFunc {
	return api.Endpoint(api.epGetRun)
}

func (api API) epGetRun(req *http.Request) result.Result {
	id := requireIDParam(req)

	run, err := api.Backend.GetRun(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	trace, err := svc.DecodeTrace(run.Trace)
	if err != nil {
		return result.InternalServerError("decode trace: " + err.Error())
	}

	resp := struct {
		RunResponse
		Trace interface{} `json:"trace"`
	}{
		RunResponse: runToResponse(run),
		Trace:       trace,
	}

	return result.OK(resp, "retrieved run %s", run.ID)
}

// HTTPGetAllRuns returns a HandlerFunc that lists every submitted run.
func (api API) HTTPGetAllRuns() http.HandlerFunc {
	return api.Endpoint(api.epGetAllRuns)
}

func (api API) epGetAllRuns(req *http.Request) result.Result {
	runs, err := api.Backend.ListRuns(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]RunResponse, len(runs))
	for i := range runs {
		resp[i] = runToResponse(runs[i])
	}

	return result.OK(resp, "retrieved %d run(s)", len(resp))
}
