package workflow

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"smart-api-client/internal/classify"
	"smart-api-client/internal/collector"
	"smart-api-client/internal/executor"
	"smart-api-client/internal/llm"
	"smart-api-client/internal/logger"
	"smart-api-client/internal/parser"
	"smart-api-client/internal/types"
)

// Config holds the endpoints the workflow drives and the repair bound.
type Config struct {
	BaseURL       string
	LoginPath     string
	LoginMethod   string
	JobsPath      string
	JobStatusPath string // contains a {id} placeholder
	MaxRepairs    int
}

// Workflow sequences resolve, collect, call, and classify into a bounded
// repair loop per endpoint, and chains three such calls (login, list jobs,
// update a job's status) while threading the bearer token between them.
type Workflow struct {
	cfg        Config
	store      *parser.SpecStore
	collector  *collector.Collector
	dispatcher *executor.Dispatcher
	classifier *classify.Classifier
	text       llm.TextClient
	log        *logger.Logger
}

// New wires a workflow from its collaborators.
func New(cfg Config, store *parser.SpecStore, col *collector.Collector, dis *executor.Dispatcher, cls *classify.Classifier, text llm.TextClient, log *logger.Logger) *Workflow {
	if cfg.MaxRepairs <= 0 {
		cfg.MaxRepairs = 1
	}
	return &Workflow{
		cfg:        cfg,
		store:      store,
		collector:  col,
		dispatcher: dis,
		classifier: cls,
		text:       text,
		log:        log,
	}
}

// Run executes the three-stage workflow. Transport failures abort the
// workflow with a descriptive error; a login response without an access token
// ends it normally after reporting, with no further calls.
func (w *Workflow) Run(ctx context.Context) error {
	// Login
	loginDesc := parser.Resolve(w.store.Document(), w.cfg.LoginPath, w.cfg.LoginMethod)
	if loginDesc.Method == "" {
		loginDesc.Method = http.MethodPost
	}
	w.printDescriptor(loginDesc)

	loginRes, err := w.runCall(ctx, loginDesc, nil)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	w.summarize(ctx, "Login response", loginRes)

	token := gjson.GetBytes(loginRes.Raw, "access_token").String()
	if token == "" {
		fmt.Println("No access token found in the login response.")
		return nil
	}
	fmt.Println("Logged in; bearer token acquired.")

	authHeaders := map[string]string{
		"accept":        "application/json",
		"Authorization": "Bearer " + token,
	}

	// List jobs
	jobsDesc := parser.Resolve(w.store.Document(), w.cfg.JobsPath, "")
	method := jobsDesc.Method
	if method == "" {
		method = http.MethodGet
	}
	jobsRes, err := w.dispatch(ctx, executor.Request{
		Method:  method,
		URL:     w.cfg.BaseURL + w.cfg.JobsPath,
		Headers: authHeaders,
	})
	if err != nil {
		return fmt.Errorf("listing jobs failed: %w", err)
	}
	w.summarize(ctx, "Jobs response", jobsRes)

	ids := ExtractJobIDs(jobsRes.Raw)
	if len(ids) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}
	fmt.Printf("Jobs: %s\n", strings.Join(ids, ", "))

	// Select and update one job
	jobID, err := w.collector.Ask(fmt.Sprintf("job id (one of: %s)", strings.Join(ids, ", ")))
	if err != nil {
		return fmt.Errorf("failed to read job id: %w", err)
	}

	statusPath := strings.Replace(w.cfg.JobStatusPath, "{id}", jobID, 1)
	statusDesc := parser.Resolve(w.store.Document(), w.cfg.JobStatusPath, "")
	statusDesc.Path = statusPath
	if !statusDesc.HasBody() {
		// The endpoint is absent from the spec or its schema is malformed;
		// fall back to the conventional status-update shape.
		statusDesc = types.Descriptor{
			Path:        statusPath,
			Method:      http.MethodPut,
			Fields:      []types.Field{{Name: "status", Type: "string"}},
			ContentType: executor.ContentTypeJSON,
		}
	}
	w.printDescriptor(statusDesc)

	statusRes, err := w.runCall(ctx, statusDesc, authHeaders)
	if err != nil {
		return fmt.Errorf("status update failed: %w", err)
	}
	w.summarize(ctx, "Status update response", statusRes)

	return nil
}

// runCall executes the per-endpoint repair loop: collect values for the
// descriptor, dispatch, and while the server keeps rejecting the call for
// missing fields, re-prompt for just those fields and resend, at most
// MaxRepairs times. A response that still fails after the final attempt is
// returned as the terminal result, not an error.
func (w *Workflow) runCall(ctx context.Context, desc types.Descriptor, baseHeaders map[string]string) (*executor.Result, error) {
	payload := types.NewPayload()
	var err error
	if desc.HasBody() {
		payload, err = w.collector.Collect(ctx, desc.Fields)
		if err != nil {
			return nil, err
		}
	}

	headers := make(map[string]string, len(baseHeaders)+len(desc.Headers))
	for key, value := range baseHeaders {
		headers[key] = value
	}
	if len(desc.Headers) > 0 {
		values, err := w.collector.CollectHeaders(ctx, desc.Headers)
		if err != nil {
			return nil, err
		}
		for key, value := range values {
			headers[key] = value
		}
	}

	req := executor.Request{
		Method:      desc.Method,
		URL:         w.cfg.BaseURL + desc.Path,
		Payload:     payload,
		Headers:     headers,
		ContentType: desc.ContentType,
	}

	res, err := w.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < w.cfg.MaxRepairs; attempt++ {
		if !classify.IndicatesMissingFields(res.Raw) {
			break
		}
		missing := w.classifier.Classify(ctx, res.Raw)
		if len(missing) == 0 {
			// Classification failure: no repair possible.
			break
		}
		fmt.Printf("The server reports missing required fields: %s\n", strings.Join(missing, ", "))

		for _, field := range missing {
			value, err := w.collector.Ask(field)
			if err != nil {
				return nil, fmt.Errorf("failed to collect %s: %w", field, err)
			}
			payload.Set(field, value)
		}

		res, err = w.dispatch(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (w *Workflow) dispatch(ctx context.Context, req executor.Request) (*executor.Result, error) {
	res, err := w.dispatcher.Dispatch(ctx, req)
	status := 0
	if res != nil {
		status = res.StatusCode
	}
	w.log.LogRequest(req.Method, req.URL, status, err)
	return res, err
}

// summarize delegates the raw response to the text generator and prints the
// explanation. Display-only: generation failures are swallowed.
func (w *Workflow) summarize(ctx context.Context, stage string, res *executor.Result) {
	explanation, err := w.text.ExplainResponse(ctx, res.Raw)
	if err != nil || strings.TrimSpace(explanation) == "" {
		return
	}
	fmt.Printf("%s: %s\n", stage, explanation)
}

func (w *Workflow) printDescriptor(desc types.Descriptor) {
	names := make([]string, 0, len(desc.Fields))
	for _, field := range desc.Fields {
		names = append(names, fmt.Sprintf("%s (%s)", field.Name, field.Type))
	}
	fmt.Printf("%s %s", desc.Method, desc.Path)
	if len(names) > 0 {
		fmt.Printf(" requires: %s [%s]", strings.Join(names, ", "), desc.ContentType)
	}
	fmt.Println()
}

// ExtractJobIDs pulls job identifiers out of a jobs listing, accepting both a
// bare list and a {jobs: [...]} wrapper. Any other shape yields no ids.
func ExtractJobIDs(body []byte) []string {
	root := gjson.ParseBytes(body)
	list := root
	if !root.IsArray() {
		list = root.Get("jobs")
		if !list.IsArray() {
			return nil
		}
	}

	var ids []string
	for _, item := range list.Array() {
		if id := item.Get("id"); id.Exists() {
			ids = append(ids, id.String())
		}
	}
	return ids
}
