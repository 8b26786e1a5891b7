package domain

type StepStatus string

const (
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
)

// Step is one entry in the append-only trace a workflow run produces.
type Step struct {
	Step    int        `json:"step"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message"`
}

// StepTrace records workflow progress for the caller, one entry per
// step reached. A step enters as processing and is resolved in place to
// completed or failed, so a finished trace holds exactly the steps that
// ran. Observability data only; never persisted.
type StepTrace []Step

// Start appends a new step in the processing state.
func (t *StepTrace) Start(step int, message string) {
	*t = append(*t, Step{Step: step, Status: StepProcessing, Message: message})
}

// Complete resolves the most recently started step.
func (t *StepTrace) Complete(message string) {
	t.resolve(StepCompleted, message)
}

// Fail resolves the most recently started step.
func (t *StepTrace) Fail(message string) {
	t.resolve(StepFailed, message)
}

func (t *StepTrace) resolve(status StepStatus, message string) {
	if len(*t) == 0 {
		return
	}
	last := &(*t)[len(*t)-1]
	last.Status = status
	last.Message = message
}

// IngestOptions carries caller-supplied inputs for one workflow run.
// Overrides are layered onto the record last, so they win on collision.
type IngestOptions struct {
	Year       *int           `json:"year,omitempty"`
	Overrides  map[string]any `json:"overrides,omitempty"`
	BatchIndex int            `json:"batch_index,omitempty"`
}

// IngestOutcome is the resolved result of one workflow run. Errors never
// escape the workflow boundary; failures are reported here together with
// the trace accumulated up to the failure point.
type IngestOutcome struct {
	Success  bool      `json:"success"`
	Perfume  *Perfume  `json:"perfume,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Error    string    `json:"error,omitempty"`
	Steps    StepTrace `json:"steps"`
}

// BatchOutcome aggregates per-item outcomes in input order.
type BatchOutcome struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []*IngestOutcome `json:"results"`
}
