package flagpost

// User identifies the subject a flag is evaluated for.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// EvaluationRequest is the payload sent to the evaluation service.
// Flag is required for single-flag evaluation and ignored when
// evaluating all flags.
type EvaluationRequest struct {
	Environment string `json:"environment"`
	User        User   `json:"user"`
	Flag        string `json:"flag,omitempty"`
}

// Flag is the evaluated state of a single feature flag.
type Flag struct {
	Name    string `json:"flag"`
	Enabled bool   `json:"enabled"`
}
