package analysis

import "github.com/invopop/jsonschema"

// batchResult is the top-level object the model must return for a batch
// analysis request.
type batchResult struct {
	Analyses []emailAnalysis `json:"analyses" jsonschema_description:"One analysis per email id from the request"`
}

// emailAnalysis mirrors triage.Analysis plus the id of the email it
// belongs to. Enum and range constraints are enforced by the response
// schema rather than checked after the fact.
type emailAnalysis struct {
	ID           string   `json:"id" jsonschema_description:"Id of the email this analysis belongs to"`
	Summary      string   `json:"summary" jsonschema_description:"One or two sentences describing what the email is about"`
	Priority     string   `json:"priority" jsonschema:"enum=HIGH,enum=MEDIUM,enum=LOW"`
	UrgencyScore int      `json:"urgencyScore" jsonschema:"minimum=0,maximum=100" jsonschema_description:"How urgently the email needs attention"`
	Category     string   `json:"category" jsonschema:"enum=WORK,enum=PERSONAL,enum=NEWSLETTER,enum=FINANCE,enum=SPAM_LIKELY"`
	ActionItems  []string `json:"actionItems" jsonschema_description:"Concrete follow-ups for the recipient, empty when none"`
	Sentiment    string   `json:"sentiment" jsonschema:"enum=POSITIVE,enum=NEUTRAL,enum=NEGATIVE"`
}

// schemaReflector inlines struct definitions so the service receives one
// self-contained object schema, which strict response formats require.
var schemaReflector = jsonschema.Reflector{
	Anonymous:                 true,
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	ExpandedStruct:            true,
}

var batchResultSchema = schemaReflector.Reflect(&batchResult{})
