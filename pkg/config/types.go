package config

// File is one contract document as written in a YAML or JSON file.
type File struct {
	Description   string             `yaml:"description,omitempty" json:"description,omitempty"`
	Name          string             `yaml:"name,omitempty" json:"name,omitempty"`
	Ignored       bool               `yaml:"ignored,omitempty" json:"ignored,omitempty"`
	InProgress    bool               `yaml:"inProgress,omitempty" json:"inProgress,omitempty"`
	Priority      int                `yaml:"priority,omitempty" json:"priority,omitempty"`
	Label         string             `yaml:"label,omitempty" json:"label,omitempty"`
	Request       *RequestFile       `yaml:"request,omitempty" json:"request,omitempty"`
	Response      *ResponseFile      `yaml:"response,omitempty" json:"response,omitempty"`
	Input         *InputFile         `yaml:"input,omitempty" json:"input,omitempty"`
	OutputMessage *OutputMessageFile `yaml:"outputMessage,omitempty" json:"outputMessage,omitempty"`
}

// RequestFile is the request section of a contract file.
type RequestFile struct {
	Method          string           `yaml:"method,omitempty" json:"method,omitempty"`
	URL             string           `yaml:"url,omitempty" json:"url,omitempty"`
	URLPath         string           `yaml:"urlPath,omitempty" json:"urlPath,omitempty"`
	QueryParameters map[string]any   `yaml:"queryParameters,omitempty" json:"queryParameters,omitempty"`
	Headers         map[string]any   `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies         map[string]any   `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	Body            any              `yaml:"body,omitempty" json:"body,omitempty"`
	Matchers        *RequestMatchers `yaml:"matchers,omitempty" json:"matchers,omitempty"`
}

// RequestMatchers loosen request values into consumer-side patterns.
type RequestMatchers struct {
	URL             *ValueMatcher `yaml:"url,omitempty" json:"url,omitempty"`
	QueryParameters []KeyMatcher  `yaml:"queryParameters,omitempty" json:"queryParameters,omitempty"`
	Headers         []KeyMatcher  `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies         []KeyMatcher  `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	Body            []BodyMatcher `yaml:"body,omitempty" json:"body,omitempty"`
}

// ResponseFile is the response section of a contract file.
type ResponseFile struct {
	Status                 int               `yaml:"status,omitempty" json:"status,omitempty"`
	Headers                map[string]any    `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies                map[string]any    `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	Body                   any               `yaml:"body,omitempty" json:"body,omitempty"`
	Async                  bool              `yaml:"async,omitempty" json:"async,omitempty"`
	FixedDelayMilliseconds int               `yaml:"fixedDelayMilliseconds,omitempty" json:"fixedDelayMilliseconds,omitempty"`
	Matchers               *ResponseMatchers `yaml:"matchers,omitempty" json:"matchers,omitempty"`
}

// ResponseMatchers loosen response values into producer-side patterns.
type ResponseMatchers struct {
	Headers []KeyMatcher  `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies []KeyMatcher  `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	Body    []BodyMatcher `yaml:"body,omitempty" json:"body,omitempty"`
}

// InputFile is the messaging input section of a contract file.
type InputFile struct {
	TriggeredBy    string           `yaml:"triggeredBy,omitempty" json:"triggeredBy,omitempty"`
	MessageFrom    string           `yaml:"messageFrom,omitempty" json:"messageFrom,omitempty"`
	MessageHeaders map[string]any   `yaml:"messageHeaders,omitempty" json:"messageHeaders,omitempty"`
	MessageBody    any              `yaml:"messageBody,omitempty" json:"messageBody,omitempty"`
	AssertThat     string           `yaml:"assertThat,omitempty" json:"assertThat,omitempty"`
	Matchers       *MessageMatchers `yaml:"matchers,omitempty" json:"matchers,omitempty"`
}

// OutputMessageFile is the messaging output section of a contract file.
type OutputMessageFile struct {
	SentTo     string           `yaml:"sentTo,omitempty" json:"sentTo,omitempty"`
	Headers    map[string]any   `yaml:"headers,omitempty" json:"headers,omitempty"`
	Body       any              `yaml:"body,omitempty" json:"body,omitempty"`
	AssertThat string           `yaml:"assertThat,omitempty" json:"assertThat,omitempty"`
	Matchers   *MessageMatchers `yaml:"matchers,omitempty" json:"matchers,omitempty"`
}

// MessageMatchers loosen message headers and body.
type MessageMatchers struct {
	Headers []KeyMatcher  `yaml:"headers,omitempty" json:"headers,omitempty"`
	Body    []BodyMatcher `yaml:"body,omitempty" json:"body,omitempty"`
}

// ValueMatcher replaces a literal with a pattern or, on the producer side,
// a command. Exactly one field is set.
type ValueMatcher struct {
	Regex      string `yaml:"regex,omitempty" json:"regex,omitempty"`
	Predefined string `yaml:"predefined,omitempty" json:"predefined,omitempty"`
	Command    string `yaml:"command,omitempty" json:"command,omitempty"`
}

// KeyMatcher is a ValueMatcher for one named header, cookie or query parameter.
type KeyMatcher struct {
	Key          string `yaml:"key" json:"key"`
	ValueMatcher `yaml:",inline"`
}

// BodyMatcher applies a matching type to the values at a JSONPath or XPath.
type BodyMatcher struct {
	Path          string `yaml:"path" json:"path"`
	Type          string `yaml:"type,omitempty" json:"type,omitempty"`
	Value         string `yaml:"value,omitempty" json:"value,omitempty"`
	Predefined    string `yaml:"predefined,omitempty" json:"predefined,omitempty"`
	MinOccurrence *int   `yaml:"minOccurrence,omitempty" json:"minOccurrence,omitempty"`
	MaxOccurrence *int   `yaml:"maxOccurrence,omitempty" json:"maxOccurrence,omitempty"`
}
