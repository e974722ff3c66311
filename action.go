package pagecopy

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// Action is a user-facing operation on the extracted document.
type Action string

// Supported actions. The names match the plugin option values.
const (
	ActionCopy          Action = "copy"
	ActionViewMarkdown  Action = "viewMarkdown"
	ActionOpenInChatGPT Action = "openInChatGPT"
	ActionOpenInClaude  Action = "openInClaude"
)

// AllActions lists every action in menu order.
var AllActions = []Action{ActionCopy, ActionViewMarkdown, ActionOpenInChatGPT, ActionOpenInClaude}

// Label returns the menu title of the action.
func (a Action) Label() string {
	switch a {
	case ActionCopy:
		return "Copy page"
	case ActionViewMarkdown:
		return "View as Markdown"
	case ActionOpenInChatGPT:
		return "Open in ChatGPT"
	case ActionOpenInClaude:
		return "Open in Claude"
	}
	return string(a)
}

// Description returns the menu subtitle of the action.
func (a Action) Description() string {
	switch a {
	case ActionCopy:
		return "Copy the page as Markdown for LLMs"
	case ActionViewMarkdown:
		return "View this page as plain text"
	case ActionOpenInChatGPT, ActionOpenInClaude:
		return "Ask questions about this page"
	}
	return ""
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// positioningProps are the button style properties that are applied to the
// mount container so the whole widget can be positioned.
var positioningProps = []string{"position", "top", "right", "bottom", "left", "zIndex", "transform"}

// StyleConfig wraps a Style the way the plugin options nest it.
type StyleConfig struct {
	Style Style `json:"style,omitempty"`
}

// CustomStyles holds the styling overrides from the plugin options.
type CustomStyles struct {
	Button    *StyleConfig `json:"button,omitempty"`
	Container *StyleConfig `json:"container,omitempty"`
}

// Options configures the rendered widget chrome. It never changes what
// is extracted.
type Options struct {
	CustomStyles   CustomStyles `json:"customStyles"`
	EnabledActions []Action     `json:"enabledActions,omitempty"`
}

// ParseOptions decodes plugin options from JSON.
func ParseOptions(r io.Reader) (*Options, error) {
	var opts Options
	if err := json.NewDecoder(r).Decode(&opts); err != nil {
		return nil, Errorf(EINVALID, "invalid options: %v", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Validate returns an error if the options name unknown actions.
func (o *Options) Validate() error {
	for _, a := range o.EnabledActions {
		if !a.Valid() {
			return Errorf(EINVALID, "unknown action %q", a)
		}
	}
	return nil
}

// Enabled reports whether the action is offered. With no explicit list,
// every action is enabled.
func (o *Options) Enabled(a Action) bool {
	if o == nil || len(o.EnabledActions) == 0 {
		return a.Valid()
	}
	for _, e := range o.EnabledActions {
		if e == a {
			return true
		}
	}
	return false
}

// Actions returns the enabled actions in menu order.
func (o *Options) Actions() []Action {
	actions := make([]Action, 0, len(AllActions))
	for _, a := range AllActions {
		if o.Enabled(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// ContainerStyle returns the inline style of the mount container: the
// positioning properties of the button style, overridden by the
// container style.
func (o *Options) ContainerStyle() Style {
	style := Style{}
	if o == nil {
		return style
	}
	if b := o.CustomStyles.Button; b != nil {
		for _, prop := range positioningProps {
			if v, ok := b.Style[prop]; ok {
				style[prop] = v
			}
		}
	}
	if c := o.CustomStyles.Container; c != nil {
		for k, v := range c.Style {
			style[k] = v
		}
	}
	return style
}

// Clipboard writes text to the user's clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Viewer presents a document as plain text.
type Viewer interface {
	View(ctx context.Context, doc *Document) error
}

// Opener opens a URL for the user, typically in a new tab.
type Opener interface {
	Open(ctx context.Context, rawURL string) error
}

// Asker answers questions about a single document.
type Asker interface {
	// Ask answers a natural language question about doc.
	Ask(ctx context.Context, doc *Document, question string) (string, error)
}

// Assistant is an external chat service that accepts a prompt in its URL.
type Assistant struct {
	Name     string
	Endpoint string
}

// Known assistants.
var (
	ChatGPT = Assistant{Name: "chatgpt", Endpoint: "https://chat.openai.com/"}
	Claude  = Assistant{Name: "claude", Endpoint: "https://claude.ai/new"}
)

// AssistantPrompt prefixes the document body when forwarding to an assistant.
const AssistantPrompt = "Please analyze this documentation page:\n\n"

// AssistantFor returns the assistant an action forwards to.
func AssistantFor(a Action) (Assistant, bool) {
	switch a {
	case ActionOpenInChatGPT:
		return ChatGPT, true
	case ActionOpenInClaude:
		return Claude, true
	}
	return Assistant{}, false
}

// AssistantByName looks up a known assistant by name.
func AssistantByName(name string) (Assistant, bool) {
	switch name {
	case ChatGPT.Name:
		return ChatGPT, true
	case Claude.Name:
		return Claude, true
	}
	return Assistant{}, false
}

// AssistantURL builds the redirect URL that opens the assistant with the
// document embedded in the q query parameter.
func AssistantURL(a Assistant, doc *Document) (string, error) {
	u, err := url.Parse(a.Endpoint)
	if err != nil {
		return "", Errorf(EINVALID, "invalid assistant endpoint %q: %v", a.Endpoint, err)
	}
	q := u.Query()
	q.Set("q", AssistantPrompt+doc.Body)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
