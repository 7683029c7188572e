package intake

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Line is one response in both renderings: Display goes to the UI log,
// Spoken to audio playback. Entries may carry fmt verbs filled by the guide.
type Line struct {
	Display string `yaml:"display"`
	Spoken  string `yaml:"spoken"`
}

// PromptSet holds every piece of intake dialogue text plus the trigger
// phrases that start the flow when the trigger gate is enabled. Loaded from
// YAML so wording can change without a rebuild.
type PromptSet struct {
	Triggers  []string        `yaml:"triggers"`
	Questions map[string]Line `yaml:"questions"`
	Messages  map[string]Line `yaml:"messages"`
}

// Message keys used by the guide.
const (
	msgCancelled    = "cancelled"
	msgConfirm      = "confirm"
	msgReconfirm    = "reconfirm"
	msgNoted        = "noted"
	msgAdvance      = "advance"
	msgCreated      = "created"
	msgCreateFailed = "create_failed"
	msgUnauthorized = "unauthorized"
	msgEmpty        = "empty"
	msgHint         = "hint"
	msgRestart      = "restart"
	msgStart        = "start"
)

func DefaultPromptSet() *PromptSet {
	return &PromptSet{
		Triggers: []string{"new client", "create client", "client profile"},
		Questions: map[string]Line{
			FieldLastName:  {Display: "Last Name?", Spoken: "Last Name?"},
			FieldFirstName: {Display: "First Name?", Spoken: "First Name?"},
			FieldAddress:   {Display: "Address, including street, city, state, and zip?", Spoken: "Address, including street, city, state, and zip?"},
			FieldPhone:     {Display: "Phone number?", Spoken: "Phone number?"},
			FieldEmail:     {Display: "Email address?", Spoken: "Email address?"},
		},
		Messages: map[string]Line{
			msgCancelled: {
				Display: "Client creation cancelled. What else can I help with?",
				Spoken:  "Okay, cancelled. What else can I help with?",
			},
			// args: name, spelling
			msgConfirm: {
				Display: "You said %s. Confirm spelling: %s. Is that correct? Say 'yes' or correct it.",
				Spoken:  "I heard %s, spelled %s. Is that correct?",
			},
			// args: name, spelling
			msgReconfirm: {
				Display: "Got it, %s. Spelling: %s. Correct now?",
				Spoken:  "Got it. Confirm spelling: %s. Is that correct?",
			},
			// args: next question
			msgAdvance: {
				Display: "Great! Now, %s",
				Spoken:  "Perfect. %s",
			},
			// args: captured value, next question
			msgNoted: {
				Display: "Noted: %s. Now, %s",
				Spoken:  "%s",
			},
			// args: full name, client id (display); full name (spoken)
			msgCreated: {
				Display: "Perfect! Client profile created for %s. ID: %d. Ready for an estimate?",
				Spoken:  "Client profile created for %s. What would you like to do next?",
			},
			msgCreateFailed: {
				Display: "Error creating client. Try again.",
				Spoken:  "Something went wrong saving the client. Please repeat the email address to retry.",
			},
			msgUnauthorized: {
				Display: "Login required.",
				Spoken:  "Please log in first.",
			},
			msgEmpty: {
				Display: "No text received.",
				Spoken:  "I didn't catch that. Please repeat.",
			},
			msgHint: {
				Display: "Try: \"create new client profile\" to start.",
				Spoken:  "Say \"create new client profile\" to start a new client.",
			},
			// args: first question
			msgRestart: {
				Display: "Let's start over. %s",
				Spoken:  "Sorry, let's start over. %s",
			},
			// args: first question
			msgStart: {
				Display: "Starting a new client profile. %s",
				Spoken:  "Absolutely, let's start a new client profile! Please answer the following questions. %s",
			},
		},
	}
}

// LoadPromptSet reads a prompt set from the given YAML file. A missing file
// is not an error: the built-in defaults are returned. Entries present in the
// file override defaults key by key.
func LoadPromptSet(path string) (*PromptSet, error) {
	defaults := DefaultPromptSet()
	if path == "" {
		return defaults, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults, nil
		}
		return nil, err
	}
	var loaded PromptSet
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, err
	}
	if len(loaded.Triggers) > 0 {
		defaults.Triggers = loaded.Triggers
	}
	for k, v := range loaded.Questions {
		defaults.Questions[k] = v
	}
	for k, v := range loaded.Messages {
		defaults.Messages[k] = v
	}
	return defaults, nil
}

func (p *PromptSet) question(field string) Line {
	if l, ok := p.Questions[field]; ok {
		return l
	}
	return DefaultPromptSet().Questions[field]
}

func (p *PromptSet) message(key string) Line {
	if l, ok := p.Messages[key]; ok {
		return l
	}
	return DefaultPromptSet().Messages[key]
}

func (p *PromptSet) matchesTrigger(text string) bool {
	return containsAny(text, p.Triggers)
}
