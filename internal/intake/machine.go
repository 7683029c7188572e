package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// SessionStore holds the per-session dialogue state across requests.
type SessionStore interface {
	Load(sessionID string) (State, bool)
	Save(sessionID string, st State)
	Clear(sessionID string)
}

// ClientCreator commits a completed intake as a durable client record.
type ClientCreator interface {
	CreateClient(ctx context.Context, fullName, address, phone, email string) (int64, error)
}

// Authorizer reports whether the session belongs to a logged-in staff member.
type Authorizer interface {
	IsStaffAuthenticated(sessionID string) bool
}

// Result is the outcome of one utterance: what to show, what to speak,
// whether the dialogue returned to idle, and the new client id on commit.
type Result struct {
	Success  bool
	Display  string
	Spoken   string
	Reset    bool
	ClientID int64
}

// Guide is the voice client-intake dialogue state machine. It walks a staff
// member through capturing last name (with spelled-out confirmation), first
// name, address, phone, and email, then creates the client record.
type Guide struct {
	sessions       SessionStore
	clients        ClientCreator
	auth           Authorizer
	prompts        *PromptSet
	requireTrigger bool
}

func NewGuide(sessions SessionStore, clients ClientCreator, auth Authorizer, prompts *PromptSet, requireTrigger bool) (*Guide, error) {
	if sessions == nil {
		return nil, errors.New("intake: session store must not be nil")
	}
	if clients == nil {
		return nil, errors.New("intake: client creator must not be nil")
	}
	if auth == nil {
		return nil, errors.New("intake: authorizer must not be nil")
	}
	if prompts == nil {
		prompts = DefaultPromptSet()
	}
	return &Guide{
		sessions:       sessions,
		clients:        clients,
		auth:           auth,
		prompts:        prompts,
		requireTrigger: requireTrigger,
	}, nil
}

// HandleUtterance processes one utterance for a session. It never returns an
// error: every failure mode is folded into the Result so the hosting handler
// can always answer the request.
func (g *Guide) HandleUtterance(ctx context.Context, sessionID, raw string) Result {
	if !g.auth.IsStaffAuthenticated(sessionID) {
		return g.plain(msgUnauthorized, false)
	}

	text := Normalize(raw)
	if text == "" {
		return g.plain(msgEmpty, false)
	}

	st, ok := g.sessions.Load(sessionID)
	if !ok {
		st = NewState()
	}
	if !st.valid() {
		log.Printf("[intake] corrupt dialogue state for session %s (step %d); resetting", sessionID, st.Step)
		g.sessions.Clear(sessionID)
		return g.restart()
	}

	if isCancel(text) {
		g.sessions.Clear(sessionID)
		m := g.prompts.message(msgCancelled)
		return Result{Success: true, Display: m.Display, Spoken: m.Spoken, Reset: true}
	}

	switch st.Step {
	case StepIdle:
		if g.requireTrigger {
			if !g.prompts.matchesTrigger(text) {
				return g.plain(msgHint, false)
			}
			st.Step = StepAwaitLastName
			g.sessions.Save(sessionID, st)
			q := g.prompts.question(FieldLastName)
			m := g.prompts.message(msgStart)
			return Result{
				Success: true,
				Display: fmt.Sprintf(m.Display, q.Display),
				Spoken:  fmt.Sprintf(m.Spoken, q.Spoken),
			}
		}
		return g.captureLastName(sessionID, st, text, msgConfirm)

	case StepAwaitLastName:
		return g.captureLastName(sessionID, st, text, msgConfirm)

	case StepAwaitLastNameConfirm:
		if isAffirmative(text) {
			st.Step = StepAwaitFirstName
			g.sessions.Save(sessionID, st)
			return g.ask(FieldFirstName)
		}
		return g.captureLastName(sessionID, st, text, msgReconfirm)

	case StepAwaitFirstName:
		st.Collected[FieldFirstName] = strings.TrimSpace(raw)
		st.Step = StepAwaitAddress
		g.sessions.Save(sessionID, st)
		return g.noted(st.Collected[FieldFirstName], FieldAddress)

	case StepAwaitAddress:
		st.Collected[FieldAddress] = strings.TrimSpace(raw)
		st.Step = StepAwaitPhone
		g.sessions.Save(sessionID, st)
		return g.noted(st.Collected[FieldAddress], FieldPhone)

	case StepAwaitPhone:
		st.Collected[FieldPhone] = strings.TrimSpace(raw)
		st.Step = StepAwaitEmail
		g.sessions.Save(sessionID, st)
		return g.noted(st.Collected[FieldPhone], FieldEmail)

	case StepAwaitEmail:
		return g.commit(ctx, sessionID, st, strings.TrimSpace(raw))
	}

	// valid() rules this out, but never crash on an utterance.
	log.Printf("[intake] unhandled step %d for session %s; resetting", st.Step, sessionID)
	g.sessions.Clear(sessionID)
	return g.restart()
}

// captureLastName stores a (re-)captured last name, title-cased, and asks for
// spelled-out confirmation. Used for the first capture and the correction
// self-loop at the confirm step.
func (g *Guide) captureLastName(sessionID string, st State, text, key string) Result {
	name := titleCase(text)
	st.Collected[FieldLastName] = name
	st.Step = StepAwaitLastNameConfirm
	g.sessions.Save(sessionID, st)

	spelled := spellOut(name)
	m := g.prompts.message(key)
	r := Result{Success: true, Display: fmt.Sprintf(m.Display, name, spelled)}
	if key == msgReconfirm {
		r.Spoken = fmt.Sprintf(m.Spoken, spelled)
	} else {
		r.Spoken = fmt.Sprintf(m.Spoken, name, spelled)
	}
	return r
}

// commit stores the email and creates the client. On repository failure the
// session state is left untouched at the email step so repeating the email
// retries the commit without re-entering earlier answers.
func (g *Guide) commit(ctx context.Context, sessionID string, st State, email string) Result {
	fullName := st.Collected[FieldFirstName] + " " + st.Collected[FieldLastName]
	id, err := g.clients.CreateClient(ctx, fullName, st.Collected[FieldAddress], st.Collected[FieldPhone], email)
	if err != nil {
		log.Printf("[intake] client creation failed for session %s: %v", sessionID, err)
		return g.plain(msgCreateFailed, false)
	}

	g.sessions.Clear(sessionID)
	m := g.prompts.message(msgCreated)
	return Result{
		Success:  true,
		Display:  fmt.Sprintf(m.Display, fullName, id),
		Spoken:   fmt.Sprintf(m.Spoken, fullName),
		Reset:    true,
		ClientID: id,
	}
}

func (g *Guide) ask(field string) Result {
	q := g.prompts.question(field)
	m := g.prompts.message(msgAdvance)
	return Result{
		Success: true,
		Display: fmt.Sprintf(m.Display, q.Display),
		Spoken:  fmt.Sprintf(m.Spoken, q.Spoken),
	}
}

func (g *Guide) noted(value, nextField string) Result {
	q := g.prompts.question(nextField)
	m := g.prompts.message(msgNoted)
	return Result{
		Success: true,
		Display: fmt.Sprintf(m.Display, value, q.Display),
		Spoken:  fmt.Sprintf(m.Spoken, q.Spoken),
	}
}

func (g *Guide) restart() Result {
	m := g.prompts.message(msgRestart)
	var first Line
	if g.requireTrigger {
		first = g.prompts.message(msgHint)
	} else {
		first = g.prompts.question(FieldLastName)
	}
	return Result{
		Success: false,
		Display: fmt.Sprintf(m.Display, first.Display),
		Spoken:  fmt.Sprintf(m.Spoken, first.Spoken),
		Reset:   true,
	}
}

func (g *Guide) plain(key string, success bool) Result {
	m := g.prompts.message(key)
	return Result{Success: success, Display: m.Display, Spoken: m.Spoken}
}
