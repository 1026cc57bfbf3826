// Package tui is the terminal front end. App owns the canonical user list and
// the edit target, routes keys to the list or the form, and turns their
// intents into backend calls. A successful mutation is always followed by a
// full re-fetch.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/userdesk/internal/tui/form"
	"github.com/jask/userdesk/internal/tui/listview"
	"github.com/jask/userdesk/internal/users"
)

// UserService is the backend the App talks to. *api.Client satisfies it.
type UserService interface {
	ListUsers(ctx context.Context) ([]users.User, error)
	CreateUser(ctx context.Context, p users.Payload) error
	UpdateUser(ctx context.Context, id int64, p users.Payload) error
	DeleteUser(ctx context.Context, id int64) error
}

type Options struct {
	PageSize  int
	PageSizes []int
	// Timeout bounds each backend call. Zero leaves calls unbounded.
	Timeout time.Duration
	// Source is shown in the header, typically the API base address.
	Source string
	Logger logrus.FieldLogger
}

type pane int

const (
	paneList pane = iota
	paneForm
)

// App ties the list and the form to the backend.
type App struct {
	ctx     context.Context
	svc     UserService
	log     logrus.FieldLogger
	timeout time.Duration
	source  string

	session  Session
	fetchSeq uint64
	list     listview.Model
	form     form.Model
	focus    pane

	status    string
	statusErr bool

	keys   keyMap
	help   help.Model
	width  int
	height int
}

func New(ctx context.Context, svc UserService, opts Options) *App {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &App{
		ctx:     ctx,
		svc:     svc,
		log:     log,
		timeout: opts.Timeout,
		source:  opts.Source,
		session: Session{Users: []users.User{}},
		list:    listview.New(opts.PageSize, opts.PageSizes),
		form:    form.New(),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

// Session returns a snapshot of the orchestrator state.
func (a *App) Session() Session { return a.session }

func (a *App) List() listview.Model { return a.list }

func (a *App) Form() form.Model { return a.form }

func (a *App) FormFocused() bool { return a.focus == paneForm }

// Status returns the status bar text and whether it reports a failure.
func (a *App) Status() (string, bool) { return a.status, a.statusErr }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.list = a.list.SetWidth(a.listWidth())
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case usersLoadedMsg:
		if m.seq != a.fetchSeq {
			a.log.WithField("seq", m.seq).Debug("dropping stale user list")
			return a, nil
		}
		if m.err != nil {
			a.log.WithError(m.err).Warn("list users failed")
			a.session = a.session.FetchFailed()
		} else {
			a.log.WithField("count", len(m.users)).Debug("users loaded")
			a.session = a.session.FetchSucceeded(m.users)
		}
		a.list = a.list.SetUsers(a.session.Users)
		return a, nil

	case listview.EditMsg:
		if a.form.Submitting() {
			return a, nil
		}
		a.session = a.session.EditRequested(m.User)
		a.form = a.form.SetTarget(a.session.Editing)
		return a, a.focusForm()

	case listview.DeleteRequestMsg:
		a.session = a.session.DeleteRequested(m.UserID)
		return a, nil

	case form.SubmitMsg:
		return a, a.save(m)

	case form.CancelEditMsg:
		a.session = a.session.EditCleared()
		a.form = a.form.SetTarget(nil)
		a.focusList()
		return a, nil

	case form.CloseMsg:
		a.focusList()
		return a, nil

	case savedMsg:
		a.form = a.form.Done(m.err)
		if m.err != nil {
			a.log.WithError(m.err).WithField("mode", m.mode.String()).Warn("save user failed")
			return a, nil
		}
		if m.mode == form.ModeEdit {
			a.session = a.session.EditCleared()
			a.form = a.form.SetTarget(nil)
			a.focusList()
			a.setStatus("user updated", false)
		} else {
			a.setStatus("user created", false)
		}
		return a, a.refresh()

	case deletedMsg:
		if m.err != nil {
			a.log.WithError(m.err).WithField("user_id", m.id).Warn("delete user failed")
			a.setStatus("Delete failed: "+firstLine(m.err.Error()), true)
			return a, nil
		}
		if a.session.EditingID() == m.id && !a.form.Submitting() {
			a.session = a.session.EditCleared()
			a.form = a.form.SetTarget(nil)
		}
		a.setStatus("user deleted", false)
		return a, a.refresh()
	}

	// Cursor blinks and other component messages.
	var listCmd, formCmd tea.Cmd
	a.list, listCmd = a.list.Update(msg)
	a.form, formCmd = a.form.Update(msg)
	return a, tea.Batch(listCmd, formCmd)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}
	if a.session.Confirming() {
		return a, a.resolveDelete(key.Matches(msg, a.keys.Confirm))
	}
	if a.focus == paneForm {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	if !a.list.Searching() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Refresh):
			if a.session.Loading {
				return a, nil
			}
			return a, a.refresh()
		case key.Matches(msg, a.keys.NewUser):
			return a, a.focusForm()
		}
	}
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// resolveDelete closes the confirmation dialog. Only a confirmed answer
// reaches the backend.
func (a *App) resolveDelete(confirmed bool) tea.Cmd {
	var id int64
	a.session, id = a.session.DeleteResolved()
	if !confirmed || id == 0 {
		return nil
	}
	svc, log, parent, timeout := a.svc, a.log, a.ctx, a.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(parent, timeout)
		defer cancel()
		err := svc.DeleteUser(ctx, id)
		if err == nil {
			log.WithField("user_id", id).Info("user deleted")
		}
		return deletedMsg{id: id, err: err}
	}
}

// refresh starts a fetch of the full list. It supersedes any fetch still in
// flight.
func (a *App) refresh() tea.Cmd {
	a.session = a.session.FetchStarted()
	a.fetchSeq++
	seq, svc, parent, timeout := a.fetchSeq, a.svc, a.ctx, a.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(parent, timeout)
		defer cancel()
		list, err := svc.ListUsers(ctx)
		return usersLoadedMsg{seq: seq, users: list, err: err}
	}
}

func (a *App) save(m form.SubmitMsg) tea.Cmd {
	svc, log, parent, timeout := a.svc, a.log, a.ctx, a.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(parent, timeout)
		defer cancel()
		var err error
		if m.Mode == form.ModeEdit {
			err = svc.UpdateUser(ctx, m.UserID, m.Payload)
		} else {
			err = svc.CreateUser(ctx, m.Payload)
		}
		if err == nil {
			log.WithFields(logrus.Fields{"mode": m.Mode.String(), "username": m.Payload.Username}).Info("user saved")
		}
		return savedMsg{mode: m.Mode, id: m.UserID, err: err}
	}
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}

func (a *App) focusForm() tea.Cmd {
	a.focus = paneForm
	var cmd tea.Cmd
	a.form, cmd = a.form.Focus()
	return cmd
}

func (a *App) focusList() {
	a.focus = paneList
	a.form = a.form.Blur()
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}
