// Package view renders the list model for a terminal and converts user
// gestures into semantic events. It subscribes to the model's change events
// to stay synchronized and never talks to the network itself.
package view

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"listpad/internal/client/model"
	"listpad/internal/event"
	"listpad/internal/models"
)

// Named top-level views, shown exclusively of one another.
const (
	ViewHome     = "home-view"
	ViewLogin    = "login-view"
	ViewRegister = "register-view"
	ViewLists    = "lists-view"
)

// Semantic events raised toward the controller.
const (
	EventLoginClicked      = "loginButtonClicked"
	EventLogoutClicked     = "logoutButtonClicked"
	EventRegisterClicked   = "registerButtonClicked"
	EventAddListClicked    = "addListButtonClicked"
	EventRemoveListClicked = "removeListButtonClicked"
	EventEraseListsClicked = "eraseListsButtonClicked"
	EventListNameEdited    = "listNameEdited"
	EventAddTaskClicked    = "addTaskButtonClicked"
	EventRemoveTaskClicked = "removeTaskButtonClicked"
	EventTaskNameEdited    = "taskNameEdited"
)

// Credentials is the payload of login and register events.
type Credentials struct {
	Username string
	Password string
}

// Message is a banner shown over the interface. Non-closeable banners cannot
// be dismissed by the user and are used to block interaction while a call is
// in flight.
type Message struct {
	Title     string
	Text      string
	Closeable bool
}

type listEntry struct {
	list   *models.List
	editor editor
}

type taskEntry struct {
	task   *models.Task
	editor editor
}

type pendingPrompt struct {
	title    string
	text     string
	callback func(bool)
}

// ListView projects the model onto a text screen and raises semantic events
// on its embedded bus. Gesture methods are the input surface: the REPL (or a
// test) calls them the way a browser would dispatch DOM events.
type ListView struct {
	event.Bus

	model *model.ListModel

	mu          sync.Mutex
	current     string
	greeter     string
	banner      *Message
	bannerTimer *time.Timer
	prompt      *pendingPrompt
	lists       []*listEntry
	tasks       []*taskEntry
}

// New creates a view bound to the model's change events.
func New(m *model.ListModel) *ListView {
	v := &ListView{model: m, current: ViewHome}

	m.Subscribe(model.EventUserChanged, func(args ...any) {
		v.onUserChanged(args[0].(string))
	})
	m.Subscribe(model.EventListAdded, func(args ...any) {
		v.onListAdded(args[0].(*models.List))
	})
	m.Subscribe(model.EventListUpdated, func(args ...any) {
		v.onListUpdated(args[0].(*models.List))
	})
	m.Subscribe(model.EventListDeleted, func(args ...any) {
		v.onListDeleted(args[0].(*models.List))
	})
	m.Subscribe(model.EventTaskAdded, func(args ...any) {
		v.onTaskAdded(args[0].(*models.Task))
	})
	m.Subscribe(model.EventTaskDeleted, func(args ...any) {
		v.onTaskDeleted(args[0].(*models.Task))
	})

	return v
}

// Model event handlers.

func (v *ListView) onUserChanged(user string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if user == "" {
		v.lists = nil
		v.tasks = nil
		v.greeter = ""
		v.current = ViewHome
		return
	}
	v.greeter = "Hello, " + user
	v.current = ""
}

func (v *ListView) onListAdded(list *models.List) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lists = append(v.lists, &listEntry{list: list, editor: editor{text: list.Name}})
}

func (v *ListView) onListUpdated(list *models.List) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.listEntry(list.ID); e != nil {
		e.editor.sync(list.Name)
	}
}

func (v *ListView) onListDeleted(list *models.List) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, e := range v.lists {
		if e.list == list {
			v.lists = append(v.lists[:i], v.lists[i+1:]...)
			break
		}
	}
	// Removing the list fragment removes the task fragments nested in it.
	kept := v.tasks[:0]
	for _, t := range v.tasks {
		if t.task.ListID != list.ID {
			kept = append(kept, t)
		}
	}
	v.tasks = kept
}

func (v *ListView) onTaskAdded(task *models.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tasks = append(v.tasks, &taskEntry{task: task, editor: editor{text: task.Title}})
}

func (v *ListView) onTaskDeleted(task *models.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, e := range v.tasks {
		if e.task == task {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
			return
		}
	}
}

// Gestures: navigation and session.

// ClickLoginLink switches to the login view.
func (v *ListView) ClickLoginLink() {
	v.ShowView(ViewLogin)
}

// ClickRegisterLink switches to the register view.
func (v *ListView) ClickRegisterLink() {
	v.ShowView(ViewRegister)
}

// ClickLogoutLink raises logoutButtonClicked.
func (v *ListView) ClickLogoutLink() {
	v.Publish(EventLogoutClicked)
}

// SubmitLogin validates the credentials and raises loginButtonClicked.
// Empty fields are rejected locally with a banner; no event is raised.
func (v *ListView) SubmitLogin(username, password string) {
	if username == "" || password == "" {
		v.ShowMessage("Username and password are required to log in")
		return
	}
	v.Publish(EventLoginClicked, Credentials{Username: username, Password: password})
}

// SubmitRegister validates the credentials and raises registerButtonClicked.
func (v *ListView) SubmitRegister(username, password string) {
	if username == "" || password == "" {
		v.ShowMessage("Username and password are required to register")
		return
	}
	v.Publish(EventRegisterClicked, Credentials{Username: username, Password: password})
}

// Gestures: lists and tasks.

// ClickAddList raises addListButtonClicked.
func (v *ListView) ClickAddList() {
	v.Publish(EventAddListClicked)
}

// ClickEraseLists raises eraseListsButtonClicked.
func (v *ListView) ClickEraseLists() {
	v.Publish(EventEraseListsClicked)
}

// ClickRemoveList raises removeListButtonClicked for the list shown under id.
func (v *ListView) ClickRemoveList(id int64) {
	v.mu.Lock()
	e := v.listEntry(id)
	v.mu.Unlock()
	if e == nil {
		v.ShowMessage(fmt.Sprintf("No list #%d on screen", id))
		return
	}
	v.Publish(EventRemoveListClicked, e.list)
}

// ClickAddTask raises addTaskButtonClicked for the list shown under id.
func (v *ListView) ClickAddTask(listID int64) {
	v.mu.Lock()
	e := v.listEntry(listID)
	v.mu.Unlock()
	if e == nil {
		v.ShowMessage(fmt.Sprintf("No list #%d on screen", listID))
		return
	}
	v.Publish(EventAddTaskClicked, e.list)
}

// ClickRemoveTask raises removeTaskButtonClicked for the task shown under id.
func (v *ListView) ClickRemoveTask(id int64) {
	v.mu.Lock()
	e := v.taskEntry(id)
	v.mu.Unlock()
	if e == nil {
		v.ShowMessage(fmt.Sprintf("No task #%d on screen", id))
		return
	}
	v.Publish(EventRemoveTaskClicked, e.task)
}

// Gestures: inline list rename.

// ClickListName puts the list's name field into editing mode.
func (v *ListView) ClickListName(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.listEntry(id); e != nil {
		e.editor.click()
	}
}

// TypeListName replaces the displayed name while editing.
func (v *ListView) TypeListName(id int64, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.listEntry(id); e != nil {
		e.editor.typeText(text)
	}
}

// KeyListName delivers Enter or Escape to the list's name field.
func (v *ListView) KeyListName(id int64, key Key) {
	v.mu.Lock()
	e := v.listEntry(id)
	if e == nil {
		v.mu.Unlock()
		return
	}
	switch key {
	case KeyEscape:
		e.editor.cancel(e.list.Name)
		v.mu.Unlock()
	case KeyEnter:
		newName, emit := e.editor.complete(e.list.Name)
		v.mu.Unlock()
		if emit {
			v.Publish(EventListNameEdited, e.list, newName)
		}
	default:
		v.mu.Unlock()
	}
}

// BlurListName completes an in-flight edit of the list's name field.
func (v *ListView) BlurListName(id int64) {
	v.mu.Lock()
	e := v.listEntry(id)
	if e == nil {
		v.mu.Unlock()
		return
	}
	newName, emit := e.editor.complete(e.list.Name)
	v.mu.Unlock()
	if emit {
		v.Publish(EventListNameEdited, e.list, newName)
	}
}

// Gestures: inline task retitle.

// ClickTaskTitle puts the task's title field into editing mode.
func (v *ListView) ClickTaskTitle(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.taskEntry(id); e != nil {
		e.editor.click()
	}
}

// TypeTaskTitle replaces the displayed title while editing.
func (v *ListView) TypeTaskTitle(id int64, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.taskEntry(id); e != nil {
		e.editor.typeText(text)
	}
}

// KeyTaskTitle delivers Enter or Escape to the task's title field.
func (v *ListView) KeyTaskTitle(id int64, key Key) {
	v.mu.Lock()
	e := v.taskEntry(id)
	if e == nil {
		v.mu.Unlock()
		return
	}
	switch key {
	case KeyEscape:
		e.editor.cancel(e.task.Title)
		v.mu.Unlock()
	case KeyEnter:
		newName, emit := e.editor.complete(e.task.Title)
		v.mu.Unlock()
		if emit {
			v.Publish(EventTaskNameEdited, e.task, newName)
		}
	default:
		v.mu.Unlock()
	}
}

// BlurTaskTitle completes an in-flight edit of the task's title field.
func (v *ListView) BlurTaskTitle(id int64) {
	v.mu.Lock()
	e := v.taskEntry(id)
	if e == nil {
		v.mu.Unlock()
		return
	}
	newName, emit := e.editor.complete(e.task.Title)
	v.mu.Unlock()
	if emit {
		v.Publish(EventTaskNameEdited, e.task, newName)
	}
}

// Banner, prompt and view switching.

// ShowMessage displays a closeable banner with no auto-hide.
func (v *ListView) ShowMessage(message string) {
	v.ShowBanner(Message{Title: message, Closeable: true}, 0)
}

// ShowMessageFor displays a closeable banner that hides itself after timeout.
func (v *ListView) ShowMessageFor(message string, timeout time.Duration) {
	v.ShowBanner(Message{Title: message, Closeable: true}, timeout)
}

// ShowBanner displays a banner, replacing any banner already shown. When
// timeout is positive the banner hides itself once it elapses.
func (v *ListView) ShowBanner(msg Message, timeout time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.bannerTimer != nil {
		v.bannerTimer.Stop()
		v.bannerTimer = nil
	}
	v.banner = &msg
	if timeout > 0 {
		v.bannerTimer = time.AfterFunc(timeout, v.HideMessage)
	}
}

// HideMessage hides the banner. Hiding an absent banner is a no-op.
func (v *ListView) HideMessage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.bannerTimer != nil {
		v.bannerTimer.Stop()
		v.bannerTimer = nil
	}
	v.banner = nil
}

// ClickBannerClose dismisses a closeable banner. Non-closeable banners stay.
func (v *ListView) ClickBannerClose() {
	v.mu.Lock()
	closeable := v.banner != nil && v.banner.Closeable
	v.mu.Unlock()
	if closeable {
		v.HideMessage()
	}
}

// Prompt displays a modal question. callback is invoked exactly once with the
// user's decision, even if the answer gesture repeats.
func (v *ListView) Prompt(title, text string, callback func(accepted bool)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prompt = &pendingPrompt{title: title, text: text, callback: callback}
}

// AnswerPrompt delivers the user's decision to the pending prompt and detaches
// it. Answering with no prompt pending is a no-op.
func (v *ListView) AnswerPrompt(accepted bool) {
	v.mu.Lock()
	p := v.prompt
	v.prompt = nil
	v.mu.Unlock()
	if p != nil {
		p.callback(accepted)
	}
}

// ShowView shows exactly one of the named top-level views, hiding the rest.
// An empty name hides all of them.
func (v *ListView) ShowView(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = name
}

// State accessors.

// CurrentView returns the name of the visible top-level view, or "" when all
// are hidden.
func (v *ListView) CurrentView() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Greeter returns the greeting line, or "" when anonymous.
func (v *ListView) Greeter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.greeter
}

// Banner returns the banner currently shown, if any.
func (v *ListView) Banner() (Message, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.banner == nil {
		return Message{}, false
	}
	return *v.banner, true
}

// PendingPrompt returns the modal question awaiting an answer, if any.
func (v *ListView) PendingPrompt() (title, text string, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.prompt == nil {
		return "", "", false
	}
	return v.prompt.title, v.prompt.text, true
}

// DisplayedListName returns the name text currently shown for the list.
func (v *ListView) DisplayedListName(id int64) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.listEntry(id); e != nil {
		return e.editor.text, true
	}
	return "", false
}

// DisplayedTaskTitle returns the title text currently shown for the task.
func (v *ListView) DisplayedTaskTitle(id int64) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e := v.taskEntry(id); e != nil {
		return e.editor.text, true
	}
	return "", false
}

// Render builds the current screen as text.
func (v *ListView) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var b strings.Builder
	if v.greeter != "" {
		fmt.Fprintf(&b, "%s\n", v.greeter)
	}
	if v.banner != nil {
		fmt.Fprintf(&b, "[!] %s", v.banner.Title)
		if v.banner.Text != "" {
			fmt.Fprintf(&b, ": %s", v.banner.Text)
		}
		b.WriteString("\n")
	}

	switch v.current {
	case ViewHome:
		b.WriteString("Welcome to listpad. Use 'login <user> <password>' or 'register <user> <password>'.\n")
	case ViewLogin:
		b.WriteString("Login: type 'login <user> <password>'.\n")
	case ViewRegister:
		b.WriteString("Register: type 'register <user> <password>'.\n")
	case ViewLists:
		v.renderLists(&b)
	}

	if v.prompt != nil {
		fmt.Fprintf(&b, "%s: %s [y/n]\n", v.prompt.title, v.prompt.text)
	}
	return b.String()
}

func (v *ListView) renderLists(b *strings.Builder) {
	if len(v.lists) == 0 {
		b.WriteString("No lists yet. Use 'add-list' to create one.\n")
		return
	}
	for _, le := range v.lists {
		marker := ""
		if le.editor.editing() {
			marker = " (editing)"
		}
		fmt.Fprintf(b, "#%d %s%s\n", le.list.ID, le.editor.text, marker)
		for _, te := range v.tasks {
			if te.task.ListID != le.list.ID {
				continue
			}
			marker := ""
			if te.editor.editing() {
				marker = " (editing)"
			}
			fmt.Fprintf(b, "    [%d] %s%s  (created %s)\n",
				te.task.ID, te.editor.text, marker,
				te.task.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
}

func (v *ListView) listEntry(id int64) *listEntry {
	for _, e := range v.lists {
		if e.list.ID == id {
			return e
		}
	}
	return nil
}

func (v *ListView) taskEntry(id int64) *taskEntry {
	for _, e := range v.tasks {
		if e.task.ID == id {
			return e
		}
	}
	return nil
}
