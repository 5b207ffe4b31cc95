// Package controller wires view events to remote API calls and the resulting
// model mutations. It is the only writer of the model and owns the
// session-token lifecycle.
package controller

import (
	"context"
	"errors"
	"sync"

	"listpad/internal/client/model"
	"listpad/internal/client/service"
	"listpad/internal/client/session"
	"listpad/internal/client/view"
	"listpad/internal/models"
)

// Placeholder names for freshly created records; renamed inline afterwards.
const (
	newListName  = "New list, click the name to rename it"
	newTaskTitle = "New task, click the title to rename it"
)

const waitingMessage = "Waiting for the API"

// API is the slice of the remote list service the controller consumes.
// *service.Client implements it; tests substitute a fake.
type API interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	SetToken(token string)
	Lists(ctx context.Context) ([]*models.List, error)
	AddList(ctx context.Context, name string) (*models.List, error)
	UpdateList(ctx context.Context, id int64, name string) (bool, error)
	DeleteList(ctx context.Context, id int64) error
	AddTask(ctx context.Context, listID int64, title string) (*models.Task, error)
	ListTasks(ctx context.Context, listID int64) ([]*models.Task, error)
	UpdateTask(ctx context.Context, id int64, title string) (bool, error)
	DeleteTask(ctx context.Context, id int64) error
	DeleteListTasks(ctx context.Context, listID int64) error
}

// ListController sequences service calls with model mutations. Every view
// event handler follows the same policy: failures are caught at the handler
// boundary and surfaced as a banner; none of them propagates an error.
type ListController struct {
	model *model.ListModel
	view  *view.ListView
	api   API
	store *session.Store
}

// New wires the controller to the view's events and restores a stored
// session if one exists: the token is primed into the service and the lists
// reloaded without contacting the login endpoint again.
func New(v *view.ListView, m *model.ListModel, api API, store *session.Store) *ListController {
	c := &ListController{model: m, view: v, api: api, store: store}

	v.Subscribe(view.EventLoginClicked, func(args ...any) {
		c.login(args[0].(view.Credentials))
	})
	v.Subscribe(view.EventLogoutClicked, func(args ...any) {
		c.logout()
	})
	v.Subscribe(view.EventRegisterClicked, func(args ...any) {
		c.register(args[0].(view.Credentials))
	})
	v.Subscribe(view.EventListNameEdited, func(args ...any) {
		c.renameList(args[0].(*models.List), args[1].(string))
	})
	v.Subscribe(view.EventAddListClicked, func(args ...any) {
		c.addList()
	})
	v.Subscribe(view.EventRemoveListClicked, func(args ...any) {
		c.removeList(args[0].(*models.List))
	})
	v.Subscribe(view.EventAddTaskClicked, func(args ...any) {
		c.addTask(args[0].(*models.List))
	})
	v.Subscribe(view.EventTaskNameEdited, func(args ...any) {
		c.renameTask(args[0].(*models.Task), args[1].(string))
	})
	v.Subscribe(view.EventRemoveTaskClicked, func(args ...any) {
		c.removeTask(args[0].(*models.Task))
	})
	v.Subscribe(view.EventEraseListsClicked, func(args ...any) {
		c.eraseLists()
	})

	if sess, err := store.Load(); err == nil && sess.Token != "" {
		api.SetToken(sess.Token)
		m.SetUser(sess.Username)
		c.loadUserLists()
	} else {
		m.SetUser("")
	}

	return c
}

// fail converts a handler failure into a user-visible banner.
func (c *ListController) fail(err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.view.ShowMessage("Error: " + svcErr.Message)
		return
	}
	c.view.ShowMessage("Error: " + err.Error())
}

func (c *ListController) login(creds view.Credentials) {
	c.view.ShowMessage(waitingMessage)

	token, err := c.api.Login(context.Background(), creds.Username, creds.Password)
	if err != nil {
		c.fail(err)
		return
	}

	if err := c.store.Save(session.Session{Token: token, Username: creds.Username}); err != nil {
		c.fail(err)
		return
	}

	// The user setter publishes userChanged, which makes the view switch to
	// the authenticated layout before the lists arrive.
	c.model.SetUser(creds.Username)
	c.loadUserLists()
}

func (c *ListController) logout() {
	if err := c.store.Clear(); err != nil {
		c.fail(err)
		return
	}
	c.model.SetUser("")
}

func (c *ListController) register(creds view.Credentials) {
	c.view.ShowMessage(waitingMessage)

	if _, err := c.api.Register(context.Background(), creds.Username, creds.Password); err != nil {
		c.fail(err)
		return
	}

	// Registration does not return a token; log in with the same credentials.
	c.login(creds)
}

func (c *ListController) renameList(list *models.List, name string) {
	if _, err := c.api.UpdateList(context.Background(), list.ID, name); err != nil {
		c.fail(err)
		return
	}
	list.Name = name
	if err := c.model.UpdateList(list); err != nil {
		c.fail(err)
	}
}

func (c *ListController) addList() {
	list, err := c.api.AddList(context.Background(), newListName)
	if err != nil {
		c.fail(err)
		return
	}
	c.model.AddList(list)
}

func (c *ListController) removeList(list *models.List) {
	if len(c.model.ListTasks(list.ID)) > 0 {
		c.view.Prompt("Careful", "The selected list has tasks. Delete it anyway?", func(accepted bool) {
			if accepted {
				c.deleteList(list)
			}
		})
		return
	}
	c.deleteList(list)
}

func (c *ListController) deleteList(list *models.List) {
	if err := c.api.DeleteList(context.Background(), list.ID); err != nil {
		c.fail(err)
		return
	}
	if err := c.model.DeleteList(list); err != nil {
		c.fail(err)
	}
}

func (c *ListController) addTask(list *models.List) {
	task, err := c.api.AddTask(context.Background(), list.ID, newTaskTitle)
	if err != nil {
		c.fail(err)
		return
	}
	c.model.AddTask(task)
}

func (c *ListController) renameTask(task *models.Task, title string) {
	if _, err := c.api.UpdateTask(context.Background(), task.ID, title); err != nil {
		c.fail(err)
		return
	}
	task.Title = title
	if err := c.model.UpdateTask(task); err != nil {
		c.fail(err)
	}
}

func (c *ListController) removeTask(task *models.Task) {
	if err := c.api.DeleteTask(context.Background(), task.ID); err != nil {
		c.fail(err)
		return
	}
	if err := c.model.DeleteTask(task); err != nil {
		c.fail(err)
	}
}

// eraseLists deletes every task of every list, then every list, in two
// concurrent waves joined by all-complete barriers. After a failure in either
// wave the local mirror is reconciled against the server instead of being
// left diverged.
func (c *ListController) eraseLists() {
	ids := c.model.ListIDs()

	var withTasks []int64
	for _, id := range ids {
		if len(c.model.ListTasks(id)) > 0 {
			withTasks = append(withTasks, id)
		}
	}

	if err := c.fanOut(withTasks, func(ctx context.Context, id int64) error {
		return c.api.DeleteListTasks(ctx, id)
	}); err != nil {
		c.fail(err)
		c.reconcile()
		return
	}

	if err := c.fanOut(ids, func(ctx context.Context, id int64) error {
		return c.api.DeleteList(ctx, id)
	}); err != nil {
		c.fail(err)
		c.reconcile()
		return
	}

	c.model.ClearTasks()
	c.model.ClearLists()
	c.view.ShowMessage("All data erased")
}

// fanOut runs call for every id concurrently and waits for all of them.
// The first failure is returned once every call has finished.
func (c *ListController) fanOut(ids []int64, call func(ctx context.Context, id int64) error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := call(context.Background(), id); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return firstErr
}

// reconcile refetches the authoritative state after a partial bulk failure.
func (c *ListController) reconcile() {
	c.model.ClearTasks()
	c.model.ClearLists()
	c.loadUserLists()
}

// loadUserLists fetches all lists for the user, switches to the lists view,
// then loads every list's tasks concurrently and flattens the results into
// the model in list order.
func (c *ListController) loadUserLists() {
	c.view.ShowBanner(view.Message{Title: "Loading your lists"}, 0)

	lists, err := c.api.Lists(context.Background())
	if err != nil {
		c.fail(err)
		return
	}

	c.view.ShowView(view.ViewLists)
	for _, l := range lists {
		c.model.AddList(l)
	}

	results := make([][]*models.Task, len(lists))
	errs := make([]error, len(lists))
	var wg sync.WaitGroup
	for i, l := range lists {
		wg.Add(1)
		go func(i int, listID int64) {
			defer wg.Done()
			results[i], errs[i] = c.api.ListTasks(context.Background(), listID)
		}(i, l.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.fail(err)
			return
		}
	}

	for _, tasks := range results {
		for _, t := range tasks {
			c.model.AddTask(t)
		}
	}
	c.view.HideMessage()
}
