package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listpad/internal/client/model"
	"listpad/internal/models"
)

// newViewWithList builds a view tracking one list with the given name.
func newViewWithList(t *testing.T, name string) (*ListView, *models.List) {
	t.Helper()
	m := model.New()
	v := New(m)
	list := &models.List{ID: 1, Name: name}
	m.AddList(list)
	return v, list
}

func TestNew_StartsOnHomeView(t *testing.T) {
	v := New(model.New())
	assert.Equal(t, ViewHome, v.CurrentView())
}

func TestUserChanged_LoginShowsGreeterAndHidesViews(t *testing.T) {
	m := model.New()
	v := New(m)

	m.SetUser("fu")

	assert.Equal(t, "Hello, fu", v.Greeter())
	assert.Equal(t, "", v.CurrentView())
}

func TestUserChanged_LogoutResetsToHome(t *testing.T) {
	m := model.New()
	v := New(m)
	m.SetUser("fu")
	m.AddList(&models.List{ID: 1, Name: "Groceries"})
	m.AddTask(&models.Task{ID: 1, ListID: 1, Title: "milk"})
	v.ShowView(ViewLists)

	m.SetUser("")

	assert.Equal(t, ViewHome, v.CurrentView())
	assert.Equal(t, "", v.Greeter())
	_, ok := v.DisplayedListName(1)
	assert.False(t, ok, "list fragments must be discarded on logout")
	_, ok = v.DisplayedTaskTitle(1)
	assert.False(t, ok, "task fragments must be discarded on logout")
}

func TestSubmitLogin_EmptyFieldsRejectedLocally(t *testing.T) {
	v := New(model.New())
	events := 0
	v.Subscribe(EventLoginClicked, func(args ...any) { events++ })

	v.SubmitLogin("", "secret")
	v.SubmitLogin("fu", "")

	assert.Zero(t, events, "no login event for empty credentials")
	banner, ok := v.Banner()
	require.True(t, ok)
	assert.Equal(t, "Username and password are required to log in", banner.Title)
}

func TestSubmitLogin_PublishesCredentials(t *testing.T) {
	v := New(model.New())
	var got Credentials
	v.Subscribe(EventLoginClicked, func(args ...any) {
		got = args[0].(Credentials)
	})

	v.SubmitLogin("fu", "bar")

	assert.Equal(t, Credentials{Username: "fu", Password: "bar"}, got)
}

func TestSubmitRegister_EmptyFieldsRejectedLocally(t *testing.T) {
	v := New(model.New())
	events := 0
	v.Subscribe(EventRegisterClicked, func(args ...any) { events++ })

	v.SubmitRegister("fu", "")

	assert.Zero(t, events)
	_, ok := v.Banner()
	assert.True(t, ok)
}

func TestClickRemoveList_PublishesTrackedRecord(t *testing.T) {
	v, list := newViewWithList(t, "Groceries")
	var got *models.List
	v.Subscribe(EventRemoveListClicked, func(args ...any) {
		got = args[0].(*models.List)
	})

	v.ClickRemoveList(1)

	assert.Same(t, list, got)
}

func TestClickRemoveList_UnknownID(t *testing.T) {
	v, _ := newViewWithList(t, "Groceries")
	events := 0
	v.Subscribe(EventRemoveListClicked, func(args ...any) { events++ })

	v.ClickRemoveList(42)

	assert.Zero(t, events)
	banner, ok := v.Banner()
	require.True(t, ok)
	assert.Equal(t, "No list #42 on screen", banner.Title)
}

func TestRename_EnterEmitsOnceWithNewName(t *testing.T) {
	v, list := newViewWithList(t, "Groceries")

	var emitted []string
	v.Subscribe(EventListNameEdited, func(args ...any) {
		assert.Same(t, list, args[0])
		emitted = append(emitted, args[1].(string))
	})

	v.ClickListName(1)
	v.TypeListName(1, "Chores")
	v.KeyListName(1, KeyEnter)

	require.Equal(t, []string{"Chores"}, emitted)

	// The field left editing mode; Enter again must not re-emit.
	v.KeyListName(1, KeyEnter)
	assert.Len(t, emitted, 1)
}

func TestRename_EscapeRestoresNameWithoutEvent(t *testing.T) {
	v, _ := newViewWithList(t, "Groceries")
	events := 0
	v.Subscribe(EventListNameEdited, func(args ...any) { events++ })

	v.ClickListName(1)
	v.TypeListName(1, "Chores")
	v.KeyListName(1, KeyEscape)

	assert.Zero(t, events, "escape cancels even when the text changed")
	name, ok := v.DisplayedListName(1)
	require.True(t, ok)
	assert.Equal(t, "Groceries", name)
}

func TestRename_SameNameEmitsNothing(t *testing.T) {
	v, _ := newViewWithList(t, "Groceries")
	events := 0
	v.Subscribe(EventListNameEdited, func(args ...any) { events++ })

	v.ClickListName(1)
	v.TypeListName(1, "Groceries")
	v.KeyListName(1, KeyEnter)

	assert.Zero(t, events)
}

func TestRename_BlurCompletesLikeEnter(t *testing.T) {
	v, _ := newViewWithList(t, "Groceries")
	var emitted []string
	v.Subscribe(EventListNameEdited, func(args ...any) {
		emitted = append(emitted, args[1].(string))
	})

	v.ClickListName(1)
	v.TypeListName(1, "Chores")
	v.BlurListName(1)

	assert.Equal(t, []string{"Chores"}, emitted)
}

func TestRename_TypingIgnoredOutsideEditing(t *testing.T) {
	v, _ := newViewWithList(t, "Groceries")

	v.TypeListName(1, "Chores")

	name, ok := v.DisplayedListName(1)
	require.True(t, ok)
	assert.Equal(t, "Groceries", name)
}

func TestTaskRetitle_EnterEmitsOnce(t *testing.T) {
	m := model.New()
	v := New(m)
	m.AddList(&models.List{ID: 1, Name: "Groceries"})
	task := &models.Task{ID: 5, ListID: 1, Title: "milk"}
	m.AddTask(task)

	var emitted []string
	v.Subscribe(EventTaskNameEdited, func(args ...any) {
		assert.Same(t, task, args[0])
		emitted = append(emitted, args[1].(string))
	})

	v.ClickTaskTitle(5)
	v.TypeTaskTitle(5, "oat milk")
	v.KeyTaskTitle(5, KeyEnter)

	assert.Equal(t, []string{"oat milk"}, emitted)
}

func TestListDeleted_RemovesNestedTaskFragments(t *testing.T) {
	m := model.New()
	v := New(m)
	list := &models.List{ID: 1, Name: "Groceries"}
	m.AddList(list)
	m.AddList(&models.List{ID: 2, Name: "Chores"})
	m.AddTask(&models.Task{ID: 10, ListID: 1, Title: "milk"})
	m.AddTask(&models.Task{ID: 11, ListID: 2, Title: "vacuum"})

	require.NoError(t, m.DeleteList(list))

	_, ok := v.DisplayedTaskTitle(10)
	assert.False(t, ok, "tasks nested in the removed list leave the screen")
	_, ok = v.DisplayedTaskTitle(11)
	assert.True(t, ok, "other lists' tasks stay")
}

func TestListUpdated_SyncsDisplayedText(t *testing.T) {
	m := model.New()
	v := New(m)
	list := &models.List{ID: 1, Name: "Groceries"}
	m.AddList(list)

	list.Name = "Chores"
	require.NoError(t, m.UpdateList(list))

	name, ok := v.DisplayedListName(1)
	require.True(t, ok)
	assert.Equal(t, "Chores", name)
}

func TestShowBanner_ReplacesPreviousBanner(t *testing.T) {
	v := New(model.New())

	v.ShowMessage("first")
	v.ShowBanner(Message{Title: "second"}, 0)

	banner, ok := v.Banner()
	require.True(t, ok)
	assert.Equal(t, "second", banner.Title)
	assert.False(t, banner.Closeable)
}

func TestShowBanner_TimeoutAutoHides(t *testing.T) {
	v := New(model.New())

	v.ShowMessageFor("ephemeral", 10*time.Millisecond)

	_, ok := v.Banner()
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := v.Banner()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestHideMessage_Idempotent(t *testing.T) {
	v := New(model.New())
	v.ShowMessage("hi")

	v.HideMessage()
	v.HideMessage()

	_, ok := v.Banner()
	assert.False(t, ok)
}

func TestClickBannerClose_IgnoredForNonCloseable(t *testing.T) {
	v := New(model.New())
	v.ShowBanner(Message{Title: "busy"}, 0)

	v.ClickBannerClose()

	_, ok := v.Banner()
	assert.True(t, ok, "non-closeable banners survive the close gesture")
}

func TestClickBannerClose_DismissesCloseable(t *testing.T) {
	v := New(model.New())
	v.ShowMessage("done")

	v.ClickBannerClose()

	_, ok := v.Banner()
	assert.False(t, ok)
}

func TestPrompt_CallbackInvokedExactlyOnce(t *testing.T) {
	v := New(model.New())
	calls := 0
	var answer bool
	v.Prompt("Careful", "Really?", func(accepted bool) {
		calls++
		answer = accepted
	})

	v.AnswerPrompt(true)
	v.AnswerPrompt(true)
	v.AnswerPrompt(false)

	assert.Equal(t, 1, calls)
	assert.True(t, answer)
	_, _, ok := v.PendingPrompt()
	assert.False(t, ok)
}

func TestAnswerPrompt_NoPendingPrompt(t *testing.T) {
	v := New(model.New())
	// Must not panic.
	v.AnswerPrompt(true)
}

func TestRender_ListsViewShowsEditingMarker(t *testing.T) {
	m := model.New()
	v := New(m)
	m.SetUser("fu")
	v.ShowView(ViewLists)
	m.AddList(&models.List{ID: 1, Name: "Groceries"})
	v.ClickListName(1)

	out := v.Render()

	assert.Contains(t, out, "Hello, fu")
	assert.Contains(t, out, "#1 Groceries (editing)")
}

func TestRender_EmptyListsView(t *testing.T) {
	v := New(model.New())
	v.ShowView(ViewLists)

	assert.True(t, strings.Contains(v.Render(), "No lists yet"))
}
