// Package main runs the interactive listpad client: a shell that turns typed
// commands into view gestures, with the controller synchronizing the remote
// API and the in-memory model behind them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"listpad/internal/client/controller"
	"listpad/internal/client/model"
	"listpad/internal/client/service"
	"listpad/internal/client/session"
	"listpad/internal/client/view"
)

var (
	version   string
	buildDate string
)

const helpText = `Available commands:
  login <user> <password>        log in
  register <user> <password>     create an account and log in
  logout                         log out and forget the session
  show                           print the current screen
  add-list                       create a list
  rename-list <id> <name>        rename a list
  rm-list <id>                   delete a list
  add-task <list-id>             create a task in a list
  rename-task <id> <title>       retitle a task
  rm-task <id>                   delete a task
  erase                          delete every task and every list
  help                           this text
  exit                           quit`

// repl runs the interactive shell loop, mapping commands onto view gestures.
func repl(v *view.ListView, rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil { // io.EOF on ctrl-d
			return
		}
		args := strings.Fields(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println(helpText)
			continue
		case "exit":
			fmt.Println("Bye")
			return
		case "login":
			v.ClickLoginLink()
			if len(args) == 3 {
				v.SubmitLogin(args[1], args[2])
			} else {
				v.SubmitLogin("", "")
			}
		case "register":
			v.ClickRegisterLink()
			if len(args) == 3 {
				v.SubmitRegister(args[1], args[2])
			} else {
				v.SubmitRegister("", "")
			}
		case "logout":
			v.ClickLogoutLink()
		case "show":
			// Render happens below for every command.
		case "add-list":
			v.ClickAddList()
		case "rename-list":
			id, name, ok := parseIDText(args)
			if !ok {
				fmt.Println("Usage: rename-list <id> <name>")
				continue
			}
			v.ClickListName(id)
			v.TypeListName(id, name)
			v.KeyListName(id, view.KeyEnter)
		case "rm-list":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("Usage: rm-list <id>")
				continue
			}
			v.ClickRemoveList(id)
			answerPrompt(v, rl)
		case "add-task":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("Usage: add-task <list-id>")
				continue
			}
			v.ClickAddTask(id)
		case "rename-task":
			id, title, ok := parseIDText(args)
			if !ok {
				fmt.Println("Usage: rename-task <id> <title>")
				continue
			}
			v.ClickTaskTitle(id)
			v.TypeTaskTitle(id, title)
			v.KeyTaskTitle(id, view.KeyEnter)
		case "rm-task":
			id, ok := parseID(args)
			if !ok {
				fmt.Println("Usage: rm-task <id>")
				continue
			}
			v.ClickRemoveTask(id)
		case "erase":
			v.ClickEraseLists()
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
			continue
		}

		fmt.Print(v.Render())
	}
}

// answerPrompt relays a pending modal question to the terminal.
func answerPrompt(v *view.ListView, rl *readline.Instance) {
	title, text, ok := v.PendingPrompt()
	if !ok {
		return
	}
	fmt.Printf("%s: %s\n", title, text)

	saved := rl.Config.Prompt
	rl.SetPrompt("[y/n]> ")
	defer rl.SetPrompt(saved)

	for {
		line, err := rl.Readline()
		if err != nil {
			v.AnswerPrompt(false)
			return
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			v.AnswerPrompt(true)
			return
		case "n", "no":
			v.AnswerPrompt(false)
			return
		}
		fmt.Println("Please answer y or n.")
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) < 2 {
		return 0, false
	}
	n, err := strconv.ParseInt(args[1], 10, 64)
	return n, err == nil
}

func parseIDText(args []string) (int64, string, bool) {
	if len(args) < 3 {
		return 0, "", false
	}
	n, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.Join(args[2:], " "), true
}

func main() {
	var (
		baseURL   string
		configDir string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&configDir, "config", "", "config directory (default: XDG config dir)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("listpad Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	httpc := &http.Client{Timeout: 30 * time.Second}
	api := service.New(baseURL, httpc)
	m := model.New()
	v := view.New(m)
	store := session.NewStore(configDir)

	// Wiring the controller restores a stored session, if any.
	controller.New(v, m, api, store)

	rl, err := readline.New("listpad> ")
	if err != nil {
		fmt.Println("failed to init terminal:", err)
		return
	}
	defer rl.Close()
	fmt.Print(v.Render())
	repl(v, rl)
}
