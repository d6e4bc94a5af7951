package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophdir/internal/logging"
)

// handlers defines the command surface the menu loop dispatches to.
// The real App type satisfies this interface; tests provide a recording stub.
type handlers interface {
	GetUserBySignInName(ctx context.Context) error
	GetUserByDisplayName(ctx context.Context) error
	GetUserByObjectID(ctx context.Context) error
	ListUsers(ctx context.Context) error
	ListUsersByName(ctx context.Context) error
	CreateUser(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	SetUserPassword(ctx context.Context) error

	GetGroupByName(ctx context.Context) error
	GetGroupByObjectID(ctx context.Context) error
	ListGroups(ctx context.Context) error
	ListGroupsByName(ctx context.Context) error
	CreateGroup(ctx context.Context) error
	DeleteGroup(ctx context.Context) error
	AddGroupOwner(ctx context.Context) error
	RemoveGroupOwner(ctx context.Context) error
	AddGroupMember(ctx context.Context) error
	RemoveGroupMember(ctx context.Context) error

	RecentOperations(ctx context.Context) error
}

type state int

const (
	stateMain state = iota
	stateUsers
	stateUserLists
	stateGroups
	stateGroupLists
	stateExit
)

func (s state) String() string {
	switch s {
	case stateMain:
		return "main"
	case stateUsers:
		return "users"
	case stateUserLists:
		return "user lists"
	case stateGroups:
		return "groups"
	case stateGroupLists:
		return "group lists"
	case stateExit:
		return "exit"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transition is the effect of one menu key: run action (if any), then move
// to next.
type transition struct {
	next   state
	action func(handlers, context.Context) error
}

// transitions is the complete menu graph. A key missing from a state's row
// is an unknown command: a notice is printed and the state is kept.
var transitions = map[state]map[string]transition{
	stateMain: {
		"U": {next: stateUsers},
		"G": {next: stateGroups},
		"J": {next: stateMain, action: handlers.RecentOperations},
		"X": {next: stateExit},
		"":  {next: stateExit},
	},
	stateUsers: {
		"1": {next: stateUsers, action: handlers.GetUserBySignInName},
		"2": {next: stateUsers, action: handlers.GetUserByDisplayName},
		"3": {next: stateUsers, action: handlers.GetUserByObjectID},
		"4": {next: stateUserLists},
		"5": {next: stateUsers, action: handlers.CreateUser},
		"6": {next: stateUsers, action: handlers.DeleteUser},
		"7": {next: stateUsers, action: handlers.SetUserPassword},
		"M": {next: stateMain},
	},
	stateUserLists: {
		"1": {next: stateUserLists, action: handlers.ListUsers},
		"2": {next: stateUserLists, action: handlers.ListUsersByName},
		"R": {next: stateUsers},
	},
	stateGroups: {
		"1": {next: stateGroups, action: handlers.GetGroupByName},
		"2": {next: stateGroups, action: handlers.GetGroupByObjectID},
		"3": {next: stateGroupLists},
		"4": {next: stateGroups, action: handlers.CreateGroup},
		"5": {next: stateGroups, action: handlers.DeleteGroup},
		"6": {next: stateGroups, action: handlers.AddGroupOwner},
		"7": {next: stateGroups, action: handlers.RemoveGroupOwner},
		"8": {next: stateGroups, action: handlers.AddGroupMember},
		"9": {next: stateGroups, action: handlers.RemoveGroupMember},
		"M": {next: stateMain},
	},
	stateGroupLists: {
		"1": {next: stateGroupLists, action: handlers.ListGroups},
		"2": {next: stateGroupLists, action: handlers.ListGroupsByName},
		"R": {next: stateGroups},
	},
}

// step looks up the transition for cmd in state s. The second result is
// false for an unknown command, in which case the returned transition keeps s.
func step(s state, cmd string) (transition, bool) {
	t, ok := transitions[s][cmd]
	if !ok {
		return transition{next: s}, false
	}
	return t, true
}

type menuItem struct{ key, text string }

type menu struct {
	title string
	items []menuItem
}

var menus = map[state]menu{
	stateMain: {"MAIN MENU", []menuItem{
		{"U", "MANAGE USERS"},
		{"G", "MANAGE GROUPS"},
		{"J", "RECENT OPERATIONS"},
		{"X", "EXIT"},
	}},
	stateUsers: {"MANAGE USERS MENU", []menuItem{
		{"1", "GET USER BY USER NAME"},
		{"2", "GET USER BY DISPLAY NAME"},
		{"3", "GET USER BY OBJECT ID"},
		{"4", "GET USERS"},
		{"5", "CREATE USER"},
		{"6", "DELETE USER"},
		{"7", "SET USER PASSWORD"},
		{"M", "MAIN MENU"},
	}},
	stateUserLists: {"MANAGE USERS SUBMENU -> GET USERS", []menuItem{
		{"1", "GET USERS (ALL)"},
		{"2", "GET USERS BY DISPLAY NAME (FULL OR STARTING WITH)"},
		{"R", "RETURN TO MANAGE USERS MENU"},
	}},
	stateGroups: {"MANAGE GROUPS MENU", []menuItem{
		{"1", "GET GROUPS BY GROUP NAME"},
		{"2", "GET GROUPS BY OBJECT ID"},
		{"3", "GET GROUPS"},
		{"4", "CREATE GROUP"},
		{"5", "DELETE GROUP"},
		{"6", "ADD OWNER TO GROUP"},
		{"7", "REMOVE OWNER FROM GROUP"},
		{"8", "ADD USER TO GROUP"},
		{"9", "REMOVE USER FROM GROUP"},
		{"M", "MAIN MENU"},
	}},
	stateGroupLists: {"MANAGE GROUPS SUBMENU -> GET GROUPS", []menuItem{
		{"1", "GET GROUPS (ALL)"},
		{"2", "GET GROUPS BY GROUP NAME (FULL OR STARTING WITH)"},
		{"R", "RETURN TO MANAGE GROUPS MENU"},
	}},
}

var rule = strings.Repeat("=", 80)

func writeMenu(w io.Writer, s state, domain string) {
	m := menus[s]
	fmt.Fprintf(w, "IDENTITY MANAGEMENT: %s (%s)\n\n", m.title, domain)
	fmt.Fprintln(w, "COMMAND DESCRIPTION")
	fmt.Fprintln(w, rule)
	for _, it := range m.items {
		fmt.Fprintf(w, "[ %s ]   %s\n", it.key, it.text)
	}
	fmt.Fprintln(w, rule)
}

// menuLoop runs the menu state machine until the exit state or EOF.
type menuLoop struct {
	h      handlers
	reader *bufio.Reader
	out    io.Writer
	domain string
	logger logging.Logger
}

func (m *menuLoop) run(ctx context.Context) error {
	s := stateMain
	for s != stateExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		writeMenu(m.out, s, m.domain)
		cmd, err := readCommand(m.reader, m.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out)
				return nil
			}
			return err
		}

		t, ok := step(s, cmd)
		if !ok {
			fmt.Fprintf(m.out, "\nunknown command: %q\n\n", cmd)
			continue
		}
		if t.action != nil {
			m.dispatch(ctx, s, cmd, t.action)
		}
		s = t.next
	}
	return nil
}

// dispatch runs one command handler. Handlers print their own outcome; the
// returned error is only logged. A panicking handler is reported and the
// loop continues.
func (m *menuLoop) dispatch(ctx context.Context, s state, cmd string, action func(handlers, context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(m.out, "\nunexpected exception-> %v\n", r)
			m.logger.Error(ctx, "command panicked", "menu", s.String(), "command", cmd, "panic", r)
		}
	}()

	if err := action(m.h, ctx); err != nil {
		m.logger.Debug(ctx, "command failed", "menu", s.String(), "command", cmd, "error", err)
	}
}
