// Package cli provides the interactive directory console.
//
// It wires configuration, the directory client, the user and group services
// and the optional operation journal, then runs a menu loop on stdin/stdout.
//
// Menus are modelled as explicit states with a transition table (see
// transitions). Each key either moves to another menu, runs a command
// handler, or both. Keys without a transition print a notice and leave the
// state unchanged. EOF on input ends the session from any menu.
//
// Every command handler reads its fields, calls the services, prints the
// outcome and finishes with a PRESS ENTER TO CONTINUE prompt, whether the
// command succeeded, found nothing or failed.
package cli
