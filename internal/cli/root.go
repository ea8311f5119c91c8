package cli

import (
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.session.Unlocked() {
		if a.session.Dirty() {
			return "(unlocked*)"
		}
		return "(unlocked)"
	}
	return "(locked)"
}

// Root runs the interactive command loop until exit or EOF.
func (a *App) Root() {
	fmt.Fprintln(a.out, "Welcome to passlock (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "plk %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
		if !a.dispatch(line) {
			return
		}
	}
}

// dispatch executes one command line and reports whether the loop should
// continue.
func (a *App) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "help":
		if a.session.Unlocked() {
			fmt.Fprintln(a.out, "Available commands: list, show <id>, add, edit <id>, remove <id>, gen, save, export <path>, import <path>, verify, lock, discard, reset, exit")
		} else {
			fmt.Fprintln(a.out, "Available commands: init, unlock, gen, exit")
		}

	case "init":
		a.initVault()
	case "unlock":
		a.unlock()
	case "lock":
		a.lock()
	case "discard":
		a.discard()
	case "save":
		a.save()
	case "verify":
		a.verify()
	case "reset":
		a.reset()

	case "list":
		a.list()
	case "show":
		a.show(args)
	case "add":
		a.add()
	case "edit":
		a.edit(args)
	case "remove":
		a.remove(args)

	case "gen":
		a.generate()

	case "export":
		a.export(args)
	case "import":
		a.importFile(args)

	case "exit", "quit":
		if a.session.Dirty() {
			fmt.Fprintln(a.out, "Unsaved changes. Use 'save' or 'discard' first.")
			return true
		}
		fmt.Fprintln(a.out, "Bye!")
		return false

	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return true
}
