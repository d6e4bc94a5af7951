package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal reports whether stdin is an interactive terminal; passwords are
// only read without echo when it is.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// readLine reads one line and trims surrounding whitespace. A final line
// without a newline is returned as is; io.EOF is returned only when nothing
// was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readField prints a fixed-width label and reads the value. Empty input is
// returned as "".
//
//	- user name            : _
func readField(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "- %-20s : ", label); err != nil {
		return "", err
	}
	return readLine(reader)
}

// readSecret is readField without echo when stdin is a terminal.
func readSecret(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if !isTerminal() {
		return readField(reader, w, label)
	}
	if _, err := fmt.Fprintf(w, "- %-20s : ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

// readObjectID reads a directory object id. The second result is false when
// the input is empty or not a GUID.
func readObjectID(reader *bufio.Reader, w io.Writer, label string) (string, bool) {
	v, err := readField(reader, w, label)
	if err != nil || v == "" {
		return "", false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// readLimit reads a positive record limit.
func readLimit(reader *bufio.Reader, w io.Writer, label string) (int, bool) {
	v, err := readField(reader, w, label)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// readCommand prompts for a menu key. The key is upper-cased.
func readCommand(reader *bufio.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "\nENTER COMMAND AND PRESS ENTER: ")
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(line), nil
}

// readContinue waits for Enter. A non-nil status is shown in the prompt.
func readContinue(reader *bufio.Reader, w io.Writer, status *bool) {
	fmt.Fprintln(w)
	if status != nil {
		fmt.Fprintf(w, "PRESS ENTER TO CONTINUE ->(%t) ", *status)
	} else {
		fmt.Fprint(w, "PRESS ENTER TO CONTINUE -> ")
	}
	_, _ = readLine(reader)
	fmt.Fprintln(w)
}
