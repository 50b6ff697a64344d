package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// describeSecret reports whether a secret is present and its length,
// never its content.
func describeSecret(secret string) string {
	if secret == "" {
		return "unset"
	}
	return fmt.Sprintf("set (%d chars)", utf8.RuneCountInString(secret))
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFlagLayout)
}

// prompter reads answers from the command's input and writes prompts to
// stderr. Secrets are read without echo when the input is a terminal.
type prompter struct {
	cmd    *cobra.Command
	in     io.Reader
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{cmd: cmd, in: in, reader: bufio.NewReader(in)}
}

func (p *prompter) secret(label string) (string, error) {
	p.cmd.PrintErrf("%s: ", label)
	defer p.cmd.PrintErrln()

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		value, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		return strings.TrimSpace(string(value)), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}
