package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/atomic"

	"github.com/hitzhangjie/cfastates/pkg/cfa"
	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

const (
	cmdGroupAnnotation = "cmd_group_annotation"

	cmdGroupReport   = "1-report"
	cmdGroupSettings = "2-settings"
	cmdGroupOthers   = "3-other"
	cmdGroupCobra    = "other"

	cmdGroupDelimiter = "-"

	prefix    = "cfastates> "
	descShort = "cfastates interactive commands"
)

var shellRootCmd = &cobra.Command{
	Use:           "help [command]",
	Short:         descShort,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// current is the session commands run against, read by the signal handler
var current atomic.Value

// Current returns the running session, nil if there is none.
func Current() *Session {
	s, _ := current.Load().(*Session)
	return s
}

// SetCurrent makes s the running session.
func SetCurrent(s *Session) {
	current.Store(s)
}

// prompter reads command lines, implemented by liner.State
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// Session is an interactive session over the states of one dump.
type Session struct {
	done   chan bool
	prefix string
	root   *cobra.Command
	last   string
	out    io.Writer

	in      io.Reader // scripted input, nil for the terminal
	history string

	mu     sync.Mutex
	prompt prompter

	states       []string
	normalizeRSP bool
	reports      map[bool]*cfa.Report

	defers []func()
}

// NewSession creates a session over the extracted states, writing command
// output to out.
func NewSession(states []string, normalizeRSP bool, out io.Writer) *Session {
	fn := func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(out, cmd.Short)
		fmt.Fprintln(out)

		fmt.Fprintln(out, cmd.Use)
		fmt.Fprintln(out, cmd.Flags().FlagUsages())

		fmt.Fprintln(out, helpMessageByGroups(cmd))
	}
	shellRootCmd.SetHelpFunc(fn)

	return &Session{
		done:         make(chan bool),
		prefix:       prefix,
		root:         shellRootCmd,
		out:          out,
		states:       states,
		normalizeRSP: normalizeRSP,
		reports:      map[bool]*cfa.Report{},
	}
}

// WithInput reads command lines from r instead of the terminal.
func (s *Session) WithInput(r io.Reader) *Session {
	s.in = r
	return s
}

// WithHistory loads the prompt history from path when the session starts,
// see SaveHistory.
func (s *Session) WithHistory(path string) *Session {
	s.history = path
	return s
}

func (s *Session) newPrompter() prompter {
	if s.in != nil {
		return newLineReader(s.in)
	}
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetCompleter(completer)
	l.SetTabCompletionStyle(liner.TabPrints)
	return l
}

// Start reads and runs commands until exit or end of input.
func (s *Session) Start() {
	SetCurrent(s)
	p := s.newPrompter()
	s.mu.Lock()
	s.prompt = p
	s.mu.Unlock()

	log := logflags.ShellLogger()
	if s.history != "" {
		if f, err := os.Open(s.history); err == nil {
			if _, err := p.ReadHistory(f); err != nil {
				log.WithError(err).Debug("read history")
			}
			f.Close()
		}
	}

	defer func() {
		s.Close()
		for idx := len(s.defers) - 1; idx >= 0; idx-- {
			s.defers[idx]()
		}
	}()

	for {
		select {
		case <-s.done:
			return
		default:
		}

		txt, err := p.Prompt(s.prefix)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			// io.EOF on ctrl-d
			log.WithError(err).Debug("prompt closed")
			return
		}

		txt = strings.TrimSpace(txt)
		if len(txt) != 0 {
			s.last = txt
			p.AppendHistory(txt)
		} else {
			txt = s.last
		}
		if len(txt) == 0 {
			continue
		}

		if err := s.Exec(txt); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// Exec runs a single command line.
func (s *Session) Exec(line string) error {
	SetCurrent(s)
	logflags.ShellLogger().Debugf("exec %q", line)

	resetFlags(s.root)
	s.root.SetOut(s.out)
	s.root.SetErr(s.out)
	s.root.SetArgs(strings.Fields(line))
	return s.root.Execute()
}

// resetFlags restores every flag of the command tree to its default, the
// tree is shared by all command lines of a session.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// AtExit registers fn to run when Start returns, last registered first.
func (s *Session) AtExit(fn func()) *Session {
	s.defers = append(s.defers, fn)
	return s
}

// SaveHistory writes the prompt history to the file given to WithHistory.
func (s *Session) SaveHistory() error {
	s.mu.Lock()
	p := s.prompt
	s.mu.Unlock()
	if p == nil || s.history == "" {
		return nil
	}

	f, err := os.Create(s.history)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer f.Close()
	if _, err := p.WriteHistory(f); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (s *Session) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Close restores the terminal, it is safe to call before Start and more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompt != nil {
		s.prompt.Close()
	}
}

// Report returns the analysis of the session's states in the current mode.
func (s *Session) Report() *cfa.Report {
	return s.reportFor(s.normalizeRSP)
}

func (s *Session) reportFor(normalizeRSP bool) *cfa.Report {
	r, ok := s.reports[normalizeRSP]
	if !ok {
		r = cfa.Tally(s.states, normalizeRSP)
		s.reports[normalizeRSP] = r
	}
	return r
}

func completer(line string) []string {
	cmds := []string{}
	for _, c := range shellRootCmd.Commands() {
		// complete cmd
		if strings.HasPrefix(c.Use, line) {
			cmds = append(cmds, strings.Split(c.Use, " ")[0])
		}
		// complete cmd's aliases
		for _, alias := range c.Aliases {
			if strings.HasPrefix(alias, line) {
				cmds = append(cmds, alias)
			}
		}
	}
	return cmds
}

// helpMessageByGroups lists the commands grouped by their annotation
func helpMessageByGroups(cmd *cobra.Command) string {

	// key:group, val:sorted commands in same group
	groups := map[string][]string{}
	for _, c := range cmd.Commands() {
		var groupName string
		v, ok := c.Annotations[cmdGroupAnnotation]
		if !ok {
			groupName = cmdGroupCobra
		} else {
			groupName = v
		}

		groupCmds := groups[groupName]
		groupCmds = append(groupCmds, fmt.Sprintf("  %-16s:%s", c.Name(), c.Short))
		sort.Strings(groupCmds)

		groups[groupName] = groupCmds
	}

	if len(groups[cmdGroupCobra]) != 0 {
		groups[cmdGroupOthers] = append(groups[cmdGroupOthers], groups[cmdGroupCobra]...)
	}
	delete(groups, cmdGroupCobra)

	groupNames := []string{}
	for k := range groups {
		groupNames = append(groupNames, k)
	}
	sort.Strings(groupNames)

	buf := bytes.Buffer{}
	for _, groupName := range groupNames {
		commands := groups[groupName]

		group := strings.Split(groupName, cmdGroupDelimiter)[1]
		buf.WriteString(fmt.Sprintf("- [%s]\n", group))

		for _, cmd := range commands {
			buf.WriteString(fmt.Sprintf("%s\n", cmd))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
