package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/circumplex/internal/affect"
	"github.com/at-ishikawa/circumplex/internal/emotionlog"
	"github.com/at-ishikawa/circumplex/internal/recorder"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

var (
	errEnd = errors.New("end")

	ErrInvalidPosition = errors.New("invalid position")
)

const recorderHelp = `Commands:
  click x,y     select a start point (or add a point while recording)
  drag x,y      move the start point (or add a point while recording)
  start         start recording a path from the start point
  move x,y      add a point to the path
  stop          stop recording
  notes <text>  attach notes to the entry
  commit        save the entry
  cancel        drop the current entry
  edit <index>  load a logged entry for editing
  status        show the current session
  help          show this help
  quit          exit
Positions are screen coordinates between 0 and 1, y growing downwards.`

// ParsePosition reads a point written as "x,y".
func ParsePosition(s string) (affect.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return affect.Position{}, fmt.Errorf("%q: %w: want x,y", s, ErrInvalidPosition)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return affect.Position{}, fmt.Errorf("%q: %w: %v", s, ErrInvalidPosition, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return affect.Position{}, fmt.Errorf("%q: %w: %v", s, ErrInvalidPosition, err)
	}
	return affect.Position{X: x, Y: y}, nil
}

// FormatPosition is the inverse of ParsePosition.
func FormatPosition(p affect.Position) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// RecorderCLI records emotions from typed pointer commands.
type RecorderCLI struct {
	svc     tracker.Service
	session *recorder.Session
	printer *Printer
	// dirty is set once the position changes after an edit was loaded.
	dirty bool

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
}

func NewRecorderCLI(svc tracker.Service, in io.Reader, out io.Writer, opts ...recorder.Option) *RecorderCLI {
	return &RecorderCLI{
		svc:          svc,
		session:      recorder.NewSession(opts...),
		printer:      NewPrinter(out),
		stdinReader:  bufio.NewReader(in),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
	}
}

func (cli *RecorderCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	fmt.Fprintln(cli.stdoutWriter, cli.bold.Sprint("Record an emotion. Type help for commands."))

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(cli.stdoutWriter, "[%s] > ", cli.session.Mode())
			line, err := cli.stdinReader.ReadString('\n')
			if line != "" {
				if herr := cli.Handle(ctx, line); herr != nil {
					if !errors.Is(herr, errEnd) {
						errCh <- herr
					}
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errCh <- fmt.Errorf("stdinReader.ReadString() > %w", err)
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Handle runs one command line. Mistakes in the input are reported to the
// user, only service failures are returned.
func (cli *RecorderCLI) Handle(ctx context.Context, line string) error {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errEnd
	case "help", "?":
		fmt.Fprintln(cli.stdoutWriter, recorderHelp)
	case "click", "drag", "move":
		p, err := ParsePosition(arg)
		if err != nil {
			fmt.Fprintln(cli.stdoutWriter, err)
			return nil
		}
		cli.point(command, p)
	case "start":
		if !cli.session.StartRecording() {
			fmt.Fprintln(cli.stdoutWriter, "Select a start point first.")
			return nil
		}
		cli.dirty = true
		fmt.Fprintln(cli.stdoutWriter, "Recording. Use move x,y and stop when done.")
	case "stop":
		if !cli.session.StopRecording() {
			fmt.Fprintln(cli.stdoutWriter, "Not recording.")
			return nil
		}
		fmt.Fprintf(cli.stdoutWriter, "Recorded %d points.\n", len(cli.session.Path()))
	case "notes", "note":
		cli.session.SetNotes(arg)
	case "cancel":
		cli.session.Cancel()
		cli.dirty = false
		fmt.Fprintln(cli.stdoutWriter, "Cancelled.")
	case "status":
		cli.printStatus()
	case "edit":
		return cli.edit(ctx, arg)
	case "commit", "save":
		return cli.commit(ctx)
	default:
		fmt.Fprintf(cli.stdoutWriter, "Unknown command %q. Type help for commands.\n", command)
	}
	return nil
}

func (cli *RecorderCLI) point(command string, p affect.Position) {
	switch command {
	case "click":
		cli.session.Click(p)
	case "drag":
		cli.session.Drag(p)
	case "move":
		if cli.session.Mode() != recorder.ModeRecording {
			fmt.Fprintln(cli.stdoutWriter, "Not recording. Use start first.")
			return
		}
		cli.session.Move(p)
	}
	cli.dirty = true
	cli.printer.PrintReading(affect.Read(cli.session.Current()))
}

func (cli *RecorderCLI) printStatus() {
	fmt.Fprintf(cli.stdoutWriter, "%s %s\n", cli.bold.Sprint("Mode:"), cli.session.Mode())
	if index, ok := cli.session.Editing(); ok {
		fmt.Fprintf(cli.stdoutWriter, "%s entry %d\n", cli.bold.Sprint("Editing:"), index)
	}
	if cli.session.Mode() == recorder.ModeIdle {
		return
	}
	fmt.Fprint(cli.stdoutWriter, cli.bold.Sprint("Start: "))
	cli.printer.PrintReading(affect.Read(cli.session.Start()))
	fmt.Fprint(cli.stdoutWriter, cli.bold.Sprint("Current: "))
	cli.printer.PrintReading(affect.Read(cli.session.Current()))
	if n := len(cli.session.Path()); n > 1 {
		fmt.Fprintf(cli.stdoutWriter, "%s %d points\n", cli.bold.Sprint("Path:"), n)
	}
	if notes := cli.session.Notes(); notes != "" {
		fmt.Fprintf(cli.stdoutWriter, "%s %s\n", cli.bold.Sprint("Notes:"), notes)
	}
}

func (cli *RecorderCLI) edit(ctx context.Context, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(cli.stdoutWriter, "Usage: edit <index>\n")
		return nil
	}
	entries, err := cli.svc.Entries(ctx, tracker.Filter{})
	if err != nil {
		return fmt.Errorf("svc.Entries() > %w", err)
	}
	if index < 0 || index >= len(entries) {
		fmt.Fprintf(cli.stdoutWriter, "No entry at index %d.\n", index)
		return nil
	}

	cli.session.BeginEdit(index, entries[index].Entry)
	cli.dirty = false
	fmt.Fprintf(cli.stdoutWriter, "Editing entry %d.\n", index)
	cli.printer.PrintEntry(index, entries[index].Entry, nil)
	return nil
}

// commit sends the session to the service, which replays it through its own
// recorder so that local and remote trackers store the same entry.
func (cli *RecorderCLI) commit(ctx context.Context) error {
	mode := cli.session.Mode()
	if mode != recorder.ModeStartSelected && mode != recorder.ModeCompleted {
		fmt.Fprintln(cli.stdoutWriter, "Nothing to commit. Click a point first.")
		return nil
	}

	start := cli.session.Start()
	current := cli.session.Current()
	notes := cli.session.Notes()
	var middle []affect.Position
	if path := cli.session.Path(); len(path) > 2 {
		middle = path[1 : len(path)-1]
	}

	var (
		entry emotionlog.Entry
		index int
		err   error
	)
	if editIndex, editing := cli.session.Editing(); editing {
		index = editIndex
		req := tracker.EditRequest{Notes: &notes}
		if cli.dirty {
			req.Start = &start
			if mode == recorder.ModeCompleted {
				req.End = &current
				req.Path = middle
			}
		}
		entry, err = cli.svc.Edit(ctx, index, req)
	} else {
		req := tracker.LogRequest{Start: &start, Notes: notes}
		if mode == recorder.ModeCompleted {
			req.End = &current
			req.Path = middle
		}
		entry, err = cli.svc.Log(ctx, req)
	}
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidRequest) || errors.Is(err, emotionlog.ErrIndexOutOfRange) {
			fmt.Fprintf(cli.stdoutWriter, "Could not save: %v\n", err)
			return nil
		}
		return fmt.Errorf("commit > %w", err)
	}

	cli.session.Cancel()
	cli.dirty = false
	fmt.Fprintln(cli.stdoutWriter, cli.bold.Sprint("Saved:"))
	cli.printer.PrintEntry(index, entry, nil)
	return nil
}
