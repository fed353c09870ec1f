// goban-replay is a terminal screensaver that replays Go game records.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/goccy/go-json"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"goban-replay/config"
	"goban-replay/player"
	"goban-replay/sgf"
	"goban-replay/types"
	"goban-replay/ui"
	"goban-replay/walker"
)

// Version is set at build time via ldflags
var Version = "dev"

// dirList collects a repeatable string flag.
type dirList []string

func (d *dirList) String() string {
	return strings.Join(*d, ",")
}

func (d *dirList) Set(v string) error {
	*d = append(*d, v)
	return nil
}

// Command-line flags
var (
	flagSGFDirs       dirList
	flagMoveDelay     = flag.Duration("move-delay", 0, "Delay between moves (default 5s)")
	flagEndDelay      = flag.Duration("end-delay", 0, "Delay after a record ends (default 10s)")
	flagNoAnnotations = flag.Bool("no-annotations", false, "Hide the annotation panel")
	flagHeadless      = flag.Bool("headless", false, "Print replayed nodes as JSON lines instead of drawing")
	flagRecords       = flag.Int("records", 1, "Records to replay in headless mode before exiting (0 = forever)")
	flagDebug         = flag.Bool("debug", false, "Verbose development logging")
	flagVersion       = flag.Bool("version", false, "Print version and exit")
)

func init() {
	flag.Var(&flagSGFDirs, "sgf-dir", "Directory to load .sgf records from (repeatable)")
}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("goban-replay %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "goban-replay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(*flagHeadless, *flagDebug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dirs := cfg.Playback.RecordDirs()
	records, failures := sgf.NewLoader(log).LoadDirs(dirs)
	w, err := walker.New(records, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return fmt.Errorf("%w in %s (%d files or directories failed to load)", err, strings.Join(dirs, ", "), len(failures))
	}

	opts := cfg.Playback.Options()
	p := player.New(w, opts, log)
	log.Infow("starting playback",
		"records", records.Len(),
		"move_delay", opts.MoveDelay,
		"end_delay", opts.EndDelay,
		"policy", opts.Policy.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *flagHeadless {
		return runHeadless(ctx, p, os.Stdout, *flagRecords, pollInterval(opts), log)
	}
	return runTerminal(ctx, p, cfg, pollInterval(opts))
}

// applyFlags overrides config values with the flags that were given.
func applyFlags(cfg *config.Config) {
	if len(flagSGFDirs) > 0 {
		cfg.Playback.SGFDirs = flagSGFDirs
	}
	if *flagMoveDelay > 0 {
		cfg.Playback.MoveDelayMS = int(flagMoveDelay.Milliseconds())
	}
	if *flagEndDelay > 0 {
		cfg.Playback.EndDelayMS = int(flagEndDelay.Milliseconds())
	}
	if *flagNoAnnotations {
		cfg.Playback.ShowAnnotations = false
	}
}

// newLogger logs to stderr in headless mode. The terminal UI owns the screen,
// so there the log goes to a file in the user's cache dir.
func newLogger(headless, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	if !headless {
		path, err := xdg.CacheFile("goban-replay/goban-replay.log")
		if err != nil {
			return nil, err
		}
		zcfg.OutputPaths = []string{path}
		zcfg.ErrorOutputPaths = []string{path}
	}
	return zcfg.Build()
}

// pollInterval is how often the player is checked; fine enough for short
// delays without spinning.
func pollInterval(opts player.Options) time.Duration {
	interval := 100 * time.Millisecond
	if opts.MoveDelay < interval {
		interval = opts.MoveDelay
	}
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return interval
}

// headlessFrame is one line of headless output.
type headlessFrame struct {
	Black   string           `json:"black,omitempty"`
	White   string           `json:"white,omitempty"`
	Game    string           `json:"game,omitempty"`
	Node    string           `json:"node"`
	Skipped string           `json:"skipped,omitempty"`
	Board   types.BoardState `json:"board"`
}

// runHeadless writes every replayed node to out and returns after limit
// records have ended, or never when limit is 0.
func runHeadless(ctx context.Context, p *player.Player, out io.Writer, limit int, interval time.Duration, log *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	enc := json.NewEncoder(out)
	p.OnNode(func(e player.Event) {
		f := headlessFrame{
			Black: e.Info.PlayerBlack,
			White: e.Info.PlayerWhite,
			Game:  e.Info.GameName,
			Node:  sgf.FormatNode(e.Node),
			Board: e.Board,
		}
		if e.Err != nil {
			f.Skipped = e.Err.Error()
		}
		if err := enc.Encode(f); err != nil {
			log.Errorw("write frame", "error", err)
			cancel()
		}
	})

	finished := 0
	p.OnRecordEnd(func(info sgf.GameInfo) {
		finished++
		if limit > 0 && finished >= limit {
			cancel()
		}
	})

	err := p.Run(ctx, interval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTerminal(ctx context.Context, p *player.Player, cfg *config.Config, interval time.Duration) error {
	app := tview.NewApplication()

	board := ui.NewBoardView(cfg)
	var panel *ui.AnnotationPanel
	if cfg.Playback.ShowAnnotations {
		panel = ui.NewAnnotationPanel()
	}
	status := tview.NewTextView()
	status.SetDynamicColors(true)
	status.SetText("  [dimgray]loading…[-]")

	layout := ui.CreateReplayLayout(board, panel, status)
	layout.SetBorder(true)
	layout.SetTitle(" ⬡ goban-replay ")

	p.OnUpdate(func(state types.BoardState) {
		app.QueueUpdateDraw(func() {
			board.SetBoardState(state)
		})
	})
	p.OnNode(func(e player.Event) {
		app.QueueUpdateDraw(func() {
			if panel != nil {
				panel.Show(e.Info, e.Node, e.Board)
			}
			status.SetText(statusLine(e))
		})
	})

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return event
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- p.Run(ctx, interval)
		app.Stop()
	}()

	if err := app.SetRoot(layout, true).Run(); err != nil {
		return err
	}
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func statusLine(e player.Event) string {
	black, white := e.Info.PlayerBlack, e.Info.PlayerWhite
	if black == "" {
		black = "?"
	}
	if white == "" {
		white = "?"
	}
	line := fmt.Sprintf("  %s vs %s · move %d", tview.Escape(black), tview.Escape(white), e.Board.MoveNumber)
	if e.Err != nil {
		line += " · [red]skipped bad node[-]"
	}
	return line + "   [dimgray]q quit[-]"
}
