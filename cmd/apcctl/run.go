package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"apc-control/config"
	"apc-control/control"
	"apc-control/debug"
	"apc-control/midi"
	"apc-control/session"
	"apc-control/theme"
	"apc-control/tui"
)

// beat is how often queued clips start
const beat = 500 * time.Millisecond

var runOpts struct {
	variant  string
	palette  string
	logPath  string
	simulate bool
	noTUI    bool
	debug    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured controllers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runOpts.variant, "variant", "", "use a built-in controller preset instead of the config file")
	f.StringVar(&runOpts.palette, "palette", "", "GIMP palette for the terminal UI")
	f.StringVar(&runOpts.logPath, "log", "", "debug log path (default ~/.config/apc-control/debug.log)")
	f.BoolVar(&runOpts.simulate, "simulate", false, "run without hardware; the terminal UI presses pads")
	f.BoolVar(&runOpts.noTUI, "no-tui", false, "run headless and log to stderr")
	f.BoolVar(&runOpts.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

// controller is one configured surface at runtime. The instance is built
// once; hardware coming and going only swaps the mirror's downstream port.
type controller struct {
	cfg       config.ControllerConfig
	mirror    *midi.Mirror
	inst      control.Instance
	notes     *midi.NoteForwarder
	notesPort *midi.Port
	connected atomic.Bool
}

func loadConfig() (*config.Config, error) {
	switch {
	case runOpts.variant != "":
		return config.Variant(runOpts.variant)
	case configPath != "":
		return config.LoadFile(configPath)
	default:
		return config.Load()
	}
}

func setupLogging(cfg *config.Config) error {
	switch {
	case runOpts.debug || cfg.Debug:
		return debug.Enable(runOpts.logPath)
	case runOpts.noTUI:
		debug.EnableWriter(os.Stderr)
	}
	return nil
}

func loadTheme() (*theme.Theme, error) {
	if runOpts.palette == "" {
		return theme.New(nil), nil
	}
	p, err := theme.LoadGPL(runOpts.palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

// loadSession opens the configured project, or the demo project when none
// is configured. A configured project that does not exist yet starts empty.
func loadSession(cfg *config.Config, prefs *session.Store) (*session.Session, string, error) {
	if cfg.Project == "" {
		return session.New(session.Demo(), prefs), "", nil
	}
	path, err := session.ProjectPath(cfg.Project)
	if err != nil {
		return nil, "", err
	}
	p, err := session.LoadProject(path)
	if err != nil {
		if ftag.Get(err) != ftag.NotFound {
			return nil, "", err
		}
		debug.Log("session", "new project %s", path)
		p = session.NewProject(cfg.Project, 8, 8)
	}
	return session.New(p, prefs), path, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return fault.Wrap(err, fmsg.With("enable debug log"))
	}
	defer debug.Disable()

	th, err := loadTheme()
	if err != nil {
		return err
	}

	prefsPath := cfg.PreferencesPath
	if prefsPath == "" {
		if prefsPath, err = session.PreferencesPath(); err != nil {
			return err
		}
	}
	prefs, err := session.LoadStore(prefsPath)
	if err != nil {
		return err
	}
	sess, projectPath, err := loadSession(cfg, prefs)
	if err != nil {
		return err
	}

	engine := control.NewEngine()
	engine.Every(beat, sess.Advance)

	controllers := make([]*controller, len(cfg.Controllers))
	for i, cc := range cfg.Controllers {
		c := &controller{cfg: cc, mirror: midi.NewMirror(nil)}
		var opts control.Options
		if cc.NoteOutput != "" && !runOpts.simulate {
			port, err := midi.OpenPort(cc.NoteOutput)
			if err != nil {
				debug.Error("run", err, "%s: note output", cc.Name)
			} else {
				c.notesPort = port
				c.notes = midi.NewNoteForwarder(cc.Name, port)
				opts.Notes = c.notes
			}
		}
		c.inst, err = control.Build(cc, i, sess, c.mirror, opts)
		if err != nil {
			return fault.Wrap(err, fmsg.With("build controller "+cc.Name))
		}
		engine.Attach(cc.ID, c.inst)
		controllers[i] = c
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(done)
	}()

	if !runOpts.simulate {
		dm := midi.NewDeviceManager(cfg.PortNames())
		go dm.Run(ctx)
		go watchDevices(engine, dm, controllers)
	}

	var runErr error
	if runOpts.noTUI {
		fmt.Printf("apc-control: %d controller(s), ctrl-c to quit\n", len(controllers))
		<-ctx.Done()
	} else {
		views := make([]tui.Controller, len(controllers))
		for i, c := range controllers {
			views[i] = tui.Controller{
				Name:      c.cfg.Name,
				Mirror:    c.mirror,
				Instance:  c.inst,
				Connected: &c.connected,
			}
		}
		m := tui.NewModel(engine, views, th, runOpts.simulate)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			runErr = fault.Wrap(err, fmsg.With("terminal UI"))
		}
	}

	cancel()
	<-done

	for _, c := range controllers {
		if c.notesPort != nil {
			c.notesPort.Close()
		}
	}
	if err := prefs.Save(prefsPath); err != nil {
		debug.Error("run", err, "save preferences")
	}
	if projectPath != "" {
		if err := sess.Save(projectPath); err != nil {
			debug.Error("run", err, "save project")
		}
	}
	return runErr
}

// watchDevices routes hot-plug events to their controllers until the
// device manager closes its channel
func watchDevices(engine *control.Engine, dm *midi.DeviceManager, controllers []*controller) {
	for ev := range dm.Events() {
		if ev.Index < 0 || ev.Index >= len(controllers) {
			continue
		}
		c := controllers[ev.Index]

		switch ev.Type {
		case midi.DeviceConnected:
			c.mirror.SetNext(ev.Port)
			c.connected.Store(true)
			err := ev.Port.Listen(func(in midi.Event) {
				if c.notes != nil {
					c.notes.Process(in)
				}
				engine.Post(func() { c.inst.HandleMIDI(in) })
			})
			if err != nil {
				debug.Error("devices", err, "%s: listen", c.cfg.Name)
			}
			engine.Post(c.inst.Refresh)

		case midi.DeviceDisconnected:
			c.mirror.SetNext(nil)
			c.connected.Store(false)
		}
		debug.Log("devices", "%s: %d of %d controllers connected", ev.ID, dm.Connected(), len(controllers))
	}
}
