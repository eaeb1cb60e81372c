// Package surface exposes the automation loop to the operator through
// global hotkeys and a system tray menu.
package surface

import (
	"fmt"

	"fyne.io/systray"
	"go.uber.org/zap"
	"golang.design/x/hotkey"

	"github.com/mj1618/screenpilot/internal/config"
	"github.com/mj1618/screenpilot/internal/loop"
)

// Surface owns the tray icon and the registered hotkeys for one loop.
type Surface struct {
	loop      *loop.Loop
	cfg       config.HotkeyConfig
	logger    *zap.Logger
	autostart bool

	hotkeys []*hotkey.Hotkey
	runErr  error
}

// New creates a surface for the given loop. Run must be called from the
// main goroutine.
func New(l *loop.Loop, cfg config.HotkeyConfig, autostart bool, logger *zap.Logger) *Surface {
	return &Surface{loop: l, cfg: cfg, logger: logger, autostart: autostart}
}

// Run blocks until Quit is selected from the tray menu or setup fails.
// Hotkey registration failure is fatal: the surface shuts down and the
// error is returned.
func (s *Surface) Run() error {
	systray.Run(s.onReady, s.onExit)
	return s.runErr
}

func (s *Surface) onReady() {
	systray.SetTitle("screenpilot")
	s.setState(s.loop.State())
	s.loop.OnStateChange(s.setState)

	start := systray.AddMenuItem("Start", "Start screen automation")
	stop := systray.AddMenuItem("Stop", "Stop screen automation")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Stop and exit")

	if err := s.bindHotkeys(); err != nil {
		s.runErr = err
		s.logger.Error("hotkey registration failed", zap.Error(err))
		systray.Quit()
		return
	}

	s.logger.Info("control surface ready",
		zap.String("start_hotkey", s.cfg.Start),
		zap.String("stop_hotkey", s.cfg.Stop))

	if s.autostart {
		s.loop.Start()
	}

	go func() {
		for {
			select {
			case <-start.ClickedCh:
				s.loop.Start()
			case <-stop.ClickedCh:
				s.loop.Stop()
			case <-quit.ClickedCh:
				s.loop.Stop()
				systray.Quit()
				return
			}
		}
	}()
}

func (s *Surface) onExit() {
	for _, hk := range s.hotkeys {
		if err := hk.Unregister(); err != nil {
			s.logger.Warn("hotkey unregister failed", zap.Error(err))
		}
	}
	s.hotkeys = nil
}

// setState swaps the tray icon and tooltip. Called synchronously from the
// goroutine that performed the transition.
func (s *Surface) setState(st loop.State) {
	if st == loop.StateRunning {
		systray.SetIcon(iconRunning)
		systray.SetTooltip("screenpilot: running")
		return
	}
	systray.SetIcon(iconIdle)
	systray.SetTooltip("screenpilot: stopped")
}

func (s *Surface) bindHotkeys() error {
	if err := s.bind(s.cfg.Start, s.loop.Start); err != nil {
		return err
	}
	return s.bind(s.cfg.Stop, s.loop.Stop)
}

func (s *Surface) bind(spec string, action func()) error {
	mods, key, err := parseHotkey(spec)
	if err != nil {
		return err
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %q: %w", spec, err)
	}
	s.hotkeys = append(s.hotkeys, hk)

	go func() {
		for range hk.Keydown() {
			s.logger.Debug("hotkey pressed", zap.String("hotkey", spec))
			action()
		}
	}()
	return nil
}
