// spinterm 在终端中以字符画显示旋转场景
//
// 使用与窗口版本相同的场景文件、Bootstrap 和 MotionSystem。
// 空格暂停/继续，+ 和 - 调整时间缩放，Esc、q 或 Ctrl-C 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/logging"
	"github.com/decker502/spin3d/pkg/app"
	"github.com/decker502/spin3d/pkg/ecs"
	"github.com/decker502/spin3d/pkg/game"
	"github.com/decker502/spin3d/pkg/scenes"
	"github.com/decker502/spin3d/pkg/systems"
)

var (
	scenePath = flag.String("scene", "", "场景文件路径，默认使用内置场景")
	logPath   = flag.String("log", "", "日志文件路径（终端被占用，默认不输出日志）")
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	timeScale = flag.Float64("timescale", 1.0, "时间缩放")
)

const (
	frameInterval = 33 * time.Millisecond
	maxTimeScale  = 16.0
	minTimeScale  = 1.0 / 16
)

type viewer struct {
	screen tcell.Screen
	em     *ecs.EntityManager
	motion *systems.MotionSystem
	clock  *game.FrameClock
	frame  *Frame

	simTime     float64
	pausedScale float64
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spinterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logging.Setup(logging.Options{Level: "info", Verbose: *verbose, Out: out, NoColor: true})

	sceneCfg, err := app.ResolveSceneConfig(*scenePath)
	if err != nil {
		return err
	}

	em := ecs.NewEntityManager()
	if _, err := scenes.Bootstrap(em, sceneCfg, game.NewResourceManager()); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		em:     em,
		motion: systems.NewMotionSystem(em),
		clock:  game.NewMeasuredFrameClock(*timeScale, nil),
		frame:  NewFrame(screen.Size()),
	}
	v.loop()
	log.Info().Str("component", "spinterm").Float64("simTime", v.simTime).Msg("退出")
	return nil
}

func (v *viewer) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return
				}
				if ev.Key() == tcell.KeyRune {
					v.handleRune(ev.Rune())
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			dt := v.clock.Tick()
			v.motion.Update(dt)
			v.simTime += dt
			v.draw()
		}
	}
}

// handleRune 处理暂停和时间缩放按键
func (v *viewer) handleRune(r rune) {
	scale := v.clock.TimeScale()
	switch r {
	case ' ':
		if scale > 0 {
			v.pausedScale = scale
			v.clock.SetTimeScale(0)
			return
		}
		if v.pausedScale <= 0 {
			v.pausedScale = 1
		}
		v.clock.SetTimeScale(v.pausedScale)
	case '+', '=':
		if scale > 0 {
			v.clock.SetTimeScale(math.Min(scale*2, maxTimeScale))
		}
	case '-':
		if scale > 0 {
			v.clock.SetTimeScale(math.Max(scale/2, minTimeScale))
		}
	}
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	if w != v.frame.Width || h != v.frame.Height {
		v.frame.Resize(w, h)
	}
	tris := v.frame.Render(v.em)

	v.screen.Clear()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r := v.frame.Runes[i]
			if r == ' ' {
				continue
			}
			c := v.frame.Colors[i]
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
				int32(c.R*255), int32(c.G*255), int32(c.B*255)))
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	hud := fmt.Sprintf(" t=%.1fs  triangles %d  q: quit ", v.simTime, tris)
	for i, r := range hud {
		if i >= w {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}
