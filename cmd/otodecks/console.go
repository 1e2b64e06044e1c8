// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/otodecks"
	"github.com/ik5/otodecks/deck"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/sampler"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errBadDeck        = errors.New("deck must be a or b")
)

const consoleHelp = `commands:
  load a|b <path>                          load a track
  play a|b | stop a|b                      transport
  gain a|b <0..1> | speed a|b <ratio>      level and varispeed
  seek a|b <0..1>                          jump to a fraction of the track
  fx a|b chorus|delay|reverb|comp <0..1>   effect amount
  xfade <0..1> | snap a|b                  crossfader
  trig <id> [gain]                         fire a one-shot sample
  bars | status | help | quit`

// levels draws one bar level per rune, lowest first
var levels = []rune(" ▁▂▃▄▅▆▇█")

// console turns text commands into engine calls.
type console struct {
	engine *otodecks.Engine
	out    io.Writer
	log    *slog.Logger
	bars   []float32
}

func newConsole(e *otodecks.Engine, out io.Writer) *console {
	return &console{
		engine: e,
		out:    out,
		log:    logger.WithComponent("console"),
	}
}

// run executes one command per line of in until EOF, quit or ctx is done.
// Command errors are printed and do not stop the loop.
func (c *console) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			quit, err := c.exec(line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// exec runs a single command line and reports whether it was quit.
func (c *console) exec(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(args[0]), args[1:]
	c.log.Debug("command", "name", name, "args", args)

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
		return false, nil
	case "bars":
		c.printBars()
		return false, nil
	case "status":
		c.printStatus()
		return false, nil
	case "xfade":
		v, err := floatArg(args, 0, "xfade <0..1>")
		if err != nil {
			return false, err
		}
		c.engine.Crossfader().Set(v)
		return false, nil
	case "trig":
		return false, c.trigger(args)
	}

	return false, c.deckCommand(name, args)
}

func (c *console) deckCommand(name string, args []string) error {
	usage, ok := deckUsage[name]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, name)
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	d, err := c.deck(args[0])
	if err != nil {
		return err
	}
	tr := d.Transport()

	switch name {
	case "load":
		if len(args) < 2 {
			return fmt.Errorf("%w: %s", errUsage, usage)
		}
		return d.Load(strings.Join(args[1:], " "))
	case "play":
		tr.Start()
	case "stop":
		tr.Stop()
	case "snap":
		if d == c.engine.DeckA() {
			c.engine.Crossfader().Set(0)
		} else {
			c.engine.Crossfader().Set(1)
		}
	case "gain", "speed", "seek":
		v, err := floatArg(args, 1, usage)
		if err != nil {
			return err
		}
		switch name {
		case "gain":
			tr.SetGain(v)
		case "speed":
			tr.SetSpeed(v)
		case "seek":
			tr.SetPositionRelative(v)
		}
	case "fx":
		return c.effect(d, args, usage)
	}
	return nil
}

var deckUsage = map[string]string{
	"load":  "load a|b <path>",
	"play":  "play a|b",
	"stop":  "stop a|b",
	"snap":  "snap a|b",
	"gain":  "gain a|b <0..1>",
	"speed": "speed a|b <ratio>",
	"seek":  "seek a|b <0..1>",
	"fx":    "fx a|b chorus|delay|reverb|comp <0..1>",
}

func (c *console) effect(d *deck.Deck, args []string, usage string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	v, err := floatArg(args, 2, usage)
	if err != nil {
		return err
	}

	fx := d.Effects()
	switch strings.ToLower(args[1]) {
	case "chorus":
		fx.SetChorusAmount(v)
	case "delay":
		fx.SetDelayAmount(v)
	case "reverb":
		fx.SetReverbAmount(v)
	case "comp", "compression":
		fx.SetCompressionAmount(v)
	default:
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	return nil
}

func (c *console) trigger(args []string) error {
	const usage = "trig <id> [gain]"
	if len(args) < 1 {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	gain := 1.0
	if len(args) > 1 {
		v, err := floatArg(args, 1, usage)
		if err != nil {
			return err
		}
		gain = v
	}
	c.engine.Sampler().Trigger(args[0], float32(gain))
	return nil
}

func (c *console) deck(name string) (*deck.Deck, error) {
	switch strings.ToLower(name) {
	case "a":
		return c.engine.DeckA(), nil
	case "b":
		return c.engine.DeckB(), nil
	}
	return nil, fmt.Errorf("%w: %q", errBadDeck, name)
}

func floatArg(args []string, i int, usage string) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", errUsage, usage, err)
	}
	return v, nil
}

func (c *console) printBars() {
	c.bars = c.engine.Spectrum().Bars(c.bars)

	var sb strings.Builder
	sb.WriteByte('|')
	top := len(levels) - 1
	for _, v := range c.bars {
		sb.WriteRune(levels[int(v*float32(top)+0.5)])
	}
	sb.WriteByte('|')
	fmt.Fprintln(c.out, sb.String())
}

func (c *console) printStatus() {
	for i := range 2 {
		d := c.engine.Deck(i)
		tr := d.Transport()
		fx := d.Effects()

		src := tr.CurrentSource()
		if src == "" {
			fmt.Fprintf(c.out, "deck %s: empty\n", d.Name())
			continue
		}
		state := "stopped"
		if tr.IsPlaying() {
			state = "playing"
		}
		fmt.Fprintf(c.out, "deck %s: %s %s %s/%s gain %.2f speed %.2f fx chorus %.2f delay %.2f reverb %.2f comp %.2f\n",
			d.Name(), src, state,
			tr.Position().Truncate(100*time.Millisecond), tr.Length().Truncate(100*time.Millisecond),
			tr.Gain(), tr.Speed(),
			fx.ChorusAmount(), fx.DelayAmount(), fx.ReverbAmount(), fx.CompressionAmount())
	}

	xf := c.engine.Crossfader()
	smp := c.engine.Sampler()
	fmt.Fprintf(c.out, "xfade %.2f (%s) voices %d/%d cached %d\n",
		xf.Position(), xf.Law(), smp.Active(), sampler.MaxVoices, smp.Cached())
}
