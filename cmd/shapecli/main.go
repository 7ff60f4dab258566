/*
Shapecli is an interactive tool for inspecting text shaping.

Text is kept in an editable buffer and set in a font on request. Results
are printed as glyph tables, together with widths, code paths and cache
statistics.

Usage:

	shapecli [-font file] [-size px] [-engine textlayout|gotext] [-rtl] [-trace level]

Quit with <ctrl>D or "quit"; "help" lists the commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textshaping/core"
	"github.com/npillmayer/textshaping/core/dimen"
	"github.com/npillmayer/textshaping/core/font"
	"github.com/npillmayer/textshaping/core/font/fontregistry"
	"github.com/npillmayer/textshaping/core/locate/resources"
	"github.com/npillmayer/textshaping/core/parameters"
	"github.com/npillmayer/textshaping/engine/glyphing"
	"github.com/npillmayer/textshaping/engine/glyphing/bidi"
	"github.com/npillmayer/textshaping/engine/text"
	"github.com/npillmayer/textshaping/engine/text/monospace"
	"github.com/pterm/pterm"
	xbidi "golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'tyse.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("tyse.glyphs")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.tyse.glyphs": "Info",
		"trace.tyse.font":   "Info",
		"trace.tyse.core":   "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontfile := flag.String("font", "", "Font file or system font to load (default Go Sans)")
	size := flag.Float64("size", 16, "Font size in pixels")
	engine := flag.String("engine", parameters.EngineTextlayout, "Shaping engine [textlayout|gotext]")
	rtl := flag.Bool("rtl", false, "Right-to-left base direction")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the text shaping CLI")
	//
	// set up REPL
	repl, err := readline.New("shape > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	conf["shaping.engine"] = *engine
	if *rtl {
		conf["shaping.direction"] = "rtl"
	}
	intp := &Intp{
		repl:    repl,
		regs:    parameters.FromConfiguration(conf),
		measure: monospace.NewMeasure(nil),
	}
	if err := intp.loadFont(*fontfile, float32(*size)); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	setTraceLevel(*tlevel)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(s string) {
	switch strings.ToLower(s) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().SetTraceLevel(tracing.LevelInfo)
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	regs    *parameters.TypesettingRegisters
	font    *text.Font
	measure *monospace.Measure
	buffer  cords.Cord
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, arg := splitCommand(line)
		quit, err := intp.execute(cmd, arg)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// splitCommand separates a command word from its argument text. Arguments
// to a command may carry leading positions, as in "insert:3 text".
func splitCommand(line string) (string, string) {
	cmd, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		cmd, arg = line[:i], line[i+1:]
	}
	return strings.ToLower(cmd), arg
}

func (intp *Intp) execute(cmd, arg string) (quit bool, err error) {
	tracer().Debugf("cmd = %s, arg = %q", cmd, arg)
	c := strings.Split(cmd, ":") // e.g. "insert:3" or "cut:2:5" or "select:0:4"
	switch c[0] {
	case "quit":
		return true, nil
	case "text":
		intp.buffer = cords.FromString(arg)
	case "insert":
		pos, err := intArg(c, 1, int(intp.buffer.Len()))
		if err != nil {
			return false, err
		}
		if uint64(pos) >= intp.buffer.Len() {
			intp.buffer = cords.Concat(intp.buffer, cords.FromString(arg))
		} else if intp.buffer, err = cords.Insert(intp.buffer, cords.FromString(arg), uint64(pos)); err != nil {
			return false, err
		}
	case "cut":
		pos, err := intArg(c, 1, 0)
		if err != nil {
			return false, err
		}
		l, err := intArg(c, 2, 1)
		if err != nil {
			return false, err
		}
		if intp.buffer, _, err = cords.Cut(intp.buffer, uint64(pos), uint64(l)); err != nil {
			return false, err
		}
	case "dir":
		switch strings.ToLower(strings.TrimSpace(arg)) {
		case "rtl":
			intp.regs.Push(parameters.P_TEXTDIRECTION, xbidi.RightToLeft)
		case "ltr":
			intp.regs.Push(parameters.P_TEXTDIRECTION, xbidi.LeftToRight)
		default:
			return false, core.Error(core.EINVALID, "direction must be ltr or rtl")
		}
	case "shape":
		intp.shape()
		return false, nil
	case "bidi":
		return false, intp.bidi()
	case "hit":
		x, err := strconv.ParseFloat(strings.TrimSpace(arg), 32)
		if err != nil {
			return false, err
		}
		run := intp.run()
		pterm.Printfln("x=%.2f hits offset %d", x, intp.font.OffsetForPosition(run, float32(x), true))
		return false, nil
	case "select":
		run := intp.run()
		from, err := intArg(c, 1, 0)
		if err != nil {
			return false, err
		}
		to, err := intArg(c, 2, run.Len())
		if err != nil {
			return false, err
		}
		r := intp.font.SelectionRectForText(run, dimen.Origin, 1, from, to)
		pterm.Printfln("selection [%d,%d) = %v", from, to, r)
		return false, nil
	case "stats":
		pterm.Printfln("shape cache: %v", intp.font.CacheStats())
		return false, nil
	case "clear":
		intp.font.ClearCaches()
		return false, nil
	default:
		help()
		return false, nil
	}
	pterm.Printfln("text = %q", intp.buffer.String())
	return false, nil
}

func intArg(c []string, inx int, deflt int) (int, error) {
	if len(c) <= inx || c[inx] == "" {
		return deflt, nil
	}
	n, err := strconv.Atoi(c[inx])
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "argument %d not numeric: %q", inx, c[inx])
	}
	return n, nil
}

func (intp *Intp) run() glyphing.TextRun {
	dir := bidi.DirectionOf(intp.regs.Direction())
	run := glyphing.TextRunFromString(intp.buffer.String(), dir)
	return run.WithTabs(intp.regs.N(parameters.P_TABSIZE), 0)
}

func (intp *Intp) shape() {
	run := intp.run()
	var bounds dimen.Rect
	fallbacks := make(font.FontSet)
	w := intp.font.Width(run, fallbacks, &bounds)
	cells, ncells := intp.measure.Cells(run)
	pterm.Printfln("%s path, width %.2f, bounds %v, %d cells, %d fallback fonts",
		intp.font.CodePath(run, 0, run.Len()), w, bounds, ncells, len(fallbacks))
	buf := intp.font.DrawText(run, 0, run.Len())
	printGlyphs(buf)
	data := pterm.TableData{{"grapheme", "range", "cells"}}
	for _, cell := range cells {
		g := run.SubRun(cell.Start, cell.End-cell.Start).String()
		data = append(data, []string{g, fmt.Sprintf("%d…%d", cell.Start, cell.End),
			strconv.Itoa(cell.Width)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func (intp *Intp) bidi() error {
	buf, err := intp.font.DrawBidiText(intp.run())
	if err != nil {
		return err
	}
	printGlyphs(buf)
	return nil
}

func printGlyphs(buf *glyphing.GlyphBuffer) {
	data := pterm.TableData{{"#", "glyph", "offset", "font"}}
	for i := 0; i < buf.Size(); i++ {
		data = append(data, []string{strconv.Itoa(i), strconv.Itoa(int(buf.GlyphAt(i))),
			buf.OffsetAt(i).String(), buf.FontAt(i).String()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func (intp *Intp) loadFont(fontfile string, size float32) error {
	registry := fontregistry.GlobalRegistry()
	var names []string
	if fontfile != "" {
		name, err := resources.LoadFont(registry, fontfile)
		if err != nil {
			return err
		}
		names = append(names, name)
	}
	fallback, err := registry.FallbackList(size, names...)
	if err != nil {
		return err
	}
	desc := font.FontDescription{Size: size, Features: font.Kerning | font.Ligatures}
	intp.font = text.NewFont(font.NewFont(desc, fallback), intp.regs)
	pterm.Printfln("font %v at %.1fpx", fallback.PrimaryFont(), size)
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	text <string>        replace the text buffer
	insert:<pos> <str>   insert at position (default: append)
	cut:<pos>:<len>      remove characters
	dir ltr|rtl          set the base direction
	shape                set the text and print glyphs and cells
	bidi                 set the text as bidi text
	hit <x>              hit-test a position
	select:<from>:<to>   print the selection rectangle
	stats                print shape cache statistics
	clear                clear caches
	quit
	`)
}
