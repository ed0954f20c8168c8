// This file is part of Nesgopher.
//
// Nesgopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nesgopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nesgopher.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/nesgopher/nesgopher/cartridgeloader"
	"github.com/nesgopher/nesgopher/curated"
	"github.com/nesgopher/nesgopher/debugger"
	"github.com/nesgopher/nesgopher/debugger/easyterm"
	"github.com/nesgopher/nesgopher/digest"
	"github.com/nesgopher/nesgopher/disassembly"
	"github.com/nesgopher/nesgopher/environment"
	"github.com/nesgopher/nesgopher/hardware"
	"github.com/nesgopher/nesgopher/hardware/ppu"
	"github.com/nesgopher/nesgopher/logger"
	"github.com/nesgopher/nesgopher/modalflag"
	"github.com/nesgopher/nesgopher/performance"
	"github.com/nesgopher/nesgopher/prefs"
	"github.com/nesgopher/nesgopher/statsview"
	"github.com/nesgopher/nesgopher/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	if err := launch(md, os.Stdout); err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(1)
	}
}

func launch(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DIGEST", "DISASM", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	logger.Logf(logger.Allow, "nesgopher", "mode %s", md.Mode())

	switch md.Mode() {
	case "RUN":
		return run(md, output)
	case "DEBUG":
		return debug(md, output)
	case "DIGEST":
		return videoDigest(md, output)
	case "DISASM":
		return disasm(md, output)
	case "PERFORMANCE":
		return perform(md, output)
	case "VERSION":
		fmt.Fprintln(output, version.Version())
	}

	return nil
}

// create the NES and attach the cartridge named in the remaining arguments.
// the prefs string is pushed onto the command line stack before the
// environment is created.
func createNES(md *modalflag.Modes, prefsString string) (*hardware.NES, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, curated.Errorf("NES cartridge required for %s mode", md)
	case 1:
	default:
		return nil, curated.Errorf("too many arguments for %s mode", md)
	}

	prefs.PushCommandLineStack(prefsString)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "nesgopher", "unused prefs: %s", unused)
		}
	}()

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	if err != nil {
		return nil, err
	}

	nes, err := hardware.NewNES(env)
	if err != nil {
		return nil, err
	}

	if err := nes.AttachCartridge(cartridgeloader.NewLoader(md.GetArg(0))); err != nil {
		return nil, err
	}

	return nes, nil
}

func setEcho(log bool, output io.Writer) {
	if log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	prefsString := md.AddString("prefs", "", "preferences string (key::value; key::value)")
	frames := md.AddInt("frames", 0, "number of frames to run. zero uses the run.framelimit preference")
	pngFile := md.AddString("png", "", "save the final frame to a PNG file")
	scale := md.AddInt("scale", 2, "scaling of the PNG file")
	memvizFile := md.AddString("memviz", "", "save a graphviz dump of the CPU state")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log, output)

	if *stats {
		statsview.Launch(output)
	}

	nes, err := createNES(md, *prefsString)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, nes.Cart.Summary())

	if *frames > 0 {
		err = nes.RunForFrameCount(*frames, nil)
	} else {
		intChan := make(chan os.Signal, 1)
		signal.Notify(intChan, os.Interrupt)
		defer signal.Stop(intChan)

		limit := nes.Env().Prefs.FrameLimit.Get().(int)
		target := nes.PPU.Frames() + uint64(limit)

		performanceBrake := 0

		err = nes.Run(func() (bool, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0
				select {
				case <-intChan:
					return false, nil
				default:
				}
			}
			return limit == 0 || nes.PPU.Frames() < target, nil
		}, nil)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%d frames, %d instructions\n", nes.PPU.Frames(), nes.CPU.InstructionCount)

	if *pngFile != "" {
		if err := digest.SavePNG(*pngFile, nes.PPU.Frame(), *scale); err != nil {
			return err
		}
		fmt.Fprintf(output, "frame saved to %s\n", *pngFile)
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return curated.Errorf("memviz: %v", err)
		}
		defer f.Close()
		memviz.Map(f, nes.CPU)
		fmt.Fprintf(output, "CPU state saved to %s\n", *memvizFile)
	}

	return nil
}

func debug(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	prefsString := md.AddString("prefs", "", "preferences string (key::value; key::value)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log, output)

	if *stats {
		statsview.Launch(output)
	}

	nes, err := createNES(md, *prefsString)
	if err != nil {
		return err
	}

	dbg, err := debugger.NewDebugger(nes, os.Stdin, output)
	if err != nil {
		return err
	}

	// the terminal is only needed for the MONITOR command. input that is not
	// a terminal (a script piped to stdin for example) works without it
	term := &easyterm.Terminal{}
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		logger.Log(logger.Allow, "nesgopher", err.Error())
	} else {
		defer term.CleanUp()
		dbg.SetTerminal(term)
	}

	return dbg.Start()
}

func videoDigest(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	prefsString := md.AddString("prefs", "", "preferences string (key::value; key::value)")
	frames := md.AddInt("frames", 60, "number of frames to digest")
	pngFile := md.AddString("png", "", "save the final frame to a PNG file")
	scale := md.AddInt("scale", 2, "scaling of the PNG file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log, output)

	nes, err := createNES(md, *prefsString)
	if err != nil {
		return err
	}

	// the digest must be the same for every run of the same cartridge
	nes.Env().Random.ZeroSeed = true
	if err := nes.Reset(); err != nil {
		return err
	}

	dig := digest.NewVideo(ppu.ScreenWidth, ppu.ScreenHeight)
	for i := 0; i < *frames; i++ {
		if err := nes.RunForFrameCount(1, nil); err != nil {
			return err
		}
		if err := dig.AddFrame(nes.PPU.Frame()); err != nil {
			return err
		}
	}

	fmt.Fprintf(output, "%s\n", dig.Hash())

	if *pngFile != "" {
		if err := digest.SavePNG(*pngFile, nes.PPU.Frame(), *scale); err != nil {
			return err
		}
	}

	return nil
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	prefsString := md.AddString("prefs", "", "preferences string (key::value; key::value)")
	duration := md.AddString("duration", "5s", "run duration (with an additional 2 second leadtime)")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma separated)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log, output)

	if *stats {
		statsview.Launch(output)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	nes, err := createNES(md, *prefsString)
	if err != nil {
		return err
	}

	return performance.Check(output, prf, nes, *duration)
}

func disasm(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(*log, output)

	nes, err := createNES(md, "")
	if err != nil {
		return err
	}

	dsm := disassembly.FromMemory(nes.Mem)
	if err := dsm.Write(output); err != nil {
		return err
	}

	if dsm.OutsideCartridge {
		fmt.Fprintln(output, "* program flows outside of the cartridge")
	}
	if dsm.Illegal {
		fmt.Fprintln(output, "* program flows into an illegal opcode")
	}

	return nil
}
