package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	draw9 "9fans.net/go/draw"
	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"9fans.net/go/plumb"
)

const (
	progName    = "svgwatch"
	windowLabel = "SVG Watch"

	white     = draw9.Color(uint32(0xFFFFFFFF))
	black     = draw9.Color(uint32(0x000000FF))
	darkred   = draw9.Color(uint32(0xAA0000FF))
	paleWhite = draw9.Color(uint32(0xEEEEEEFF))

	upArrowKey      = 61454
	downArrowKey    = 128
	leftArrowKey    = 61457
	rightArrowKey   = 61458
	scrollWheelUp   = 8
	scrollWheelDown = 16
	escKey          = 27
	delKey          = 127

	// wheelNotch is the wheel delta of one notch of the scroll wheel.
	wheelNotch = 120
)

var (
	windowSizeFlag = flag.String("w", "800x600", "set window size")
	silent         = flag.Bool("q", false, "silent mode, do not log anything")
	verbose        = flag.Bool("v", false, "verbose mode, log load and paint times")
)

var (
	enableProfiler = flag.Bool("profile", false, "run with the profiler enabled")
	cpuprofile     = flag.String("cpuprofile", "cpu.prof", "write cpu profile to `file`")
	memprofile     = flag.String("memprofile", "mem.prof", "write memory profile to `file`")
)

var (
	padding = 4

	plumber *client.Fid

	errArgCount = errors.New("expected exactly one file")
)

type DisplayControl struct {
	display     *draw9.Display
	errch       chan error
	mctl        *draw9.Mousectl
	kctl        *draw9.Keyboardctl
	bgColor     *draw9.Image
	borderColor *draw9.Image
	fontColor   *draw9.Image
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-q|-v] [-w WxH] file.svg

%s shows an SVG file and reloads it when it changes.

Keys: f fit to window, + and - zoom, arrows pan, i info, p plumb, q exit.

Flags:
`, progName, progName)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	path, err := checkArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		flag.Usage()
	}

	if *enableProfiler {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	windowSize, ok := stringToPoint(*windowSizeFlag)
	if !ok {
		log.Fatalf("cannot compute window size from %s", *windowSizeFlag)
	}

	if *silent {
		log.SetOutput(io.Discard)
	}

	connectToPlumber()
	dctl := connectToDisplay(windowSize)

	sv := NewSvgView(path, dctl.display.Image.Bounds())
	sv.Connect(dctl)

	views := []View{sv}
	for len(views) > 0 {
		v := views[len(views)-1]
		v.Attach(dctl.display.Image.Bounds())
		if nv := v.Handle(); nv != nil {
			nv.Connect(dctl)
			views = append(views, nv)
		} else {
			v.Free()
			views = views[0 : len(views)-1]
		}
	}

	if err := dctl.display.Close(); err != nil {
		log.Printf("display: close: %v", err)
	}

	if *enableProfiler {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

// checkArgs returns the file to show from the command line arguments.
func checkArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("got %d arguments: %w", len(args), errArgCount)
	}
	return args[0], nil
}

func connectToDisplay(dims image.Point) *DisplayControl {
	errch := make(chan error)
	disp, err := draw9.Init(errch, "", windowLabel, fmt.Sprintf("%dx%d", dims.X, dims.Y))
	if err != nil {
		log.Fatalf("display: cannot connect: %v", err)
	}
	kctl := disp.InitKeyboard()
	mctl := disp.InitMouse()

	return &DisplayControl{
		display:     disp,
		errch:       errch,
		mctl:        mctl,
		kctl:        kctl,
		bgColor:     disp.AllocImageMix(white, white),
		borderColor: disp.AllocImageMix(darkred, darkred),
		fontColor:   disp.AllocImageMix(black, paleWhite),
	}
}

func connectToPlumber() {
	var err error
	plumber, err = plumb.Open("send", plan9.OWRITE|plan9.OCEXEC)
	if err != nil {
		log.Printf("plumber not available: %v", err)
	}
}

func plumbFile(s string) {
	if plumber == nil {
		log.Printf("plumber not available")
		return
	}

	m := plumb.Message{
		Src:  progName,
		Dir:  filepath.Dir(s),
		Type: "text",
		Data: []byte(s),
	}
	if err := m.Send(plumber); err != nil {
		log.Printf("plumber: %v", err)
	}
}

func stringToPoint(s string) (image.Point, bool) {
	fields := strings.Split(s, "x")
	if len(fields) != 2 {
		return image.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil || x <= 0 {
		return image.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil || y <= 0 {
		return image.Point{}, false
	}
	return image.Pt(x, y), true
}
