package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/vvzen/acesrender"
	"github.com/vvzen/acesrender/internal/view"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"view"}
	}
	switch args[0] {
	case "view":
		if err := runView(args[1:]); err != nil {
			fail(err)
		}
	case "render":
		if err := runRender(args[1:]); err != nil {
			fail(err)
		}
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: acesrender [command] [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  view   [-w 1024] [-h 1024] [-in scene.exr]          interactive viewer (default)")
	fmt.Fprintln(os.Stderr, "  render -out out.exr [-display out.png] [-w] [-h]    headless render to file")
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	w := fs.Int("w", acesrender.DefaultWidth, "render width")
	h := fs.Int("h", acesrender.DefaultHeight, "render height")
	in := fs.String("in", "", "open an OpenEXR file instead of rendering")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *w <= 0 || *h <= 0 {
		return errors.New("invalid render dimensions")
	}
	return view.Run(view.Options{Width: *w, Height: *h, In: *in})
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	w := fs.Int("w", acesrender.DefaultWidth, "render width")
	h := fs.Int("h", acesrender.DefaultHeight, "render height")
	out := fs.String("out", "", "output file (.exr, .png or .webp)")
	display := fs.String("display", "", "also write the display image (.png or .webp)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("missing required -out")
	}
	if *w <= 0 || *h <= 0 {
		return errors.New("invalid render dimensions")
	}
	scene := acesrender.RenderGradient(*w, *h)
	displayImg := acesrender.EncodeDisplay(scene, acesrender.DefaultTonemapParams())
	if err := acesrender.Save(*out, scene, displayImg); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "wrote", *out)
	if *display != "" {
		if err := acesrender.Save(*display, scene, displayImg); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", *display)
	}
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
