// objtool is a CLI utility for inspecting OBJ files and vertex layouts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/mesh"
	"github.com/Faultbox/objviewer/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "layout":
		err = cmdLayout(os.Stdout, args)
	case "build":
		err = cmdBuild(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objtool - OBJ model and vertex layout utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                                  Show record counts and bounds
  layout [-position N] [-normal N] [-texcoord N]   Show stride and attribute offsets
  build [-layout v/vt/vn] [-dump N] <file.obj>     Build the vertex buffer and report it

Examples:
  objtool info objects/model.obj
  objtool layout -position 0 -texcoord 1 -normal 2
  objtool build -layout v//vn -dump 3 objects/model.obj`)
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool info <file.obj>")
	}

	obj, err := formats.LoadOBJ(args[0])
	if err != nil {
		return err
	}

	b := mesh.BoundsOf(obj.Positions)
	fmt.Fprintf(w, "File:       %s\n", args[0])
	fmt.Fprintf(w, "Positions:  %d\n", len(obj.Positions))
	fmt.Fprintf(w, "Normals:    %d\n", len(obj.Normals))
	fmt.Fprintf(w, "TexCoords:  %d\n", len(obj.TexCoords))
	fmt.Fprintf(w, "Faces:      %d\n", len(obj.Faces))
	fmt.Fprintf(w, "Dropped:    %d vertices beyond the first triangle\n", obj.DroppedVertices)
	fmt.Fprintf(w, "Skipped:    %d lines\n", obj.SkippedLines)
	fmt.Fprintf(w, "Bounds:     %v - %v\n", b.Min, b.Max)
	return nil
}

func cmdLayout(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(w)
	position := fs.Int("position", 0, "Tuple slot of the position index")
	normal := fs.Int("normal", -1, "Tuple slot of the normal index (-1 = absent)")
	texcoord := fs.Int("texcoord", -1, "Tuple slot of the texcoord index (-1 = absent)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, err := mesh.NewSchemaFromSlots(mesh.Slot(*position), mesh.Slot(*normal), mesh.Slot(*texcoord))
	if err != nil {
		return err
	}
	printLayout(w, schema)
	return nil
}

func printLayout(w io.Writer, schema *mesh.Schema) {
	fl := schema.FaceLayout()
	vl := schema.VertexLayout()

	fmt.Fprintf(w, "Stride: %d bytes (%d floats)\n", vl.Stride(), vl.FloatsPerVertex())
	fmt.Fprintf(w, "  %-10s %-5s %-8s %-6s %-6s %s\n", "channel", "slot", "location", "comps", "bytes", "offset")
	for i, ch := range fl.Enabled() {
		a := vl.Attributes()[i]
		fmt.Fprintf(w, "  %-10s %-5d %-8d %-6d %-6d %d\n", ch, fl.Slot(ch), a.Index, a.Components, a.Bytes, a.Offset)
	}
}

func cmdBuild(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(w)
	layout := fs.String("layout", "v/vt", "Face layout, e.g. v/vt/vn, v//vn, v")
	dump := fs.Int("dump", 0, "Print the first N interleaved vertices")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: objtool build [-layout v/vt/vn] [-dump N] <file.obj>")
	}

	position, normal, texcoord, err := config.FaceLayout(*layout).Slots()
	if err != nil {
		return err
	}
	schema, err := mesh.NewSchemaFromSlots(mesh.Slot(position), mesh.Slot(normal), mesh.Slot(texcoord))
	if err != nil {
		return err
	}

	m, err := mesh.BuildFromFile(fs.Arg(0), schema)
	if err != nil {
		return err
	}

	printLayout(w, schema)
	fmt.Fprintf(w, "Vertices:   %d (%d floats)\n", m.VertexCount(), len(m.Vertices()))
	fmt.Fprintf(w, "Triangles:  %d\n", m.TriangleCount())
	for _, ch := range schema.FaceLayout().Enabled() {
		fmt.Fprintf(w, "Indices:    %-9s %d\n", ch, len(m.Indices(ch)))
	}
	b := m.Bounds()
	fmt.Fprintf(w, "Bounds:     %v - %v\n", b.Min, b.Max)

	diags := m.Diagnostics()
	fmt.Fprintf(w, "Coerced:    %d face components\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}

	if *dump > 0 {
		vertices := m.Vertices()
		fpv := m.Layout().FloatsPerVertex()
		n := min(*dump, m.VertexCount())
		for i := 0; i < n; i++ {
			fmt.Fprintf(w, "  [%d] %v\n", i, vertices[i*fpv:(i+1)*fpv])
		}
	}
	return nil
}
