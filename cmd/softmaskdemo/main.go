// Command softmaskdemo builds a nested soft mask hierarchy and prints the
// material variant every drawable resolves to.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/mask"
	"github.com/gogpu/softmask/material"
)

// canvas is the render target of the demo drawables.
type canvas struct {
	stereo bool
}

func (c *canvas) Stereo() bool { return c.stereo }

// drawable counts redraw requests.
type drawable struct {
	canvas *canvas
	dirty  int
}

func (d *drawable) Canvas() mask.Canvas { return d.canvas }
func (d *drawable) Maskable() bool      { return true }
func (d *drawable) SetMaterialDirty()   { d.dirty++ }

// hostTexture is a device texture kept in host memory.
type hostTexture struct {
	w, h int
	data []byte
}

func (t *hostTexture) Width() int  { return t.w }
func (t *hostTexture) Height() int { return t.h }

func (t *hostTexture) UpdateData(data []byte) error {
	copy(t.data, data)
	return nil
}

// hostDevice creates host memory textures and counts their bytes.
type hostDevice struct {
	textures int
	bytes    int
}

func (d *hostDevice) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	d.textures++
	d.bytes += len(data)
	return &hostTexture{w: w, h: h, data: append([]byte(nil), data...)}, nil
}

func main() {
	var (
		depth    = flag.Int("depth", 3, "soft mask nesting levels")
		siblings = flag.Int("siblings", 2, "drawables per level")
		stereo   = flag.Bool("stereo", false, "render through a stereo canvas")
		validate = flag.Bool("validate", false, "compile generated shaders with naga")
		preview  = flag.Bool("preview", false, "enable preview alpha clipping")
		verbose  = flag.Bool("v", false, "log resolution details")
	)
	flag.Parse()

	if *verbose {
		softmask.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := softmask.NewSettings(
		softmask.WithStereo(*stereo),
		softmask.WithPreview(*preview),
	)
	device := &hostDevice{}
	factory := material.NewMaskedFactory(
		material.WithShaderValidation(*validate),
		material.WithTextureCreator(device),
	)

	g := graph.New()
	sys, err := mask.NewSystem(g, settings, factory, nil)
	if err != nil {
		log.Fatalf("Failed to create mask system: %v", err)
	}
	sys.Watch(g)

	cv := &canvas{stereo: *stereo}
	nodes, err := buildHierarchy(g, sys, cv, *depth, *siblings)
	if err != nil {
		log.Fatalf("Failed to build hierarchy: %v", err)
	}

	base := material.New("Panel", "UI/Default")
	printResolutions(g, nodes, base)

	// Opt the first drawable out and resolve again.
	if len(nodes) > 0 {
		nodes[0].SetIgnoreSelf(true)
		fmt.Println()
		fmt.Printf("after ignoring %s:\n", g.Name(nodes[0].ID()))
		printResolutions(g, nodes, base)
	}

	st := sys.Cache().Stats()
	fmt.Println()
	fmt.Printf("variants: %d live, %d created, %d destroyed, hit rate %.0f%%\n",
		st.Len, st.Created, st.Destroyed, st.HitRate*100)
	fmt.Printf("mask buffers: %d allocated, %d bytes\n", device.textures, device.bytes)

	sys.Close()
}

// buildHierarchy nests depth soft masks under a root and adds siblings
// drawables at the root and under every mask.
func buildHierarchy(g *graph.Graph, sys *mask.System, cv *canvas, depth, siblings int) ([]*mask.Node, error) {
	var nodes []*mask.Node
	parent := g.MustAdd("root", graph.None)

	for level := 0; level <= depth; level++ {
		for i := 0; i < siblings; i++ {
			id := g.MustAdd(fmt.Sprintf("drawable-%d-%d", level, i), parent)
			n, err := sys.Add(id, &drawable{canvas: cv})
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		if level == depth {
			break
		}

		name := fmt.Sprintf("mask-%d", level)
		id := g.MustAdd(name, parent)
		region := mask.NewRegion(material.NewMaskBuffer(name, 256, 256))
		region.Threshold = 0.5
		if err := g.Attach(id, region); err != nil {
			return nil, err
		}
		parent = id
	}
	return nodes, nil
}

func printResolutions(g *graph.Graph, nodes []*mask.Node, base *material.Material) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NODE\tDEPTH\tSTENCIL\tMATERIAL\tKEY")
	for _, n := range nodes {
		mat := n.ResolveMaterial(base)
		r := n.Stencil()
		key := "-"
		if k, ok := n.Key(); ok {
			key = k.String()
		}
		depth := "-"
		if r.Governed() {
			depth = fmt.Sprint(r.Depth)
		}
		fmt.Fprintf(w, "%s\t%s\t%08b\t%s#%d\t%s\n",
			g.Name(n.ID()), depth, r.StencilBits, mat.Name, mat.ID(), key)
	}
}
