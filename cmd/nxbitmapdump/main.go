// Command nxbitmapdump walks an NX file's tree and writes every bitmap
// node it finds to a PNG under an output directory, one file per node
// path, swapping the stored BGRA channel order to RGBA along the way.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/ErwinsExpertise/go-nx-reader/nx"
)

func main() {
	outDir := flag.String("out", "bitmap", "directory to write PNGs into")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: nxbitmapdump [-out dir] <file.nx>")
		flag.PrintDefaults()
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, path := range paths {
		if err := dumpBitmaps(path, *outDir); err != nil {
			log.Printf("%s: %v", path, err)
		}
	}
}

func dumpBitmaps(path, outDir string) error {
	file, err := nx.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	base := baseName(path)
	return recurse(file.Root(), outDir, base)
}

func recurse(n nx.Node, outDir, name string) error {
	if bm, ok := n.Bitmap(); ok {
		if err := writeBitmapPNG(bm, filepath.Join(outDir, name+".png")); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	it := n.Iter()
	for {
		child, ok := it.Next()
		if !ok {
			return nil
		}
		if err := recurse(child, outDir, name+"."+child.Name()); err != nil {
			return err
		}
	}
}

func writeBitmapPNG(bm nx.Bitmap, path string) error {
	buf := make([]byte, bm.Len())
	bm.DecodeInto(buf)

	// stored channel order is BGRA; image.RGBA wants RGBA.
	for i := 0; i+4 <= len(buf); i += 4 {
		buf[i], buf[i+2] = buf[i+2], buf[i]
	}

	img := &image.RGBA{
		Pix:    buf,
		Stride: int(bm.Width()) * 4,
		Rect:   image.Rect(0, 0, int(bm.Width()), int(bm.Height())),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func baseName(path string) string {
	b := filepath.Base(path)
	return b[:len(b)-len(filepath.Ext(b))]
}
