// Command nxbgmdump walks an NX file's top-level "Bgm*" groups and writes
// every audio node it finds to an .mp3 file under an output directory.
// Grounded in NoLifeDev/nx-rs's examples/bgmdump.rs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ErwinsExpertise/go-nx-reader/nx"
)

func main() {
	outDir := flag.String("out", "Bgm", "directory to write audio files into")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: nxbgmdump [-out dir] <Sound.nx>")
		flag.PrintDefaults()
		return
	}

	for _, path := range paths {
		if err := dumpBgm(path, *outDir); err != nil {
			log.Printf("%s: %v", path, err)
		}
	}
}

func dumpBgm(path, outDir string) error {
	file, err := nx.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	it := file.Root().Iter()
	for {
		group, ok := it.Next()
		if !ok {
			return nil
		}
		if !strings.HasPrefix(group.Name(), "Bgm") {
			continue
		}
		groupDir := filepath.Join(outDir, group.Name())
		if err := os.MkdirAll(groupDir, 0o755); err != nil {
			return err
		}
		songs := group.Iter()
		for {
			song, ok := songs.Next()
			if !ok {
				break
			}
			audio, ok := song.Audio()
			if !ok {
				continue
			}
			dest := filepath.Join(groupDir, song.Name()+".mp3")
			if err := os.WriteFile(dest, audio.Data(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}
		}
	}
}
