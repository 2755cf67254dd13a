// Command nxdump walks an NX file's tree and prints how often each node
// name occurs, most common last. Grounded in NoLifeDev/nx-rs's
// examples/common.rs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/ErwinsExpertise/go-nx-reader/nx"
)

func main() {
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: nxdump <file.nx> [file.nx...]")
		flag.PrintDefaults()
		return
	}

	for _, path := range paths {
		if err := dump(path); err != nil {
			log.Printf("%s: %v", path, err)
		}
	}
}

func dump(path string) error {
	file, err := nx.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	counts := map[string]int{}
	var recurse func(n nx.Node)
	recurse = func(n nx.Node) {
		counts[n.Name()]++
		it := n.Iter()
		for {
			child, ok := it.Next()
			if !ok {
				break
			}
			recurse(child)
		}
	}
	recurse(file.Root())

	type nameCount struct {
		name  string
		count int
	}
	rows := make([]nameCount, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, nameCount{name, count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].count < rows[j].count })

	for _, r := range rows {
		fmt.Printf("%d: %s\n", r.count, r.name)
	}
	return nil
}
