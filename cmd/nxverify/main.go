// Command nxverify checks the structural invariants of every reachable
// node in one or more NX files: iteration length equals the node's child
// count, siblings are strictly ascending by name, and every child
// round-trips through a parent lookup. Files are checked concurrently on a
// worker pool, which a File supports since it is safe to use from many
// goroutines at once without locking.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/goinggo/workpool"

	"github.com/ErwinsExpertise/go-nx-reader/nx"
)

type verifyJob struct {
	path string
	out  chan<- jobResult
}

type jobResult struct {
	path string
	err  error
}

func (j *verifyJob) DoWork(workRoutine int) {
	j.out <- jobResult{path: j.path, err: verifyFile(j.path)}
}

func main() {
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: nxverify <file.nx> [file.nx...]")
		flag.PrintDefaults()
		return
	}

	pool := workpool.New(int32(runtime.NumCPU()), int32(len(paths)+1))
	results := make(chan jobResult, len(paths))

	for _, path := range paths {
		if err := pool.PostWork("nxverify", &verifyJob{path: path, out: results}); err != nil {
			log.Fatalf("scheduling %s: %v", path, err)
		}
	}

	for pool.QueuedWork() != 0 {
		time.Sleep(50 * time.Millisecond)
	}

	failed := false
	for range paths {
		r := <-results
		if r.err != nil {
			failed = true
			fmt.Printf("FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Printf("OK   %s\n", r.path)
	}
	if failed {
		os.Exit(1)
	}
}

func verifyFile(path string) error {
	file, err := nx.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return verifyNode(file.Root())
}

func verifyNode(n nx.Node) error {
	var children []nx.Node
	it := n.Iter()
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		children = append(children, c)
	}

	if want := n.Iter().Len(); len(children) != want {
		return fmt.Errorf("%q: iteration yielded %d children, want %d",
			n.Name(), len(children), want)
	}

	for i := 1; i < len(children); i++ {
		if !(children[i-1].Name() < children[i].Name()) {
			return fmt.Errorf("%q: children %q and %q are not strictly ascending",
				n.Name(), children[i-1].Name(), children[i].Name())
		}
	}

	for _, c := range children {
		if got := n.Get(c.Name()); !got.Equal(c) {
			return fmt.Errorf("%q: Get(%q) did not round-trip to the iterated child",
				n.Name(), c.Name())
		}
		if err := verifyNode(c); err != nil {
			return err
		}
	}
	return nil
}
