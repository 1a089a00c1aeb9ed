package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lockfs/lockfs/cmd/lockfsctl/metrics"
	"github.com/lockfs/lockfs/syncwrap"
	"github.com/lockfs/lockfs/tree"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// command is one line of a parsed command script: a verb plus its
// path arguments. Line numbers are kept so results can be reported
// back in submission order even though workers execute out of order.
type command struct {
	line int
	verb byte // 'c', 'd', 'm', 'l', or 'p'
	kind tree.Kind
	a, b string
}

// parseScript reads one command per line in the tecnicofs-style script
// format:
//
//	c <path> f|d   create a file or directory
//	d <path>       delete
//	m <src> <dst>  move/rename
//	l <path>       lookup
//	p              print the whole tree
//
// Blank lines and lines starting with '#' are skipped.
func parseScript(r io.Reader) ([]command, error) {
	var cmds []command
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		cmd := command{line: lineNo, verb: fields[0][0]}
		switch cmd.verb {
		case 'c':
			if len(fields) != 3 {
				return nil, errors.Errorf("line %d: create wants 2 args, got %d", lineNo, len(fields)-1)
			}
			switch fields[2] {
			case "f":
				cmd.kind = tree.KindFile
			case "d":
				cmd.kind = tree.KindDirectory
			default:
				return nil, errors.Errorf("line %d: unknown node kind %q", lineNo, fields[2])
			}
			cmd.a = fields[1]
		case 'd', 'l':
			if len(fields) != 2 {
				return nil, errors.Errorf("line %d: %c wants 1 arg, got %d", lineNo, cmd.verb, len(fields)-1)
			}
			cmd.a = fields[1]
		case 'm':
			if len(fields) != 3 {
				return nil, errors.Errorf("line %d: move wants 2 args, got %d", lineNo, len(fields)-1)
			}
			cmd.a, cmd.b = fields[1], fields[2]
		case 'p':
			if len(fields) != 1 {
				return nil, errors.Errorf("line %d: print takes no args", lineNo)
			}
		default:
			return nil, errors.Errorf("line %d: unknown command %q", lineNo, fields[0])
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading command script")
	}
	return cmds, nil
}

// result pairs a command's line number with the text to emit for it,
// so dispatch can sort results back into submission order after
// running commands across a worker pool.
type result struct {
	line int
	text string
}

// dispatch runs cmds against t using workers goroutines, recording
// metrics on rec and logging each outcome to logger. print commands run
// inline on the dispatching goroutine after a barrier, since
// tree.Tree.Print requires external quiescence of concurrent writers
// (see syncwrap.Tree.Print).
//
// Non-print commands are independent of each other from dispatch's
// point of view, since ordering and mutual exclusion between them is
// entirely the wrapped tree's job, so they fan out freely across the
// pool.
func dispatch(ctx context.Context, t *syncwrap.Tree, cmds []command, workers int, rec *metrics.Recorder, logger *log.Logger) ([]result, error) {
	results := make([]result, len(cmds))

	var printLines []int
	for i, c := range cmds {
		if c.verb == 'p' {
			printLines = append(printLines, i)
		}
	}

	wg, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		wg.SetLimit(workers)
	}

	for i, c := range cmds {
		if c.verb == 'p' {
			continue
		}
		i, c := i, c
		wg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = runOne(t, c, rec, logger)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, errors.Wrap(err, "running command script")
	}

	for _, i := range printLines {
		results[i] = runOne(t, cmds[i], rec, logger)
	}

	return results, nil
}

func runOne(t *syncwrap.Tree, c command, rec *metrics.Recorder, logger *log.Logger) result {
	start := time.Now()
	var status tree.Status
	var text string
	kindName := string(c.verb)

	switch c.verb {
	case 'c':
		status = t.Create(c.a, c.kind)
		text = fmt.Sprintf("c %s: %s", c.a, status)
	case 'd':
		status = t.Delete(c.a)
		text = fmt.Sprintf("d %s: %s", c.a, status)
	case 'm':
		status = t.Move(c.a, c.b)
		text = fmt.Sprintf("m %s %s: %s", c.a, c.b, status)
	case 'l':
		id, st := t.Lookup(c.a)
		status = st
		if st.Ok() {
			text = fmt.Sprintf("l %s: %s (id=%s)", c.a, status, strconv.Itoa(id))
		} else {
			text = fmt.Sprintf("l %s: %s", c.a, status)
		}
	case 'p':
		var sb strings.Builder
		t.Print(&sb)
		status = tree.Success
		text = "p:\n" + sb.String()
	}

	elapsed := time.Since(start)
	rec.Observe(kindName, status, elapsed)
	logger.Printf("line %d: %s (%s)", c.line, text, elapsed)
	return result{line: c.line, text: text}
}

// writeResults writes each result's text, one per line, to w in
// submission order.
func writeResults(w io.Writer, results []result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintln(bw, r.text); err != nil {
			return errors.Wrap(err, "writing results")
		}
	}
	return bw.Flush()
}
