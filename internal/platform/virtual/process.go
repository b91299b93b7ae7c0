package virtual

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

type process struct {
	pid         int
	name        string
	path        string
	ignoreClose bool
}

// Launch implements platform.ProcessManager. path is matched against the
// fixture apps by full path, then by executable base name.
func (d *Desktop) Launch(ctx context.Context, path string, args []string) (platform.Process, error) {
	if err := ctx.Err(); err != nil {
		return platform.Process{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	app, ok := d.findApp(path)
	if !ok {
		return platform.Process{}, fmt.Errorf("executable not found: %s", path)
	}
	pid := app.PID
	if pid == 0 || d.procs[pid] != nil {
		d.nextPID++
		pid = d.nextPID
	}
	name := app.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(app.Path), filepath.Ext(app.Path))
	}

	var windows []*node
	for i, w := range app.Windows {
		win, err := d.build(w, d.root, len(d.root.children)+i, len(app.Windows), pid, name)
		if err != nil {
			return platform.Process{}, err
		}
		win.appearAfter += app.WindowDelay
		windows = append(windows, win)
	}
	d.root.children = append(windows, d.root.children...)
	d.procs[pid] = &process{pid: pid, name: name, path: path, ignoreClose: app.IgnoreClose}
	d.record("launch", nil, fmt.Sprintf("%s pid=%d %s", path, pid, strings.Join(args, " ")))
	return platform.Process{PID: pid, Name: name, Path: path}, nil
}

func (d *Desktop) findApp(path string) (AppSpec, bool) {
	for _, a := range d.apps {
		if a.Path == path {
			return a, true
		}
	}
	base := strings.ToLower(filepath.Base(path))
	for _, a := range d.apps {
		if strings.EqualFold(filepath.Base(a.Path), base) || strings.EqualFold(a.Name, base) {
			return a, true
		}
	}
	return AppSpec{}, false
}

// Processes implements platform.ProcessManager.
func (d *Desktop) Processes() ([]platform.Process, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]platform.Process, 0, len(d.procs))
	for _, p := range d.procs {
		out = append(out, platform.Process{PID: p.pid, Name: p.name, Path: p.path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

// ProcessName implements platform.ProcessManager.
func (d *Desktop) ProcessName(pid int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.procs[pid]; ok {
		return p.name, nil
	}
	return "", fmt.Errorf("no process with pid %d", pid)
}

// IsRunning implements platform.ProcessManager.
func (d *Desktop) IsRunning(pid int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.procs[pid]
	return ok
}

// Close implements platform.ProcessManager. A process that ignores the close
// request is killed once grace elapses.
func (d *Desktop) Close(ctx context.Context, pid int, grace time.Duration) error {
	d.mu.Lock()
	p, ok := d.procs[pid]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("no process with pid %d", pid)
	}
	d.record("close", nil, fmt.Sprintf("pid=%d", pid))
	ignore := p.ignoreClose
	d.mu.Unlock()

	if ignore {
		t := time.NewTimer(grace)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ignore {
		d.record("kill", nil, fmt.Sprintf("pid=%d", pid))
	}
	delete(d.procs, pid)
	kept := d.root.children[:0]
	for _, w := range d.root.children {
		if w.pid == pid {
			markRemoved(w)
			continue
		}
		kept = append(kept, w)
	}
	d.root.children = kept
	if d.focused != nil && d.focused.removed {
		d.focused = nil
	}
	return nil
}
