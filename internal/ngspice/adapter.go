// Package ngspice drives an external ngspice process as the
// simulation engine. Each DC sweep gets its own netlist, scratch
// directory and process, so concurrent jobs share nothing; the device
// geometry lives only in the job's generated testbench.
package ngspice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/arvid-k/charsweep/internal/dataset"
	"github.com/arvid-k/charsweep/internal/sim"
)

const defaultExecutable = "ngspice"

// Adapter implements sim.Adapter on top of an ngspice binary in batch
// mode.
type Adapter struct {
	libPath     string
	device      string
	temperature float64
	executable  string
}

func New(libPath, device string, temperature float64) *Adapter {
	return &Adapter{
		libPath:     libPath,
		device:      device,
		temperature: temperature,
		executable:  defaultExecutable,
	}
}

// WithExecutable overrides the ngspice binary, mainly for tests and
// exotic installs.
func (a *Adapter) WithExecutable(path string) *Adapter {
	a.executable = path
	return a
}

// RunDCSweep renders the testbench, runs ngspice -b and parses the
// wrdata dump back into a result table. Convergence failures surface
// as errors with ngspice's stderr attached.
func (a *Adapter) RunDCSweep(ctx context.Context, job sim.Job) (*dataset.Table, error) {
	dir, err := os.MkdirTemp("", "charsweep-job-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	dataPath := filepath.Join(dir, "sweep.txt")
	cirPath := filepath.Join(dir, "testbench.cir")

	netlist := Netlist(a.libPath, a.device, a.temperature, job, dataPath)
	if err := os.WriteFile(cirPath, []byte(netlist), 0644); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, a.executable, "-b", cirPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ngspice: %w: %s", err, firstLines(stderr.String(), 5))
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("ngspice: no sweep output (simulation did not converge?): %w", err)
	}
	defer f.Close()

	t, err := ParseWrdata(f, job.Quantities)
	if err != nil {
		return nil, err
	}

	if want := job.Grid.Size(); t.Len() != want {
		return nil, fmt.Errorf("ngspice: expected %d grid points, got %d rows", want, t.Len())
	}
	return t, nil
}

func firstLines(s string, n int) string {
	lines := bytes.Split([]byte(s), []byte("\n"))
	if len(lines) > n {
		lines = lines[:n]
	}
	return string(bytes.Join(lines, []byte("; ")))
}
