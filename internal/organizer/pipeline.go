package organizer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/organizer/internal/fileutil"
)

// State is the stage a pipeline run is in.
type State int

// Pipeline state constants
const (
	StateIdle      State = iota // No run has started
	StatePreparing              // Cleaning or creating the source and output
	StateSeeding                // Creating placeholder files in the source
	StateScanning               // Walking the source tree
	StateCopying                // Copies are being fanned out
	StateDone                   // Every launched copy has settled
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing directories"
	case StateSeeding:
		return "seeding"
	case StateScanning:
		return "scanning"
	case StateCopying:
		return "copying"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// DefaultWorkers is the copy pool size used when none is configured.
func DefaultWorkers() int {
	return runtime.NumCPU() * 2
}

// Pipeline prepares a source and an output directory, seeds the source,
// scans it, and copies every discovered file into the output through a
// bounded worker pool. Stage failures never stop the run. A Pipeline runs
// one pass at a time.
type Pipeline struct {
	Extensions *ExtensionSet
	Workers    int  // Copy pool size (<= 0 uses DefaultWorkers)
	SeedCount  int  // Placeholder files to create
	KeepSource bool // Organize existing source contents: no cleanup, no seeding
	Logger     Logger

	// OnStateChange is called on every stage transition (optional).
	OnStateChange func(State)
	// OnScanned is called with the number of discovered files (optional).
	OnScanned func(total int)
	// OnOutcome is called as each copy settles, from the worker goroutine (optional).
	OnOutcome func(CopyOutcome)

	state      State
	stageStart time.Time
}

// NewPipeline creates a Pipeline with default workers and seed count.
func NewPipeline(exts *ExtensionSet, log Logger) *Pipeline {
	return &Pipeline{
		Extensions: exts,
		Workers:    DefaultWorkers(),
		SeedCount:  DefaultSeedCount,
		Logger:     orNop(log),
	}
}

// Run executes one organize pass and returns the collected report. It
// always reaches StateDone; errors are recorded in the report. Once ctx is
// cancelled no new copies are started and the remaining files settle as
// failed, while copies already running finish.
func (p *Pipeline) Run(ctx context.Context, source, output string) *Report {
	log := orNop(p.Logger)
	report := &Report{
		RunID:     uuid.NewString(),
		Source:    source,
		Output:    output,
		StartedAt: time.Now(),
	}

	p.transition(StatePreparing)
	// Both directories are always attempted.
	if !p.KeepSource {
		report.PrepareErrors = append(report.PrepareErrors, PrepareDirectory(source, log)...)
	}
	report.PrepareErrors = append(report.PrepareErrors, PrepareDirectory(output, log)...)

	p.transition(StateSeeding)
	if p.KeepSource {
		log.LogInfo(fmt.Sprintf("Keeping existing contents of %s", source))
	} else {
		report.SeedErrors = SeedCorpus(source, p.Extensions, p.SeedCount, log)
	}

	p.transition(StateScanning)
	log.LogInfo(fmt.Sprintf("Scanning %s", source))
	scan := fileutil.ScanTree(source)
	for _, err := range scan.Errors {
		log.LogError(fmt.Sprintf("Scan error in %s: %v", source, err))
		report.ScanErrors = append(report.ScanErrors, newOpError(KindTreeScan, source, "", err))
	}
	report.Discovered = len(scan.Files)
	log.LogInfo(fmt.Sprintf("Found %d files", len(scan.Files)))
	if p.OnScanned != nil {
		p.OnScanned(len(scan.Files))
	}

	p.transition(StateCopying)
	report.Outcomes = p.copyAll(ctx, output, scan.Files, log)

	report.Duration = time.Since(report.StartedAt)
	p.transition(StateDone)
	log.LogInfo("Operation complete")
	return report
}

func (p *Pipeline) copyAll(ctx context.Context, output string, files []string, log Logger) []CopyOutcome {
	copier := NewCopier(output, p.Extensions, log)
	outcomes := make([]CopyOutcome, len(files))

	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	// Workers never return an error; the group is only a bounded fan-out.
	var g errgroup.Group
	g.SetLimit(workers)

	for i, file := range files {
		if ctx.Err() != nil {
			// Copy observes the cancelled context and settles immediately.
			outcomes[i] = copier.Copy(ctx, file)
			p.notify(outcomes[i])
			continue
		}
		g.Go(func() error {
			outcomes[i] = copier.Copy(ctx, file)
			p.notify(outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// State returns the stage of the current or last run.
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) transition(s State) {
	log := orNop(p.Logger)
	now := time.Now()
	if p.state != StateIdle && p.state != StateDone {
		log.LogStageComplete(p.state.String(), now.Sub(p.stageStart))
	}
	if s != StateDone {
		log.LogStageStart(s.String())
	}
	p.state = s
	p.stageStart = now
	if p.OnStateChange != nil {
		p.OnStateChange(s)
	}
}

func (p *Pipeline) notify(o CopyOutcome) {
	if p.OnOutcome != nil {
		p.OnOutcome(o)
	}
}
