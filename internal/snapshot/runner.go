// Package snapshot exports the most recent Trigger.dev run as a Markdown
// report and keeps latest.md pointing at the newest one.
package snapshot

import (
	"context"
	"time"

	"github.com/Backland-Labs/runsnap/internal/logger"
	"github.com/Backland-Labs/runsnap/internal/trigger"
)

// Result describes a finished snapshot. Run is nil when the remote service
// returned no runs and nothing was written.
type Result struct {
	Run        *trigger.RunSummary
	Task       string
	Path       string
	LatestPath string
	Bytes      int
}

// Written reports whether a snapshot file was produced
func (r *Result) Written() bool {
	return r.Run != nil && r.Path != ""
}

// Runner takes one snapshot per Run call
type Runner struct {
	client trigger.Client
	store  *Store
	env    string
	now    func() time.Time
	found  func(trigger.RunSummary)
}

// NewRunner creates a runner for env that reads from client and writes into store
func NewRunner(client trigger.Client, store *Store, env string) *Runner {
	return &Runner{
		client: client,
		store:  store,
		env:    env,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock used for file names
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// WithFoundHook registers fn to be called with the latest run summary
// before its full record is retrieved
func (r *Runner) WithFoundHook(fn func(trigger.RunSummary)) *Runner {
	r.found = fn
	return r
}

// Run fetches the most recent run, renders it and writes the snapshot.
// Every failure is returned as *Error naming the stage.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := logger.WithField("environment", r.env)

	summaries, err := r.client.ListRuns(ctx, 1)
	if err != nil {
		return nil, stageErr(StageList, err)
	}
	if len(summaries) == 0 {
		log.Info("No runs found.")
		return &Result{}, nil
	}

	latest := summaries[0]
	log = log.WithField("run_id", latest.ID)
	log.Infof("Found run: %s (%s)", latest.ID, latest.Status)
	if r.found != nil {
		r.found(latest)
	}

	run, err := r.client.RetrieveRun(ctx, latest.ID)
	if err != nil {
		return nil, runErr(StageRetrieve, latest.ID, err)
	}

	content, err := RenderReport(r.env, run)
	if err != nil {
		return nil, runErr(StageRender, latest.ID, err)
	}

	name, err := FileName(r.env, r.now(), run.ID)
	if err != nil {
		return nil, runErr(StageWrite, latest.ID, err)
	}
	path, err := r.store.Write(name, content)
	if err != nil {
		return nil, runErr(StageWrite, latest.ID, err)
	}
	log.Infof("Snapshot saved to: %s", path)

	latestPath, err := r.store.UpdateLatest(path)
	if err != nil {
		return nil, runErr(StageLatest, latest.ID, err)
	}
	log.Infof("Updated latest snapshot: %s", latestPath)

	return &Result{
		Run:        &latest,
		Task:       run.TaskIdentifier,
		Path:       path,
		LatestPath: latestPath,
		Bytes:      len(content),
	}, nil
}
