// Package jobs runs the control panel's subprocesses. At most one job per action is in
// flight; its merged stdout and stderr are buffered for polling.
package jobs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meur/umaviewer/internal/models"
)

var ErrAlreadyRunning = errors.New("already running")

// Recorder keeps a history of runs. storage.Store implements it.
type Recorder interface {
	CreateRun(ctx context.Context, run *models.Run) error
	FinishRun(ctx context.Context, id string, status models.JobStatus, exitCode int, output string, finishedAt time.Time) error
}

type job struct {
	run    models.Run
	unread strings.Builder
	all    strings.Builder
	done   bool
}

// Registry owns the in-flight jobs, keyed by action
type Registry struct {
	dir      string
	logger   *zap.Logger
	recorder Recorder

	mu   sync.Mutex
	jobs map[string]*job
}

// NewRegistry creates a Registry whose processes run in dir. recorder may be nil.
func NewRegistry(dir string, logger *zap.Logger, recorder Recorder) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		dir:      dir,
		logger:   logger,
		recorder: recorder,
		jobs:     make(map[string]*job),
	}
}

// Launch starts name with args for action and returns the run id. A second launch
// while the first is still running is rejected with ErrAlreadyRunning.
func (r *Registry) Launch(action, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j, ok := r.jobs[action]; ok && !j.done {
		return "", fmt.Errorf("%s: %w", action, ErrAlreadyRunning)
	}

	pr, pw := io.Pipe()
	cmd := exec.Command(name, args...)
	cmd.Dir = r.dir
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return "", fmt.Errorf("failed to start %s: %w", action, err)
	}

	j := &job{run: models.Run{
		ID:        uuid.New().String(),
		Action:    action,
		Command:   strings.Join(append([]string{name}, args...), " "),
		Status:    models.StatusRunning,
		StartedAt: time.Now().UTC(),
	}}
	r.jobs[action] = j
	r.logger.Info("job started",
		zap.String("action", action),
		zap.String("run_id", j.run.ID),
		zap.Int("pid", cmd.Process.Pid))

	if r.recorder != nil {
		run := j.run
		if err := r.recorder.CreateRun(context.Background(), &run); err != nil {
			r.logger.Warn("could not record run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	go func() {
		readerDone := make(chan struct{})
		go func() {
			defer close(readerDone)
			r.collect(j, pr)
		}()
		err := cmd.Wait()
		pw.Close()
		<-readerDone
		r.finish(j, err)
	}()

	return j.run.ID, nil
}

func (r *Registry) collect(j *job, out io.Reader) {
	br := bufio.NewReader(out)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			r.mu.Lock()
			j.unread.WriteString(line)
			j.all.WriteString(line)
			r.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (r *Registry) finish(j *job, waitErr error) {
	exitCode := 0
	if waitErr != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}
	status := models.StatusCompleted
	if exitCode != 0 {
		status = models.StatusError
	}

	finished := time.Now().UTC()

	r.mu.Lock()
	output := j.all.String()
	r.mu.Unlock()

	r.logger.Info("job finished",
		zap.String("action", j.run.Action),
		zap.String("run_id", j.run.ID),
		zap.Int("exit_code", exitCode))

	// History is written before pollers can observe the final status.
	if r.recorder != nil {
		if err := r.recorder.FinishRun(context.Background(), j.run.ID, status, exitCode, output, finished); err != nil {
			r.logger.Warn("could not record run result", zap.String("run_id", j.run.ID), zap.Error(err))
		}
	}

	r.mu.Lock()
	j.done = true
	j.run.Status = status
	j.run.ExitCode = exitCode
	j.run.FinishedAt = &finished
	r.mu.Unlock()
}

// Poll drains the output produced since the last poll. Once the process has exited and
// all output was read, the final status is returned and the job is removed.
func (r *Registry) Poll(action string) (string, models.JobStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[action]
	if !ok {
		return "", models.StatusIdle
	}
	out := j.unread.String()
	j.unread.Reset()
	if !j.done {
		return out, models.StatusRunning
	}
	delete(r.jobs, action)
	return out, j.run.Status
}

// Output returns everything the action's current job has printed so far and marks it
// read, so that a client attaching mid-run continues with Poll without duplicates.
func (r *Registry) Output(action string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[action]; ok {
		j.unread.Reset()
		return j.all.String()
	}
	return ""
}

// Running reports whether a job for action is in flight
func (r *Registry) Running(action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[action]
	return ok && !j.done
}
