package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/meur/umaviewer/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestHelperProcess is not a real test. It stands in for the umaview subcommands.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("UMAVIEW_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	switch args[0] {
	case "print":
		fmt.Println("Loading data.json...")
		fmt.Fprintln(os.Stderr, "[!] warning on stderr")
		fmt.Println("[OK] Done")
		code, _ := strconv.Atoi(args[1])
		os.Exit(code)
	case "wait":
		// block until the test creates the release file
		fmt.Println("waiting")
		for {
			if _, err := os.Stat(args[1]); err == nil {
				fmt.Println("released")
				os.Exit(0)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	os.Exit(2)
}

func helperArgs(args ...string) []string {
	return append([]string{"-test.run=TestHelperProcess", "--"}, args...)
}

type fakeRecorder struct {
	mu       sync.Mutex
	created  []models.Run
	finished map[string]models.JobStatus
	outputs  map[string]string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{finished: make(map[string]models.JobStatus), outputs: make(map[string]string)}
}

func (f *fakeRecorder) CreateRun(_ context.Context, run *models.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *run)
	return nil
}

func (f *fakeRecorder) FinishRun(_ context.Context, id string, status models.JobStatus, _ int, output string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished[id] = status
	f.outputs[id] = output
	return nil
}

func (f *fakeRecorder) status(id string) (models.JobStatus, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.finished[id]
	return s, ok
}

// pollUntilDone collects output until the job leaves the registry
func pollUntilDone(t *testing.T, r *Registry, action string) (string, models.JobStatus) {
	t.Helper()
	var all string
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		out, status := r.Poll(action)
		all += out
		if status != models.StatusRunning {
			return all, status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", action)
	return "", ""
}

func TestPoll_Idle(t *testing.T) {
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)
	out, status := r.Poll("extract")
	assert.Empty(t, out)
	assert.Equal(t, models.StatusIdle, status)
}

func TestLaunch_Completed(t *testing.T) {
	t.Setenv("UMAVIEW_HELPER_PROCESS", "1")
	rec := newFakeRecorder()
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), rec)

	id, err := r.Launch("enrich", os.Args[0], helperArgs("print", "0")...)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	out, status := pollUntilDone(t, r, "enrich")
	assert.Equal(t, models.StatusCompleted, status)
	assert.Contains(t, out, "Loading data.json...\n")
	assert.Contains(t, out, "[!] warning on stderr\n")
	assert.Contains(t, out, "[OK] Done\n")

	// completion removed the job
	out, status = r.Poll("enrich")
	assert.Empty(t, out)
	assert.Equal(t, models.StatusIdle, status)

	require.Len(t, rec.created, 1)
	assert.Equal(t, id, rec.created[0].ID)
	assert.Equal(t, "enrich", rec.created[0].Action)
	assert.Equal(t, models.StatusRunning, rec.created[0].Status)
	got, ok := rec.status(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, got)
	assert.Contains(t, rec.outputs[id], "[OK] Done")
}

func TestLaunch_Error(t *testing.T) {
	t.Setenv("UMAVIEW_HELPER_PROCESS", "1")
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)

	_, err := r.Launch("extract", os.Args[0], helperArgs("print", "1")...)
	require.NoError(t, err)

	out, status := pollUntilDone(t, r, "extract")
	assert.Equal(t, models.StatusError, status)
	assert.Contains(t, out, "[OK] Done")
}

func TestLaunch_AlreadyRunning(t *testing.T) {
	t.Setenv("UMAVIEW_HELPER_PROCESS", "1")
	release := filepath.Join(t.TempDir(), "release")
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)

	_, err := r.Launch("extract", os.Args[0], helperArgs("wait", release)...)
	require.NoError(t, err)
	assert.True(t, r.Running("extract"))

	_, err = r.Launch("extract", os.Args[0], helperArgs("wait", release)...)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// other actions are independent
	_, err = r.Launch("enrich", os.Args[0], helperArgs("print", "0")...)
	require.NoError(t, err)
	_, status := pollUntilDone(t, r, "enrich")
	assert.Equal(t, models.StatusCompleted, status)

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual("waiting\n", r.Output("extract"))
	}, 10*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(release, nil, 0o644))
	out, status := pollUntilDone(t, r, "extract")
	assert.Equal(t, models.StatusCompleted, status)
	assert.Contains(t, out, "released\n")
	assert.False(t, r.Running("extract"))
}

func TestLaunch_PollDrainsUnread(t *testing.T) {
	t.Setenv("UMAVIEW_HELPER_PROCESS", "1")
	release := filepath.Join(t.TempDir(), "release")
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)

	_, err := r.Launch("enrich", os.Args[0], helperArgs("wait", release)...)
	require.NoError(t, err)

	var first string
	require.Eventually(t, func() bool {
		out, _ := r.Poll("enrich")
		first += out
		return first == "waiting\n"
	}, 10*time.Second, 10*time.Millisecond)

	out, status := r.Poll("enrich")
	assert.Empty(t, out)
	assert.Equal(t, models.StatusRunning, status)
	assert.Equal(t, "waiting\n", r.Output("enrich"), "all output is kept")

	require.NoError(t, os.WriteFile(release, nil, 0o644))
	out, _ = pollUntilDone(t, r, "enrich")
	assert.Equal(t, "released\n", out)
}

func TestOutput_MarksRead(t *testing.T) {
	t.Setenv("UMAVIEW_HELPER_PROCESS", "1")
	release := filepath.Join(t.TempDir(), "release")
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)

	_, err := r.Launch("extract", os.Args[0], helperArgs("wait", release)...)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return r.Output("extract") == "waiting\n"
	}, 10*time.Second, 10*time.Millisecond)

	out, status := r.Poll("extract")
	assert.Empty(t, out, "output already returned is not polled again")
	assert.Equal(t, models.StatusRunning, status)

	require.NoError(t, os.WriteFile(release, nil, 0o644))
	out, _ = pollUntilDone(t, r, "extract")
	assert.Equal(t, "released\n", out)
	assert.Empty(t, r.Output("extract"), "finished job is gone after the final poll")
}

func TestLaunch_StartFailure(t *testing.T) {
	r := NewRegistry(t.TempDir(), zaptest.NewLogger(t), nil)
	_, err := r.Launch("extract", filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.False(t, r.Running("extract"))

	_, status := r.Poll("extract")
	assert.Equal(t, models.StatusIdle, status)
}
