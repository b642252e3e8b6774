// Package extractor finds the external UmaExtractor tool and runs it so that it writes
// data.json into the output directory.
package extractor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/meur/umaviewer/internal/config"
)

var (
	ErrNotFound   = errors.New("UmaExtractor not found")
	ErrCancelled  = errors.New("extraction cancelled")
	ErrNoOutput   = errors.New("data.json was not created")
	ErrNoPython   = errors.New("no python interpreter on PATH")
	ErrUnknownExt = errors.New("unknown extractor type")
)

const toolDir = "UmaExtractor"

// Candidate files inside an install directory, in order of preference. The
// executable needs no dependencies, the script needs frida and msgpack.
var candidates = []string{
	filepath.Join("py", "dist", "UmaExtractor.exe"),
	"UmaExtractor.exe",
	filepath.Join("py", "extract_umas.py"),
}

// DownloadURL is where users get the tool
const DownloadURL = "https://github.com/FabulousCupcake/UmaExtractor"

// SearchPaths lists install directories to look in. override (UMAEXTRACTOR_PATH) comes
// first, then a sibling of dir, then the usual user and drive locations.
func SearchPaths(dir, home, override string) []string {
	var paths []string
	if override != "" {
		paths = append(paths, override)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	paths = append(paths, filepath.Join(filepath.Dir(dir), toolDir))
	if home != "" {
		for _, sub := range []string{"Downloads", "Desktop", "Documents", "Dev"} {
			paths = append(paths, filepath.Join(home, sub, toolDir))
		}
	}
	return append(paths,
		"C:/Program Files/"+toolDir,
		"C:/Program Files (x86)/"+toolDir,
		"C:/"+toolDir,
		"D:/"+toolDir,
	)
}

// Locate returns the first extractor found under paths
func Locate(paths []string) (string, error) {
	for _, base := range paths {
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		for _, c := range candidates {
			p := filepath.Join(base, c)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w in %d locations", ErrNotFound, len(paths))
}

// Confirm asks before running. An empty answer, "y" or "yes" proceeds.
func Confirm(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "\nReady to extract? [Y/n]: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return ErrCancelled
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return nil
	}
	return ErrCancelled
}

// Result describes a successful extraction
type Result struct {
	Path string
	Size int64
}

// SizeMB is the output size in MiB
func (r Result) SizeMB() float64 {
	return float64(r.Size) / (1024 * 1024)
}

// Command builds the process for tool with dir as its working directory, so that
// data.json lands there.
func Command(ctx context.Context, tool, dir string) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch strings.ToLower(filepath.Ext(tool)) {
	case ".exe":
		cmd = exec.CommandContext(ctx, tool)
	case ".py":
		python, err := pythonPath()
		if err != nil {
			return nil, err
		}
		cmd = exec.CommandContext(ctx, python, tool)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExt, tool)
	}
	cmd.Dir = dir
	return cmd, nil
}

func pythonPath() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrNoPython
}

// Run executes the extractor with its output streamed to stdout and stderr. The tool's
// exit code is not trusted; success means data.json exists afterwards.
func Run(ctx context.Context, tool, dir string, stdout, stderr io.Writer) (Result, error) {
	cmd, err := Command(ctx, tool, dir)
	if err != nil {
		return Result{}, err
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return Result{}, fmt.Errorf("failed to run extractor: %w", runErr)
	}

	out := filepath.Join(dir, config.DataFile)
	info, err := os.Stat(out)
	if err != nil {
		if runErr != nil {
			return Result{}, fmt.Errorf("%w (%v)", ErrNoOutput, runErr)
		}
		return Result{}, ErrNoOutput
	}
	return Result{Path: out, Size: info.Size()}, nil
}
