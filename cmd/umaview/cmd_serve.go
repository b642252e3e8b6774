package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/umaviewer/internal/api"
	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/storage"
)

var (
	servePort int
	noBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local control panel",
	Long: `Serves the control panel on localhost. The panel runs "umaview extract --yes" and
"umaview enrich" as subprocesses, streams their output and keeps a run history.
Every other path is served from the working directory, including viewer.html.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: from config, 8080)")
	serveCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the browser")
}

// childCommands passes the resolved directory and config file on to subprocesses
func childCommands() map[string][]string {
	cmds := api.DefaultCommands()
	for action, args := range cmds {
		args = append(args, "--dir", cfg.Dir)
		if configPath != "" {
			args = append(args, "--config", configPath)
		}
		cmds[action] = args
	}
	return cmds
}

func runServe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate umaview executable: %w", err)
	}

	store, err := storage.New(cfg.RunDBPath())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	srv := api.New(api.Options{
		Dir:        cfg.Dir,
		Executable: exe,
		Commands:   childCommands(),
		Store:      store,
		Logger:     logger,
	})

	if _, err := os.Stat(cfg.Path(config.ViewerFile)); err != nil {
		fmt.Fprintf(out, "[!] Warning: %s not found in %s\n", config.ViewerFile, cfg.Dir)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	url := fmt.Sprintf("http://localhost:%d", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	fmt.Fprintf(out, "[OK] Server running at %s\n", url)
	fmt.Fprintf(out, "     Run history: %s\n", cfg.RunDBPath())
	fmt.Fprintln(out, "(Press Ctrl+C to stop)")
	logger.Info("control panel started", zap.String("addr", httpServer.Addr), zap.String("dir", cfg.Dir))

	if cfg.OpenBrowser && !noBrowser {
		if err := openBrowser(url); err != nil {
			logger.Warn("could not open browser", zap.Error(err))
		}
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-cmd.Context().Done():
		fmt.Fprintln(out, "\nShutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
