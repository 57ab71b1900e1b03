package harness

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// ServerConfig configures the server subprocess for one test session.
type ServerConfig struct {
	Command      []string      // server binary and arguments
	Dir          string        // working directory for the subprocess
	DBPath       string        // database file removed before launch, "" to skip
	BaseURL      string        // root URL probed for readiness
	ReadyTimeout time.Duration // how long to wait for readiness (default 10s)
	StopTimeout  time.Duration // graceful-shutdown wait before SIGKILL (default 5s)
	Stdout       io.Writer     // subprocess stdout, nil to discard
	Stderr       io.Writer     // subprocess stderr, nil to discard
}

// ServerProcess is a running server subprocess. It is created by StartServer
// and must be released with Stop, which is safe to call any number of times.
type ServerProcess struct {
	cmd         *exec.Cmd
	baseURL     string
	stopTimeout time.Duration
	done        chan struct{}
	stopOnce    sync.Once
}

// StartServer deletes any stale database file, launches the server with the
// test runner's environment inherited verbatim, and blocks until it answers
// HTTP requests. If the server never becomes ready the subprocess is killed
// and an error is returned; nothing should run against a dead server.
func StartServer(cfg ServerConfig) (*ServerProcess, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("server command is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = 10 * time.Second
	}
	if cfg.StopTimeout == 0 {
		cfg.StopTimeout = 5 * time.Second
	}

	// Every session starts from identical seed data.
	if cfg.DBPath != "" {
		if err := os.Remove(cfg.DBPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale database %s: %w", cfg.DBPath, err)
		}
	}

	cmd := exec.Command(cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server %q: %w", cfg.Command[0], err)
	}

	p := &ServerProcess{
		cmd:         cmd,
		baseURL:     cfg.BaseURL,
		stopTimeout: cfg.StopTimeout,
		done:        make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()

	if err := WaitReady(cfg.BaseURL+"/", cfg.ReadyTimeout); err != nil {
		p.Stop()
		return nil, fmt.Errorf("server startup failed: %w", err)
	}

	return p, nil
}

// BaseURL returns the server's root URL.
func (p *ServerProcess) BaseURL() string {
	return p.baseURL
}

// Stop terminates the subprocess: SIGTERM first, then SIGKILL if it has not
// exited within the stop timeout. Stop is idempotent and absorbs all
// shutdown errors, including the process having already exited.
func (p *ServerProcess) Stop() {
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}

		_ = p.cmd.Process.Signal(syscall.SIGTERM)

		select {
		case <-p.done:
		case <-time.After(p.stopTimeout):
			_ = p.cmd.Process.Kill()
			<-p.done
		}
	})
}
