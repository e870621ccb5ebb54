// Package runner executes external commands with streamed logging.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/jimvekemans/dbt-academy/internal/logging"
)

// Run executes tool with args, streaming child stdout line-by-line into the
// logger at INFO level. Child stderr is collected and, after the process
// exits, emitted as a single ERROR entry and returned as an error.
//
// The child's exit code is deliberately not inspected: a failing child is
// only visible through its stderr text or the absence of expected output.
//
// When args already starts with the tool name it is not prefixed again, so
// both "dbt run" and "run" invoke the same command. env entries are
// appended to the current process environment; pass nil to inherit it
// unchanged.
func Run(ctx context.Context, logger *slog.Logger, tool string, args []string, env []string) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if len(args) > 0 && args[0] == tool {
		args = args[1:]
	}

	fmt.Println(logging.Box("Subprocess", fmt.Sprintf("Running: '%s %s'", tool, strings.Join(args, " "))))

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Env = append(os.Environ(), env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", tool, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			logger.Info(line)
		}
	}
	// A scan error (an oversize line, for one) truncates streaming. Close
	// the pipe so a child blocked on writing the remainder can exit.
	if err := scanner.Err(); err != nil {
		logger.Warn(fmt.Sprintf("stopped streaming %s output: %v", tool, err))
		_ = stdout.Close()
	}

	// Exit status is intentionally ignored; only stderr is reported.
	_ = cmd.Wait()

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		logger.Error(msg)
		return fmt.Errorf("%s reported errors:\n%s", tool, msg)
	}
	return nil
}
