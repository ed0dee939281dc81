package ddev

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultLogService is the DDEV service logs are read from.
	DefaultLogService = "web"
	// DefaultLogTail is the number of trailing lines fetched per request.
	DefaultLogTail = 50
)

// LogsOptions selects which logs to retrieve. Tail is ignored while
// Follow is set.
type LogsOptions struct {
	Service    string
	Follow     bool
	Tail       int
	Timestamps bool
}

// LogsArgs translates options into the ddev command line.
func LogsArgs(opts LogsOptions) []string {
	service := opts.Service
	if service == "" {
		service = DefaultLogService
	}
	args := []string{"logs", "-s", service}

	if opts.Follow {
		args = append(args, "-f")
	} else {
		tail := opts.Tail
		if tail <= 0 {
			tail = DefaultLogTail
		}
		args = append(args, fmt.Sprintf("--tail=%d", tail))
	}

	if opts.Timestamps {
		args = append(args, "-t")
	}
	return args
}

// Logs shells out to `ddev logs` and returns captured output verbatim.
// A non-zero exit becomes an error carrying the combined output, or a
// generic message when the process produced none.
func Logs(ctx context.Context, runner RunnerFunc, opts LogsOptions) (string, error) {
	out, err := runner(ctx, "ddev", LogsArgs(opts)...)
	if err != nil {
		text := strings.TrimSpace(string(out))
		if text == "" {
			return "", errors.New("ddev logs failed with no output")
		}
		return "", fmt.Errorf("ddev logs: %s", text)
	}
	return string(out), nil
}
