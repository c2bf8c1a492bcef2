package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/harrison/bzharness/internal/ansi"
	"github.com/harrison/bzharness/internal/models"
)

// killGrace bounds how long Wait keeps reading output pipes once a child was
// killed or has exited, in case an orphaned grandchild still holds them open.
const killGrace = time.Second

// Logger is the subset of logging the pool needs.
type Logger interface {
	LogDebug(message string)
}

// process is a launched command whose result has not been delivered yet.
type process struct {
	command models.Command
	cmd     *exec.Cmd
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	started time.Time
}

// Pool runs a fixed list of commands with bounded concurrency and delivers
// their results strictly in submission order.
//
// The pool keeps a window of at most Concurrency started processes, ordered
// by launch. Next waits on the head of the window, removes it and launches
// the next pending command. A process that finishes early still waits for
// every process launched before it to be delivered.
//
// A Pool is driven by a single goroutine; it is not safe for concurrent use.
type Pool struct {
	ctx         context.Context
	commands    []models.Command
	concurrency int
	launched    int
	delivered   int
	window      []*process
	maxLive     int
	logger      Logger
	err         error // Sticky launch failure, reported by the following Next
}

// NewPool creates a pool for commands. A concurrency of zero or less means
// runtime.NumCPU(); the value is clamped to [1, len(commands)].
// Cancelling ctx kills the live children and makes Next fail with ErrInterrupted.
func NewPool(ctx context.Context, commands []models.Command, concurrency int) *Pool {
	return &Pool{
		ctx:         ctx,
		commands:    commands,
		concurrency: ClampConcurrency(concurrency, len(commands)),
	}
}

// ClampConcurrency resolves a requested concurrency for n commands.
func ClampConcurrency(requested, n int) int {
	c := requested
	if c <= 0 {
		c = runtime.NumCPU()
	}
	if c > n {
		c = n
	}
	if c < 1 {
		c = 1
	}
	return c
}

// SetLogger attaches a debug logger that is told about every launch.
func (p *Pool) SetLogger(logger Logger) {
	p.logger = logger
}

// Len returns the number of submitted commands.
func (p *Pool) Len() int {
	return len(p.commands)
}

// Concurrency returns the effective window size.
func (p *Pool) Concurrency() int {
	return p.concurrency
}

// MaxLive returns the largest number of processes that were ever in the window at once.
func (p *Pool) MaxLive() int {
	return p.maxLive
}

// Next blocks until the oldest undelivered command terminates and returns its result.
// Called Len() times it yields results in exactly the order commands were submitted.
// A non-zero exit status is not an error; failing to start a process is.
func (p *Pool) Next() (models.ProcessResult, error) {
	if p.delivered >= len(p.commands) {
		return models.ProcessResult{}, ErrExhausted
	}

	if p.err == nil {
		if err := p.fill(); err != nil {
			p.err = err
		}
	}
	// After a launch failure no further commands are started, but every
	// process already in the window is still delivered before the error.
	if len(p.window) == 0 {
		return models.ProcessResult{}, p.err
	}

	head := p.window[0]
	p.window[0] = nil
	p.window = p.window[1:]

	result, err := p.reap(head)
	if err != nil {
		return models.ProcessResult{}, err
	}
	p.delivered++

	// Keep the window full while the caller is busy with this result.
	if p.err == nil {
		if err := p.fill(); err != nil {
			p.err = err
		}
	}

	return result, nil
}

// fill launches pending commands until the window holds concurrency processes.
func (p *Pool) fill() error {
	for len(p.window) < p.concurrency && p.launched < len(p.commands) {
		if err := p.ctx.Err(); err != nil {
			return &ProcessError{Command: p.commands[p.launched], Kind: ErrInterrupted, Err: err}
		}

		proc, err := p.launch(p.commands[p.launched])
		if err != nil {
			return err
		}
		p.launched++
		p.window = append(p.window, proc)
		if len(p.window) > p.maxLive {
			p.maxLive = len(p.window)
		}
	}
	return nil
}

func (p *Pool) launch(command models.Command) (*process, error) {
	if len(command.Args) == 0 {
		return nil, &ProcessError{Command: command, Kind: ErrSpawn, Err: errors.New("empty command")}
	}

	proc := &process{command: command}
	proc.cmd = exec.CommandContext(p.ctx, command.Binary(), command.Arguments()...)
	proc.cmd.Stdout = &proc.stdout
	proc.cmd.Stderr = &proc.stderr
	proc.cmd.WaitDelay = killGrace

	if err := proc.cmd.Start(); err != nil {
		return nil, &ProcessError{Command: command, Kind: ErrSpawn, Err: err}
	}
	proc.started = time.Now()

	if p.logger != nil {
		p.logger.LogDebug(fmt.Sprintf("launched [%d/%d] pid %d: %s",
			p.launched+1, len(p.commands), proc.cmd.Process.Pid, command.String()))
	}
	return proc, nil
}

// reap waits for proc to terminate and converts its captured output into a result.
func (p *Pool) reap(proc *process) (models.ProcessResult, error) {
	err := proc.cmd.Wait()
	duration := time.Since(proc.started)

	if ctxErr := p.ctx.Err(); ctxErr != nil {
		return models.ProcessResult{}, &ProcessError{Command: proc.command, Kind: ErrInterrupted, Err: ctxErr}
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrWaitDelay) && proc.cmd.ProcessState != nil:
			exitCode = proc.cmd.ProcessState.ExitCode()
		default:
			return models.ProcessResult{}, &ProcessError{Command: proc.command, Kind: ErrSpawn, Err: err}
		}
	}

	return models.ProcessResult{
		Command:  proc.command,
		Stdout:   ansi.Strip(proc.stdout.String()),
		Stderr:   ansi.Strip(proc.stderr.String()),
		ExitCode: exitCode,
		Duration: duration,
	}, nil
}

// Close kills and reaps every process still in the window.
// It is only needed when a run is abandoned before all results were taken.
func (p *Pool) Close() {
	for _, proc := range p.window {
		if proc.cmd.Process != nil {
			_ = proc.cmd.Process.Kill()
		}
		_ = proc.cmd.Wait()
	}
	p.window = nil
	p.launched = len(p.commands)
	p.delivered = len(p.commands)
}

// PairedPool runs command pairs and delivers their results as pairs.
// The primary and rerun of a pair are submitted adjacently, so the pair is
// the unit of ordering and the two results can never be separated.
type PairedPool struct {
	pool  *Pool
	pairs int
}

// NewPairedPool creates a pool for pairs; concurrency counts processes, not pairs.
func NewPairedPool(ctx context.Context, pairs []models.CommandPair, concurrency int) *PairedPool {
	return &PairedPool{
		pool:  NewPool(ctx, FlattenPairs(pairs), concurrency),
		pairs: len(pairs),
	}
}

// Pool returns the underlying process pool.
func (pp *PairedPool) Pool() *Pool {
	return pp.pool
}

// Len returns the number of submitted pairs.
func (pp *PairedPool) Len() int {
	return pp.pairs
}

// NextPair returns the results of the oldest undelivered pair.
func (pp *PairedPool) NextPair() (models.ResultPair, error) {
	primary, err := pp.pool.Next()
	if err != nil {
		return models.ResultPair{}, err
	}
	rerun, err := pp.pool.Next()
	if err != nil {
		return models.ResultPair{}, err
	}
	return models.ResultPair{Primary: primary, Rerun: rerun}, nil
}

// Close kills any processes still running.
func (pp *PairedPool) Close() {
	pp.pool.Close()
}
