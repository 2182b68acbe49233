// Package tasks is a small task runner: named build steps, run in order.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
)

// ErrUnknownTask is returned by Run when a task name is not registered.
var ErrUnknownTask = errors.New("unknown task")

// Func is the body of a task.
type Func func(ctx context.Context) error

// Task is a named build step.
type Task struct {
	// Name identifies the task on the command line (e.g., "Jade2HTML")
	Name string

	// Description is shown by --list
	Description string

	// Run performs the task
	Run Func
}

// Registry holds tasks in registration order.
// Names are matched case-insensitively, as mage does for its targets.
type Registry struct {
	tasks []Task
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a task. A task registered under an existing name replaces it.
func (r *Registry) Register(t Task) {
	for i := range r.tasks {
		if strings.EqualFold(r.tasks[i].Name, t.Name) {
			r.tasks[i] = t
			return
		}
	}
	r.tasks = append(r.tasks, t)
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, bool) {
	for _, t := range r.tasks {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Task{}, false
}

// Tasks returns the registered tasks in registration order.
func (r *Registry) Tasks() []Task {
	return append([]Task(nil), r.tasks...)
}

// Run runs the named tasks one after another.
// All names are resolved before anything runs. The first failing task stops
// the run and its error is returned as is.
func (r *Registry) Run(ctx context.Context, names ...string) error {
	selected := make([]Task, 0, len(names))
	for _, name := range names {
		t, ok := r.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTask, name)
		}
		selected = append(selected, t)
	}

	for _, t := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		ctxLog := log.WithField("task", t.Name)
		ctxLog.Info("starting")
		start := time.Now()
		if err := t.Run(ctx); err != nil {
			ctxLog.WithError(err).Error("failed")
			return err
		}
		ctxLog.WithDuration(time.Since(start)).Info("finished")
	}
	return nil
}
