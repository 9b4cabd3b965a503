// Copyright 2025 YClip Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cor (Chain of Responsibility) provides the building blocks for
// composing the analysis pipeline as a sequence of commands. This file
// defines the core interfaces. By programming against interfaces the
// pipeline stays testable: any command can be exercised alone with a bare
// context, and chains can be nested inside other chains.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the constant keys used to manage the primary data
// flow within a BaseChain.
const (
	// CtxIn is the default key for the primary input of a command. The
	// BaseChain populates it with the output of the previous command.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command should place its primary
	// output. The BaseChain picks it up as the input for the next command.
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands for
// a single workflow execution. It carries data, errors, and the list of
// scratch files to remove when the workflow ends.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation and for
	// carrying OpenTelemetry span information.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair in the context. Returns the Context for
	// fluent chaining.
	Add(key string, value interface{}) Context

	// AddError records an error produced by a command, keyed by the command name.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the workflow.
	GetErrors() map[string]error

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair from the context.
	Remove(key string)

	// HasErrors reports whether any errors have been recorded.
	HasErrors() bool

	// AddTempFile tracks a scratch file created during the workflow so that
	// Close can remove it regardless of how the workflow exits.
	AddTempFile(file string)

	// GetTempFiles returns all tracked scratch file paths.
	GetTempFiles() []string

	// Close deletes all tracked scratch files. Defer it at the start of a
	// workflow so cleanup runs on every exit path.
	Close()
}

// Executable is any object with a core execution step.
type Executable interface {
	// Execute runs the object's business logic, reading inputs from and
	// writing outputs to the given Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work, the fundamental building
// block of a workflow.
type Command interface {
	Executable

	// GetName returns the command's name, used for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key for the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the context key for the command's primary output.
	GetOutputParam() string

	// IsExecutable checks whether the command can run with the current
	// context state. It is a precondition check before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for creating metrics.
	GetMeter() metric.Meter

	// GetSuccessCounter returns a metric counter for successful executions.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns a metric counter for failed executions.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// compose (Composite pattern).
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
