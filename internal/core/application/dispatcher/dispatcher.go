// Package dispatcher routes named function calls from the voice agent to the
// application use cases and shapes their outcome into the flat result maps
// the agent reads back.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

const callSIDKey = "call_sid"

var (
	ErrOperationNameIsRequired = errs.NewValueIsRequiredError("operation.name")
	ErrHandlerIsRequired       = errs.NewValueIsRequiredError("operation.handler")
)

// Result is what a function call returns to the agent. It always carries "ok".
type Result map[string]any

// OK reports the "ok" flag.
func (r Result) OK() bool {
	ok, _ := r["ok"].(bool)
	return ok
}

func failure(msg string) Result {
	return Result{"ok": false, "error": msg}
}

// Args is a decoded argument object.
type Args map[string]any

// HandlerFunc runs one operation. sessionID is the caller's call SID and is
// empty for operations that are not session scoped.
type HandlerFunc func(ctx context.Context, sessionID string, args Args) (Result, error)

// Operation is one entry of the function registry.
type Operation struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the argument object.
	Parameters *openapi3.Schema
	// Aliases renames an argument key to its target when the target is absent.
	Aliases       map[string]string
	SessionScoped bool
	Handler       HandlerFunc
}

// Definition is the agent-facing description of an operation.
type Definition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  *openapi3.Schema `json:"parameters"`
}

// Dispatcher resolves names against a registry fixed at construction.
type Dispatcher struct {
	ops    map[string]Operation
	names  []string
	calls  ports.CallDirectory
	events ports.EventPublisher
	tracer trace.Tracer
	logger *slog.Logger
}

// New builds the registry. Names must be unique and every operation needs a
// handler; a nil Parameters schema accepts any object.
func New(
	calls ports.CallDirectory,
	events ports.EventPublisher,
	logger *slog.Logger,
	ops ...Operation,
) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		ops:    make(map[string]Operation, len(ops)),
		calls:  calls,
		events: events,
		tracer: otel.Tracer("github.com/Shmhzr/ai-voice/dispatcher"),
		logger: logger.With("component", "dispatcher"),
	}

	for _, op := range ops {
		if op.Name == "" {
			return nil, ErrOperationNameIsRequired
		}
		if op.Handler == nil {
			return nil, fmt.Errorf("%w: %s", ErrHandlerIsRequired, op.Name)
		}
		if _, dup := d.ops[op.Name]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("operation.name", fmt.Errorf("duplicate operation %q", op.Name))
		}
		if op.Parameters == nil {
			op.Parameters = openapi3.NewObjectSchema()
		}
		d.ops[op.Name] = op
		d.names = append(d.names, op.Name)
	}

	return d, nil
}

// Definitions lists the registered operations in registration order.
func (d *Dispatcher) Definitions() []Definition {
	defs := make([]Definition, 0, len(d.names))
	for _, name := range d.names {
		op := d.ops[name]
		defs = append(defs, Definition{Name: op.Name, Description: op.Description, Parameters: op.Parameters})
	}
	return defs
}

// Dispatch runs the named operation. args may be a decoded object, a JSON
// document as string, []byte or json.RawMessage, or nil. connectionID is used
// to find the call when args carry no call_sid.
//
// Dispatch never returns an error: every failure becomes a Result with ok
// false and an error message.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args any, connectionID string) (result Result) {
	ctx, span := d.tracer.Start(ctx, "dispatcher.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("function.name", name))

	defer func() {
		span.SetAttributes(attribute.Bool("function.ok", result.OK()))
		if !result.OK() {
			msg, _ := result["error"].(string)
			span.SetStatus(codes.Error, msg)
		}
	}()

	op, ok := d.ops[name]
	if !ok {
		return failure("Unknown function: " + name)
	}

	decoded, err := decodeArgs(args)
	if err != nil {
		d.publishError(name, err.Error(), "")
		return failure(err.Error())
	}

	callSID := d.resolveCallSID(decoded, connectionID)
	span.SetAttributes(attribute.String("function.session", callSID))

	dropNulls(decoded)
	applyAliases(decoded, op.Aliases)
	coerceLists(decoded, op.Parameters)
	coerceNumbers(decoded, op.Parameters)

	if err := validateArgs(op.Parameters, decoded); err != nil {
		return failure("Invalid arguments: " + err.Error())
	}

	sessionID := ""
	if op.SessionScoped {
		sessionID = callSID
	}

	return d.invoke(ctx, op, sessionID, decoded)
}

func (d *Dispatcher) invoke(ctx context.Context, op Operation, sessionID string, args Args) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("function panicked", "name", op.Name, "panic", r)
			result = d.raised(op.Name, fmt.Errorf("%v", r), sessionID)
		}
	}()

	res, err := op.Handler(ctx, sessionID, args)
	if err != nil {
		return d.fromError(op.Name, err, sessionID)
	}
	if res == nil {
		res = Result{}
	}
	if _, set := res["ok"]; !set {
		res["ok"] = true
	}
	return res
}

// fromError maps handler errors onto results. Rejections and input
// validation errors are answers for the caller; anything else is a fault and
// is published.
func (d *Dispatcher) fromError(name string, err error, sessionID string) Result {
	if rej, ok := errs.AsRejection(err); ok {
		res := failure(rej.Reason)
		for k, v := range rej.Fields {
			if k != "ok" && k != "error" {
				res[k] = v
			}
		}
		return res
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return failure(err.Error())
	}

	return d.raised(name, err, sessionID)
}

func (d *Dispatcher) raised(name string, err error, sessionID string) Result {
	d.logger.Warn("function failed", "name", name, "call_sid", sessionID, "error", err)
	d.publishError(name, err.Error(), sessionID)
	return failure(fmt.Sprintf("Function %s raised: %v", name, err))
}

func (d *Dispatcher) publishError(name, msg, callSID string) {
	if d.events == nil {
		return
	}
	payload := map[string]any{"name": name, "error": msg}
	if callSID != "" {
		payload[callSIDKey] = callSID
	}
	d.events.Publish(ports.EventFunctionError, payload)
}

// resolveCallSID pops call_sid from args. An explicit non-blank value wins
// over the connection binding.
func (d *Dispatcher) resolveCallSID(args Args, connectionID string) string {
	raw, present := args[callSIDKey]
	delete(args, callSIDKey)

	if present {
		if sid, ok := raw.(string); ok && sid != "" {
			return sid
		}
	}
	if connectionID != "" && d.calls != nil {
		if sid, ok := d.calls.Lookup(connectionID); ok {
			return sid
		}
	}
	return ""
}
