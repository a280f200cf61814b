package economy

import (
	"context"

	"github.com/osse101/GiftMarket_Go/internal/logger"
)

// step is one remote call of an operation. Steps run in order.
type step struct {
	name string
	run  func(ctx context.Context) error

	// compensate undoes a successful run once a later critical step fails
	compensate func(ctx context.Context) error

	// abort ends the saga when this step fails
	abort bool

	// critical failures trigger the compensations of every step that already succeeded
	critical bool
}

// saga is a short multi-step operation with no atomic commit. The optimistic
// local part has already been applied when it runs.
type saga struct {
	operation string
	identity  int64
	steps     []step
}

// sagaOutcome lists what went wrong. compensations are returned, not run:
// the caller decides where they execute. err is the aborting step's error
// as returned by the step, and abortedAt names that step.
type sagaOutcome struct {
	failed        []string
	compensations []compensation
	abortedAt     string
	err           error
}

type compensation struct {
	step string
	fn   func(ctx context.Context) error
}

func newSaga(operation string, identity int64, steps ...step) *saga {
	return &saga{operation: operation, identity: identity, steps: steps}
}

func (sg *saga) execute(ctx context.Context) sagaOutcome {
	log := logger.FromContext(ctx)

	var out sagaOutcome
	var succeeded []step
	for _, st := range sg.steps {
		err := st.run(ctx)
		if err == nil {
			succeeded = append(succeeded, st)
			continue
		}

		log.Warn(LogMsgStepFailed, "operation", sg.operation, "identity", sg.identity, "step", st.name, "error", err)
		out.failed = append(out.failed, st.name)

		if st.critical {
			for i := len(succeeded) - 1; i >= 0; i-- {
				if succeeded[i].compensate != nil {
					out.compensations = append(out.compensations, compensation{step: succeeded[i].name, fn: succeeded[i].compensate})
				}
			}
			succeeded = nil
		}
		if st.abort {
			out.abortedAt = st.name
			out.err = err
			return out
		}
	}
	return out
}

// partial reports whether at least one step failed
func (o sagaOutcome) partial() bool {
	return len(o.failed) > 0
}
