package schedule

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/resource"
)

// StateOptimizer decides the state each resource is in during each pass that uses it
type StateOptimizer struct {
	logger          *slog.Logger
	mergeReadStates bool
	records         []*Record
}

// NewStateOptimizer creates an optimizer. When mergeReadStates is true, each run of consecutive
// read-only usages is assigned the union of its read states so that no transitions happen inside it.
func NewStateOptimizer(logger *slog.Logger, mergeReadStates bool) *StateOptimizer {
	return &StateOptimizer{
		logger:          logger,
		mergeReadStates: mergeReadStates,
	}
}

func (o *StateOptimizer) AddRecord(record *Record) error {
	if record.Phase() != PhaseFinalized {
		return errors.AssertionFailedf("resource %q must be finalized before it is optimized, but it is in phase %s", record.Name(), record.Phase())
	}

	o.records = append(o.records, record)
	return nil
}

// Optimize assigns OptimizedState and NeedsUAVBarrier for every usage of every added record. It
// only reads RequestedState, so running it more than once gives the same result.
func (o *StateOptimizer) Optimize() error {
	for _, record := range o.records {
		err := o.optimizeRecord(record)
		if err != nil {
			return err
		}
	}

	return nil
}

func (o *StateOptimizer) optimizeRecord(record *Record) error {
	usages := record.usages

	for index := range usages {
		usage := &usages[index]

		err := usage.RequestedState.Validate()
		if err != nil {
			return errors.NewAssertionErrorWithWrappedErrf(err, "resource %q has an invalid state in pass %d", record.Name(), usage.Pass)
		}

		usage.OptimizedState = usage.RequestedState
		usage.NeedsUAVBarrier = index > 0 &&
			usages[index-1].RequestedState == resource.ResourceStateUnorderedAccess &&
			usage.RequestedState == resource.ResourceStateUnorderedAccess

		if usage.NeedsUAVBarrier {
			o.logger.Debug("unordered access barrier required",
				slog.String("resource", record.Name()),
				slog.Int("pass", int(usage.Pass)),
			)
		}
	}

	if !o.mergeReadStates {
		return nil
	}

	for runStart := 0; runStart < len(usages); {
		if !usages[runStart].RequestedState.IsReadOnly() {
			runStart++
			continue
		}

		runEnd := runStart
		merged := resource.ResourceStateCommon
		for runEnd < len(usages) && usages[runEnd].RequestedState.IsReadOnly() {
			merged |= usages[runEnd].RequestedState
			runEnd++
		}

		for index := runStart; index < runEnd; index++ {
			usages[index].OptimizedState = merged
		}

		runStart = runEnd
	}

	return nil
}
