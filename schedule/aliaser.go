package schedule

import (
	"cmp"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/memutils/metadata"
	"github.com/vkngwrapper/framegraph/resource"
	"golang.org/x/exp/slices"
)

// AliaserCreateInfo configures a MemoryAliaser
type AliaserCreateInfo struct {
	Group resource.HeapAliasingGroup
	// Alignment is the alignment of every placement. 0 uses resource.PlacementAlignment.
	Alignment uint64
	Strategy  metadata.AllocationStrategy
	// DisableAliasing places every resource in its own bytes
	DisableAliasing bool
}

// MemoryAliaser places the resources of one heap aliasing group in a single heap, reusing the
// bytes of resources whose last pass is before another resource's first pass
type MemoryAliaser struct {
	logger    *slog.Logger
	group     resource.HeapAliasingGroup
	alignment uint64
	strategy  metadata.AllocationStrategy

	block   *metadata.IntervalBlockMetadata
	records []*Record
	aliased bool
}

func NewMemoryAliaser(logger *slog.Logger, createInfo AliaserCreateInfo) (*MemoryAliaser, error) {
	alignment := createInfo.Alignment
	if alignment == 0 {
		alignment = resource.PlacementAlignment
	}

	err := memutils.CheckPow2(alignment, "createInfo.Alignment")
	if err != nil {
		return nil, err
	}

	return &MemoryAliaser{
		logger:    logger,
		group:     createInfo.Group,
		alignment: alignment,
		strategy:  createInfo.Strategy,
		block:     metadata.NewIntervalBlockMetadata(createInfo.DisableAliasing),
	}, nil
}

func (a *MemoryAliaser) Group() resource.HeapAliasingGroup {
	return a.group
}

// Metadata exposes the placements made by Alias for statistics and diagnostics
func (a *MemoryAliaser) Metadata() metadata.BlockMetadata {
	return a.block
}

func (a *MemoryAliaser) AddRecord(record *Record) error {
	if a.aliased {
		return errors.AssertionFailedf("resource %q cannot be added to the %s aliaser after it has aliased", record.Name(), a.group)
	}

	if record.Phase() != PhaseFinalized {
		return errors.AssertionFailedf("resource %q must be finalized before it is aliased, but it is in phase %s", record.Name(), record.Phase())
	}

	if record.Group() != a.group {
		return errors.AssertionFailedf("resource %q belongs to heap aliasing group %s, not %s", record.Name(), record.Group(), a.group)
	}

	a.records = append(a.records, record)
	return nil
}

func (a *MemoryAliaser) IsEmpty() bool {
	return len(a.records) == 0
}

// Alias places every added record, writes each record's AliasingInfo, and returns the size in
// bytes of the heap the group needs. It may only be called once.
func (a *MemoryAliaser) Alias() (uint64, error) {
	if a.aliased {
		return 0, errors.AssertionFailedf("the %s aliaser has already aliased its resources", a.group)
	}
	a.aliased = true

	slices.SortFunc(a.records, func(left, right *Record) int {
		if c := cmp.Compare(left.FirstPass(), right.FirstPass()); c != 0 {
			return c
		}
		return cmp.Compare(left.ID(), right.ID())
	})

	for _, record := range a.records {
		start := int(record.FirstPass())
		end := int(record.LastPass())

		a.block.Expire(start)

		alignment := max(a.alignment, record.Alignment())
		request, err := a.block.CreateAllocationRequest(record.SizeInBytes(), alignment, a.strategy)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to place resource %q", record.Name())
		}

		_, err = a.block.Alloc(request, start, end, record)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to place resource %q", record.Name())
		}

		err = record.SetAliasingInfo(AliasingInfo{
			HeapOffset:           request.Offset,
			NeedsAliasingBarrier: request.Aliased,
		})
		if err != nil {
			return 0, err
		}

		a.logger.Debug("placed resource",
			slog.String("group", a.group.String()),
			slog.String("resource", record.Name()),
			slog.Int("firstPass", start),
			slog.Int("lastPass", end),
			slog.Uint64("offset", request.Offset),
			slog.Uint64("size", request.Size),
			slog.Bool("aliased", request.Aliased),
		)
	}

	memutils.DebugValidate(a.block)

	return a.block.Size(), nil
}
