package schedule

import (
	"log/slog"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
)

// ResourceCreateInfo describes a resource created by a pass
type ResourceCreateInfo struct {
	Format resource.Format
	// Count is the number of identical physical resources behind the logical resource, such as
	// per-frame copies. 0 is treated as 1.
	Count uint32
	// ClearValue is used for render targets and depth/stencil textures
	ClearValue resource.ClearValue
}

// Scheduler collects resource declarations from every pass of a graph into scheduling records
type Scheduler struct {
	logger  *slog.Logger
	graph   *graph.Graph
	records *RecordSet
	sealed  bool
}

func NewScheduler(logger *slog.Logger, g *graph.Graph) *Scheduler {
	return &Scheduler{
		logger:  logger,
		graph:   g,
		records: &RecordSet{},
	}
}

func (s *Scheduler) Graph() *graph.Graph {
	return s.graph
}

func (s *Scheduler) Records() *RecordSet {
	return s.records
}

// Seal prevents any further declarations. It is called once scheduling records are finalized.
func (s *Scheduler) Seal() {
	s.sealed = true
}

// Pass returns the declaration handle for a pass that was added to the graph
func (s *Scheduler) Pass(name string) (*PassScheduler, error) {
	id, ok := s.graph.Pass(name)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "pass %q was not added to the graph", name)
	}

	return &PassScheduler{scheduler: s, pass: id}, nil
}

// PassByID returns the declaration handle for a pass that was added to the graph
func (s *Scheduler) PassByID(id graph.PassID) (*PassScheduler, error) {
	if id < 0 || int(id) >= s.graph.PassCount() {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "pass %d was not added to the graph", id)
	}

	return &PassScheduler{scheduler: s, pass: id}, nil
}

// PassScheduler declares the resources a single pass creates, reads, and writes
type PassScheduler struct {
	scheduler *Scheduler
	pass      graph.PassID
}

func (p *PassScheduler) ID() graph.PassID {
	return p.pass
}

func (p *PassScheduler) Name() string {
	return p.scheduler.graph.PassName(p.pass)
}

func (p *PassScheduler) wrap(err error, resourceName string) error {
	return errors.Wrapf(err, "pass %q, resource %q", p.Name(), resourceName)
}

func (p *PassScheduler) checkOpen(resourceName string) error {
	if p.scheduler.sealed {
		return p.wrap(errors.Wrap(ErrInvalidDeclaration, "resources cannot be declared after scheduling has been finalized"), resourceName)
	}
	return nil
}

func (p *PassScheduler) addUsage(record *Record, name string, state resource.ResourceState) error {
	err := record.AddUsage(p.pass, state)
	if err != nil {
		return p.wrap(err, name)
	}

	p.scheduler.logger.Debug("declared resource usage",
		slog.String("pass", p.Name()),
		slog.String("resource", name),
		slog.String("state", state.String()),
	)
	return nil
}

// Create declares a new resource that the pass writes in the provided state. Creating a resource that
// already exists with the same format and count declares a write of the existing resource.
func (p *PassScheduler) Create(name string, info ResourceCreateInfo, state resource.ResourceState) error {
	err := p.checkOpen(name)
	if err != nil {
		return err
	}

	if name == "" {
		return p.wrap(errors.Wrap(ErrInvalidDeclaration, "resource name cannot be empty"), name)
	}

	if !state.IsSingleWrite() {
		return p.wrap(errors.Wrapf(ErrInvalidDeclaration, "a resource must be created in a single write state, but state was %s", state), name)
	}

	if info.Format.ResourceSizeInBytes() == 0 {
		return p.wrap(errors.Wrap(ErrInvalidDeclaration, "resource format is empty"), name)
	}

	count := info.Count
	if count == 0 {
		count = 1
	}
	if info.Format.ResourceSizeInBytes() > math.MaxUint64/uint64(count) {
		return p.wrap(errors.Wrapf(ErrInvalidDeclaration, "%d resources of %s are too large", count, info.Format), name)
	}

	id, added := p.scheduler.graph.InternResource(name)
	record, exists := p.scheduler.records.Get(id)
	if !added && exists {
		if record.Format() != info.Format || record.ResourceCount() != count {
			return p.wrap(errors.Wrapf(ErrInvalidDeclaration, "resource was already created as %s x%d", record.Format(), record.ResourceCount()), name)
		}

		return p.addUsage(record, name, state)
	}

	record = NewRecord(id, name, info.Format, count, info.ClearValue)
	p.scheduler.records.Add(record)

	return p.addUsage(record, name, state)
}

func (p *PassScheduler) existing(name string) (*Record, error) {
	err := p.checkOpen(name)
	if err != nil {
		return nil, err
	}

	id, ok := p.scheduler.graph.Resource(name)
	if !ok {
		return nil, p.wrap(errors.Mark(errors.Wrap(ErrUnknownResource, "resource must be created before it is used"), ErrInvalidDeclaration), name)
	}

	record, ok := p.scheduler.records.Get(id)
	if !ok {
		return nil, p.wrap(errors.Mark(errors.Wrap(ErrUnknownResource, "resource must be created before it is used"), ErrInvalidDeclaration), name)
	}

	return record, nil
}

// Read declares that the pass reads an existing resource in the provided read-only state
func (p *PassScheduler) Read(name string, state resource.ResourceState) error {
	record, err := p.existing(name)
	if err != nil {
		return err
	}

	if !state.IsReadOnly() {
		return p.wrap(errors.Wrapf(ErrInvalidDeclaration, "state %s is not a read-only state", state), name)
	}

	return p.addUsage(record, name, state)
}

// Write declares that the pass writes an existing resource in the provided single write state
func (p *PassScheduler) Write(name string, state resource.ResourceState) error {
	record, err := p.existing(name)
	if err != nil {
		return err
	}

	if !state.IsSingleWrite() {
		return p.wrap(errors.Wrapf(ErrInvalidDeclaration, "state %s is not a single write state", state), name)
	}

	return p.addUsage(record, name, state)
}

// NewRenderTarget creates a texture the pass renders to
func (p *PassScheduler) NewRenderTarget(name string, format resource.Format, clearValue resource.ClearValue) error {
	return p.Create(name, ResourceCreateInfo{Format: format, ClearValue: clearValue}, resource.ResourceStateRenderTarget)
}

// NewDepthStencil creates a depth/stencil texture the pass writes
func (p *PassScheduler) NewDepthStencil(name string, format resource.Format, clearValue resource.ClearValue) error {
	return p.Create(name, ResourceCreateInfo{Format: format, ClearValue: clearValue}, resource.ResourceStateDepthWrite)
}

// NewTexture creates a texture the pass writes with unordered access
func (p *PassScheduler) NewTexture(name string, format resource.Format) error {
	return p.Create(name, ResourceCreateInfo{Format: format}, resource.ResourceStateUnorderedAccess)
}

// NewBuffer creates a buffer the pass writes with unordered access
func (p *PassScheduler) NewBuffer(name string, format resource.Format, count uint32) error {
	return p.Create(name, ResourceCreateInfo{Format: format, Count: count}, resource.ResourceStateUnorderedAccess)
}

// ReadTexture reads a texture from any shader stage
func (p *PassScheduler) ReadTexture(name string) error {
	return p.Read(name, resource.ResourceStatePixelAndNonPixelShaderAccess)
}

func (p *PassScheduler) ReadDepthStencil(name string) error {
	return p.Read(name, resource.ResourceStateDepthRead)
}

// ReadBuffer reads a buffer from any shader stage
func (p *PassScheduler) ReadBuffer(name string) error {
	return p.Read(name, resource.ResourceStatePixelAndNonPixelShaderAccess)
}

func (p *PassScheduler) WriteRenderTarget(name string) error {
	return p.Write(name, resource.ResourceStateRenderTarget)
}

func (p *PassScheduler) WriteDepthStencil(name string) error {
	return p.Write(name, resource.ResourceStateDepthWrite)
}

func (p *PassScheduler) WriteTexture(name string) error {
	return p.Write(name, resource.ResourceStateUnorderedAccess)
}

func (p *PassScheduler) WriteBuffer(name string) error {
	return p.Write(name, resource.ResourceStateUnorderedAccess)
}
