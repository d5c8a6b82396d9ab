// Package desc loads frame graph descriptions written as JSON, so that a graph's heaps and barriers
// can be planned without the code that declares it.
//
// A description looks like this:
//
//	{
//	  "options": {"universalHeaps": false, "mergeReadStates": true, "disableAliasing": false},
//	  "passes": [
//	    {"name": "GBuffer", "resources": [
//	      {"verb": "create", "name": "Albedo", "state": "RenderTarget",
//	       "format": {"kind": "Texture2D", "pixelFormat": "RGBA8Unorm", "width": 1920, "height": 1080},
//	       "clear": {"color": [0, 0, 0, 1]}}
//	    ]},
//	    {"name": "Lighting", "resources": [
//	      {"verb": "read", "name": "Albedo", "state": "PixelShaderAccess"},
//	      {"verb": "create", "name": "Tiles", "count": 2,
//	       "format": {"kind": "Buffer", "stride": 16, "elements": 4096}}
//	    ]}
//	  ]
//	}
package desc

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/schedule"
	"github.com/vkngwrapper/framegraph/storage"
)

// ErrInvalidDescription marks every error caused by the contents of a description
var ErrInvalidDescription = errors.New("invalid frame graph description")

// Verb is the way a pass declares a resource
type Verb uint8

const (
	VerbCreate Verb = iota
	VerbRead
	VerbWrite
)

var verbMapping = map[Verb]string{
	VerbCreate: "create",
	VerbRead:   "read",
	VerbWrite:  "write",
}

func (v Verb) String() string {
	return verbMapping[v]
}

func ParseVerb(name string) (Verb, error) {
	for verb, verbName := range verbMapping {
		if verbName == name {
			return verb, nil
		}
	}

	return 0, errors.Mark(errors.Newf("unknown verb %q", name), ErrInvalidDescription)
}

// ResourceDeclaration is one resource declared by a pass
type ResourceDeclaration struct {
	Verb  Verb
	Name  string
	State resource.ResourceState

	// Format, Count and ClearValue are only used by VerbCreate
	Format     resource.Format
	Count      uint32
	ClearValue resource.ClearValue
}

type PassDescription struct {
	Name      string
	Resources []ResourceDeclaration
}

// Options are the storage behaviors a description asks for
type Options struct {
	UniversalHeaps  bool
	MergeReadStates bool
	DisableAliasing bool
}

// Flags returns the storage create flags the options correspond to
func (o Options) Flags() storage.CreateFlags {
	var flags storage.CreateFlags
	if o.UniversalHeaps {
		flags |= storage.StorageCreateUniversalHeaps
	}
	if o.MergeReadStates {
		flags |= storage.StorageCreateMergeReadStates
	}
	if o.DisableAliasing {
		flags |= storage.StorageCreateDisableAliasing
	}
	return flags
}

// Description is a parsed frame graph: its passes in execution order and what each declares
type Description struct {
	Options Options
	Passes  []PassDescription
}

// Build adds every pass of the description to the graph, in order
func (d *Description) Build(g *graph.Graph) error {
	for _, pass := range d.Passes {
		_, err := g.AddPass(pass.Name)
		if err != nil {
			return errors.Wrapf(err, "failed to add pass %q", pass.Name)
		}
	}

	return nil
}

// Declare replays every declaration of the description against the scheduler. The scheduler's graph
// must have been built from the same description.
func (d *Description) Declare(scheduler *schedule.Scheduler) error {
	for _, pass := range d.Passes {
		passScheduler, err := scheduler.Pass(pass.Name)
		if err != nil {
			return err
		}

		for _, declaration := range pass.Resources {
			switch declaration.Verb {
			case VerbCreate:
				err = passScheduler.Create(declaration.Name, schedule.ResourceCreateInfo{
					Format:     declaration.Format,
					Count:      declaration.Count,
					ClearValue: declaration.ClearValue,
				}, declaration.State)
			case VerbRead:
				err = passScheduler.Read(declaration.Name, declaration.State)
			case VerbWrite:
				err = passScheduler.Write(declaration.Name, declaration.State)
			default:
				err = errors.AssertionFailedf("unknown verb %d", declaration.Verb)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}
