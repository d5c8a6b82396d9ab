package desc

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/vkngwrapper/framegraph/resource"
)

func invalid(err error) error {
	return errors.Mark(err, ErrInvalidDescription)
}

// Parse reads a JSON frame graph description. Declarations without a state get a default one:
// created depth textures are written as DepthWrite, other created resources and writes use
// UnorderedAccess, and reads use PixelAndNonPixelShaderAccess.
func Parse(data []byte) (*Description, error) {
	r := jreader.NewReader(data)
	description := &Description{}

	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "options":
			readOptions(&r, &description.Options)
		case "passes":
			for arr := r.Array(); arr.Next(); {
				description.Passes = append(description.Passes, readPass(&r))
			}
		}
	}

	if err := r.Error(); err != nil {
		return nil, invalid(errors.Wrap(err, "failed to parse frame graph description"))
	}

	if len(description.Passes) == 0 {
		return nil, invalid(errors.New("a frame graph description must contain at least one pass"))
	}

	return description, nil
}

func readOptions(r *jreader.Reader, options *Options) {
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "universalHeaps":
			options.UniversalHeaps = r.Bool()
		case "mergeReadStates":
			options.MergeReadStates = r.Bool()
		case "disableAliasing":
			options.DisableAliasing = r.Bool()
		}
	}
}

func readPass(r *jreader.Reader) PassDescription {
	var pass PassDescription

	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "name":
			pass.Name = r.String()
		case "resources":
			for arr := r.Array(); arr.Next(); {
				pass.Resources = append(pass.Resources, readResource(r))
			}
		}
	}

	if r.Error() == nil && pass.Name == "" {
		r.AddError(invalid(errors.New("every pass must have a name")))
	}

	return pass
}

func readResource(r *jreader.Reader) ResourceDeclaration {
	var declaration ResourceDeclaration
	var verbName, stateName string
	var hasFormat bool

	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "verb":
			verbName = r.String()
		case "name":
			declaration.Name = r.String()
		case "state":
			stateName = r.String()
		case "count":
			count := r.Int()
			if count < 0 {
				r.AddError(invalid(errors.Newf("resource count %d cannot be negative", count)))
			}
			declaration.Count = uint32(count)
		case "format":
			hasFormat = true
			declaration.Format = readFormat(r)
		case "clear":
			declaration.ClearValue = readClearValue(r)
		}
	}

	if r.Error() != nil {
		return declaration
	}

	if declaration.Name == "" {
		r.AddError(invalid(errors.New("every resource declaration must have a name")))
		return declaration
	}

	verb, err := ParseVerb(verbName)
	if err != nil {
		r.AddError(errors.Wrapf(err, "resource %q", declaration.Name))
		return declaration
	}
	declaration.Verb = verb

	if verb == VerbCreate && !hasFormat {
		r.AddError(invalid(errors.Newf("resource %q is created without a format", declaration.Name)))
		return declaration
	}

	if stateName == "" {
		declaration.State = defaultState(declaration)
		return declaration
	}

	declaration.State, err = resource.ParseResourceState(stateName)
	if err != nil {
		r.AddError(invalid(errors.Wrapf(err, "resource %q", declaration.Name)))
	}

	return declaration
}

func defaultState(declaration ResourceDeclaration) resource.ResourceState {
	switch declaration.Verb {
	case VerbRead:
		return resource.ResourceStatePixelAndNonPixelShaderAccess
	case VerbCreate:
		if declaration.Format.IsTexture() && resource.IsDepthStencilFormat(declaration.Format.PixelFormat()) {
			return resource.ResourceStateDepthWrite
		}
	}

	return resource.ResourceStateUnorderedAccess
}

func readFormat(r *jreader.Reader) resource.Format {
	var kindName, pixelFormatName string
	var width, height, depth, mips, stride, elements int

	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "kind":
			kindName = r.String()
		case "pixelFormat":
			pixelFormatName = r.String()
		case "width":
			width = r.Int()
		case "height":
			height = r.Int()
		case "depth":
			depth = r.Int()
		case "mips":
			mips = r.Int()
		case "stride":
			stride = r.Int()
		case "elements":
			elements = r.Int()
		}
	}

	if r.Error() != nil {
		return resource.Format{}
	}

	for _, value := range []int{width, height, depth, mips, stride, elements} {
		if value < 0 {
			r.AddError(invalid(errors.Newf("format values cannot be negative, but found %d", value)))
			return resource.Format{}
		}
	}

	kind, err := resource.ParseKind(kindName)
	if err != nil {
		r.AddError(invalid(err))
		return resource.Format{}
	}

	var format resource.Format
	if kind == resource.KindBuffer {
		format, err = resource.NewBufferFormat(uint64(stride), uint64(elements))
	} else {
		var pixelFormat gputypes.TextureFormat
		pixelFormat, err = resource.ParsePixelFormat(pixelFormatName)
		if err == nil {
			format, err = resource.NewTextureFormat(kind, pixelFormat, resource.Dimensions{
				Width:  uint32(width),
				Height: uint32(height),
				Depth:  uint32(depth),
			}, uint32(mips))
		}
	}

	if err != nil {
		r.AddError(invalid(err))
	}
	return format
}

func readClearValue(r *jreader.Reader) resource.ClearValue {
	var clearValue resource.ClearValue

	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "color":
			var channels []float64
			for arr := r.Array(); arr.Next(); {
				channels = append(channels, r.Float64())
			}
			if r.Error() == nil && len(channels) != 4 {
				r.AddError(invalid(errors.Newf("a clear color has 4 channels, but found %d", len(channels))))
				continue
			}
			if len(channels) == 4 {
				clearValue.Color = gputypes.Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
			}
		case "depth":
			clearValue.Depth = float32(r.Float64())
		case "stencil":
			stencil := r.Int()
			if stencil < 0 {
				r.AddError(invalid(errors.Newf("stencil clear value %d cannot be negative", stencil)))
			}
			clearValue.Stencil = uint32(stencil)
		}
	}

	return clearValue
}
