package resource

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/framegraph/memutils"
)

// PlacementAlignment is the alignment in bytes of every resource placed in a heap
const PlacementAlignment uint64 = 65536

// maxResourceSize is the largest unaligned size that can still be aligned up to PlacementAlignment
const maxResourceSize = math.MaxUint64 - PlacementAlignment

// checkedProduct multiplies factors, reporting false if the product is larger than maxResourceSize
func checkedProduct(factors ...uint64) (uint64, bool) {
	product := uint64(1)
	for _, factor := range factors {
		hi, lo := bits.Mul64(product, factor)
		if hi != 0 || lo > maxResourceSize {
			return 0, false
		}
		product = lo
	}
	return product, true
}

// Kind identifies the shape of a resource
type Kind uint8

const (
	KindBuffer Kind = iota
	KindTexture1D
	KindTexture2D
	KindTexture3D
)

var kindMapping = map[Kind]string{
	KindBuffer:    "Buffer",
	KindTexture1D: "Texture1D",
	KindTexture2D: "Texture2D",
	KindTexture3D: "Texture3D",
}

func (k Kind) String() string {
	return kindMapping[k]
}

func (k Kind) IsTexture() bool {
	return k == KindTexture1D || k == KindTexture2D || k == KindTexture3D
}

// ParseKind returns the Kind with the provided name
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindMapping {
		if kindName == name {
			return kind, nil
		}
	}

	return 0, errors.Newf("unknown resource kind %q", name)
}

type pixelFormatInfo struct {
	name          string
	bytesPerTexel uint64
	depthStencil  bool
}

var pixelFormats = map[gputypes.TextureFormat]pixelFormatInfo{
	gputypes.TextureFormatR8Unorm:             {name: "R8Unorm", bytesPerTexel: 1},
	gputypes.TextureFormatRGBA8Unorm:          {name: "RGBA8Unorm", bytesPerTexel: 4},
	gputypes.TextureFormatRGBA8Snorm:          {name: "RGBA8Snorm", bytesPerTexel: 4},
	gputypes.TextureFormatBGRA8Unorm:          {name: "BGRA8Unorm", bytesPerTexel: 4},
	gputypes.TextureFormatR16Float:            {name: "R16Float", bytesPerTexel: 2},
	gputypes.TextureFormatRG16Float:           {name: "RG16Float", bytesPerTexel: 4},
	gputypes.TextureFormatRGBA16Float:         {name: "RGBA16Float", bytesPerTexel: 8},
	gputypes.TextureFormatR32Float:            {name: "R32Float", bytesPerTexel: 4},
	gputypes.TextureFormatR32Uint:             {name: "R32Uint", bytesPerTexel: 4},
	gputypes.TextureFormatRG32Float:           {name: "RG32Float", bytesPerTexel: 8},
	gputypes.TextureFormatRGBA32Float:         {name: "RGBA32Float", bytesPerTexel: 16},
	gputypes.TextureFormatDepth32Float:        {name: "Depth32Float", bytesPerTexel: 4, depthStencil: true},
	gputypes.TextureFormatDepth24PlusStencil8: {name: "Depth24PlusStencil8", bytesPerTexel: 4, depthStencil: true},
}

// ParsePixelFormat returns the texture format with the provided name, such as "RGBA16Float"
func ParsePixelFormat(name string) (gputypes.TextureFormat, error) {
	for format, info := range pixelFormats {
		if info.name == name {
			return format, nil
		}
	}

	return gputypes.TextureFormatUndefined, errors.Newf("unknown pixel format %q", name)
}

// PixelFormatName returns the name ParsePixelFormat accepts for the format
func PixelFormatName(format gputypes.TextureFormat) string {
	info, ok := pixelFormats[format]
	if !ok {
		return fmt.Sprintf("Unknown(%d)", format)
	}
	return info.name
}

// IsDepthStencilFormat returns true for pixel formats that can only be used as depth/stencil attachments
func IsDepthStencilFormat(format gputypes.TextureFormat) bool {
	return pixelFormats[format].depthStencil
}

// Dimensions are the texel extents of a texture. Depth is the depth of a 3D texture or the array
// layer count of a 1D or 2D texture.
type Dimensions struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Format is the immutable shape of a logical resource: either a texture with a pixel format,
// dimensions, and mip count, or a buffer of elements with a fixed stride.
type Format struct {
	kind         Kind
	pixelFormat  gputypes.TextureFormat
	dimensions   Dimensions
	mipCount     uint32
	stride       uint64
	elementCount uint64
}

// NewTextureFormat creates a texture format. A zero Height or Depth is treated as 1, and a zero
// mipCount is treated as a single mip.
func NewTextureFormat(kind Kind, pixelFormat gputypes.TextureFormat, dimensions Dimensions, mipCount uint32) (Format, error) {
	if !kind.IsTexture() {
		return Format{}, errors.Newf("%s is not a texture kind", kind)
	}

	if _, ok := pixelFormats[pixelFormat]; !ok {
		return Format{}, errors.Newf("unsupported pixel format %d", pixelFormat)
	}

	if dimensions.Width == 0 {
		return Format{}, errors.New("texture width must be greater than 0")
	}

	if dimensions.Height == 0 {
		dimensions.Height = 1
	}
	if dimensions.Depth == 0 {
		dimensions.Depth = 1
	}
	if mipCount == 0 {
		mipCount = 1
	}

	if kind == KindTexture1D && dimensions.Height != 1 {
		return Format{}, errors.Newf("1D textures must have a height of 1, but height was %d", dimensions.Height)
	}

	if IsDepthStencilFormat(pixelFormat) && kind == KindTexture3D {
		return Format{}, errors.New("3D textures cannot use a depth/stencil pixel format")
	}

	largest := max(dimensions.Width, dimensions.Height)
	if kind == KindTexture3D {
		largest = max(largest, dimensions.Depth)
	}
	maxMips := uint32(bits.Len32(largest))
	if mipCount > maxMips {
		return Format{}, errors.Newf("a %dx%dx%d texture can have at most %d mips, but %d were requested",
			dimensions.Width, dimensions.Height, dimensions.Depth, maxMips, mipCount)
	}

	// a full mip chain never needs twice the top mip
	_, ok := checkedProduct(uint64(dimensions.Width), uint64(dimensions.Height), uint64(dimensions.Depth),
		pixelFormats[pixelFormat].bytesPerTexel, 2)
	if !ok {
		return Format{}, errors.Newf("a %dx%dx%d texture of %s is too large",
			dimensions.Width, dimensions.Height, dimensions.Depth, PixelFormatName(pixelFormat))
	}

	return Format{
		kind:        kind,
		pixelFormat: pixelFormat,
		dimensions:  dimensions,
		mipCount:    mipCount,
	}, nil
}

// NewBufferFormat creates a buffer format of elementCount elements that are each stride bytes
func NewBufferFormat(stride uint64, elementCount uint64) (Format, error) {
	if stride == 0 || elementCount == 0 {
		return Format{}, errors.Newf("buffer stride and element count must be greater than 0, but were %d and %d", stride, elementCount)
	}

	if _, ok := checkedProduct(stride, elementCount); !ok {
		return Format{}, errors.Newf("a buffer of %d elements of %d bytes is too large", elementCount, stride)
	}

	return Format{
		kind:         KindBuffer,
		stride:       stride,
		elementCount: elementCount,
	}, nil
}

func (f Format) Kind() Kind                          { return f.kind }
func (f Format) PixelFormat() gputypes.TextureFormat { return f.pixelFormat }
func (f Format) Dimensions() Dimensions              { return f.dimensions }
func (f Format) MipCount() uint32                    { return f.mipCount }
func (f Format) Stride() uint64                      { return f.stride }
func (f Format) ElementCount() uint64                { return f.elementCount }

func (f Format) IsTexture() bool {
	return f.kind.IsTexture()
}

func (f Format) IsBuffer() bool {
	return f.kind == KindBuffer
}

// ResourceSizeInBytes returns the heap space one resource of this format occupies, aligned up to
// PlacementAlignment
func (f Format) ResourceSizeInBytes() uint64 {
	if f.kind == KindBuffer {
		return memutils.AlignUp(f.stride*f.elementCount, PlacementAlignment)
	}

	texelBytes := pixelFormats[f.pixelFormat].bytesPerTexel
	var size uint64
	for mip := uint32(0); mip < f.mipCount; mip++ {
		width := uint64(max(1, f.dimensions.Width>>mip))
		height := uint64(max(1, f.dimensions.Height>>mip))
		depth := uint64(f.dimensions.Depth)
		if f.kind == KindTexture3D {
			depth = uint64(max(1, f.dimensions.Depth>>mip))
		}

		size += width * height * depth * texelBytes
	}

	return memutils.AlignUp(size, PlacementAlignment)
}

func (f Format) String() string {
	if f.kind == KindBuffer {
		return fmt.Sprintf("Buffer %dx%d", f.stride, f.elementCount)
	}

	return fmt.Sprintf("%s %s %dx%dx%d mips=%d", f.kind, PixelFormatName(f.pixelFormat),
		f.dimensions.Width, f.dimensions.Height, f.dimensions.Depth, f.mipCount)
}
