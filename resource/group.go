package resource

// HeapAliasingGroup is a class of resources that are allowed to share heap memory with each other
type HeapAliasingGroup uint8

const (
	// HeapAliasingGroupRTDSTextures holds textures that are used as render targets or depth/stencil attachments
	HeapAliasingGroupRTDSTextures HeapAliasingGroup = iota
	// HeapAliasingGroupNonRTDSTextures holds every other texture
	HeapAliasingGroupNonRTDSTextures
	HeapAliasingGroupBuffers
	// HeapAliasingGroupUniversal holds every resource on devices whose heaps accept any resource type
	HeapAliasingGroupUniversal
)

// HeapAliasingGroups lists every group in the order their heaps are created
var HeapAliasingGroups = []HeapAliasingGroup{
	HeapAliasingGroupRTDSTextures,
	HeapAliasingGroupNonRTDSTextures,
	HeapAliasingGroupBuffers,
	HeapAliasingGroupUniversal,
}

var heapAliasingGroupMapping = map[HeapAliasingGroup]string{
	HeapAliasingGroupRTDSTextures:    "RTDSTextures",
	HeapAliasingGroupNonRTDSTextures: "NonRTDSTextures",
	HeapAliasingGroupBuffers:         "Buffers",
	HeapAliasingGroupUniversal:       "Universal",
}

func (g HeapAliasingGroup) String() string {
	return heapAliasingGroupMapping[g]
}

// AliasingGroupFor returns the group a resource of the provided format belongs to, given every state
// it is expected to be used in. When universal is true, every resource belongs to HeapAliasingGroupUniversal.
func AliasingGroupFor(format Format, expectedStates ResourceState, universal bool) HeapAliasingGroup {
	if universal {
		return HeapAliasingGroupUniversal
	}

	if format.IsBuffer() {
		return HeapAliasingGroupBuffers
	}

	if expectedStates&(ResourceStateRenderTarget|ResourceStateDepthWrite|ResourceStateDepthRead) != 0 {
		return HeapAliasingGroupRTDSTextures
	}

	return HeapAliasingGroupNonRTDSTextures
}
