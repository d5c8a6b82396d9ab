package vulkan

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/framegraph/storage"
	"github.com/vkngwrapper/framegraph/tracker"
)

// BarrierInfo is a tracked barrier expressed as a pair of Vulkan synchronization scopes
type BarrierInfo struct {
	Barrier tracker.Barrier
	// Texture is true when the barrier's target is a texture, in which case the scopes carry layouts
	Texture bool
	Src     Scope
	Dst     Scope
}

// TranslateBarriers converts the barriers a StateTracker flushed for a pass into Vulkan scopes.
// Aliasing barriers discard the previous contents, so their source layout is ImageLayoutUndefined.
// Initial barriers move textures out of the undefined layout they were created in. Buffers have no
// layout, so their initial barriers are dropped. The tracker must be created with
// tracker.CreateOptions.InitialBarriers.
func TranslateBarriers(barriers []tracker.Barrier) []BarrierInfo {
	infos := make([]BarrierInfo, 0, len(barriers))

	for _, barrier := range barriers {
		_, texture := barrier.Target.(storage.Texture)

		if barrier.Kind == tracker.BarrierKindInitial {
			if !texture {
				continue
			}

			info := initialTransition(barrier)
			info.Barrier = barrier
			infos = append(infos, info)
			continue
		}

		info := BarrierInfo{
			Barrier: barrier,
			Texture: texture,
			Dst:     ScopeForState(barrier.After, texture),
		}

		switch barrier.Kind {
		case tracker.BarrierKindAliasing:
			info.Src = Scope{
				Stages: core1_0.PipelineStageAllCommands,
				Layout: core1_0.ImageLayoutUndefined,
			}
		default:
			info.Src = ScopeForState(barrier.Before, texture)
		}

		infos = append(infos, info)
	}

	return infos
}

func initialTransition(barrier tracker.Barrier) BarrierInfo {
	if vkTexture, ok := barrier.Target.(*Texture); ok {
		return vkTexture.InitialTransition()
	}

	return BarrierInfo{
		Texture: true,
		Src:     Scope{Stages: core1_0.PipelineStageTopOfPipe, Layout: core1_0.ImageLayoutUndefined},
		Dst:     ScopeForState(barrier.After, true),
	}
}

// SourceStages returns the union of every barrier's source stages, for use in a single pipeline barrier
func SourceStages(infos []BarrierInfo) core1_0.PipelineStageFlags {
	var stages core1_0.PipelineStageFlags
	for _, info := range infos {
		stages |= info.Src.Stages
	}
	return stages
}

// DestinationStages returns the union of every barrier's destination stages
func DestinationStages(infos []BarrierInfo) core1_0.PipelineStageFlags {
	var stages core1_0.PipelineStageFlags
	for _, info := range infos {
		stages |= info.Dst.Stages
	}
	return stages
}
