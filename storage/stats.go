package storage

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/resource"
)

// StorageStatistics sums up the heaps and resources of a storage, per heap aliasing group and in total
type StorageStatistics struct {
	Groups [resource.HeapAliasingGroupUniversal + 1]memutils.DetailedStatistics
	Total  memutils.DetailedStatistics
}

// CalculateStatistics fills stats with the current heaps and resources. Before
// AllocateScheduledResources succeeds, every statistic is empty.
func (s *Storage) CalculateStatistics(stats *StorageStatistics) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats.Total.Clear()
	for _, group := range resource.HeapAliasingGroups {
		stats.Groups[group].Clear()

		groupData := &s.groups[group]
		if groupData.heap == nil {
			continue
		}

		groupData.aliaser.Metadata().AddDetailedStatistics(&stats.Groups[group])
		stats.Total.AddDetailedStatistics(&stats.Groups[group])
	}
}

func printDetailedStatistics(json *jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("BlockCount").Int(stats.BlockCount)
	json.Name("BlockBytes").Int(int(stats.BlockBytes))
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("AllocationBytes").Int(int(stats.AllocationBytes))
	json.Name("AliasedAllocationCount").Int(stats.AliasedAllocationCount)
	json.Name("SavedBytes").Int(int(stats.SavedBytes()))
	json.Name("UnusedRangeCount").Int(stats.UnusedRangeCount)

	if stats.AllocationCount > 1 {
		json.Name("AllocationSizeMin").Int(int(stats.AllocationSizeMin))
		json.Name("AllocationSizeMax").Int(int(stats.AllocationSizeMax))
	}
	if stats.UnusedRangeCount > 1 {
		json.Name("UnusedRangeSizeMin").Int(int(stats.UnusedRangeSizeMin))
		json.Name("UnusedRangeSizeMax").Int(int(stats.UnusedRangeSizeMax))
	}
}

// BuildStatsString returns a JSON document describing the storage's heaps and passes. When
// detailedMap is true, every placement in every heap is listed as well.
func (s *Storage) BuildStatsString(detailedMap bool) string {
	var stats StorageStatistics
	s.CalculateStatistics(&stats)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	writer := jwriter.NewWriter()
	root := writer.Object()

	total := root.Name("Total").Object()
	printDetailedStatistics(&total, &stats.Total)
	total.End()

	groups := root.Name("Groups").Object()
	for _, group := range resource.HeapAliasingGroups {
		groupData := &s.groups[group]
		if groupData.heap == nil {
			continue
		}

		groupObj := groups.Name(group.String()).Object()
		groupObj.Name("HeapSize").Int(int(groupData.size))

		statsObj := groupObj.Name("Stats").Object()
		printDetailedStatistics(&statsObj, &stats.Groups[group])
		statsObj.End()

		if detailedMap {
			heapObj := groupObj.Name("Heap").Object()
			groupData.aliaser.Metadata().BlockJsonData(&heapObj)
			heapObj.End()
		}

		groupObj.End()
	}
	groups.End()

	passes := root.Name("Passes").Array()
	for index := range s.passes {
		pass := &s.passes[index]

		passObj := passes.Object()
		passObj.Name("Name").String(s.graph.PassName(pass.id))

		resources := passObj.Name("Resources").Array()
		for _, id := range pass.scheduled {
			resources.String(s.graph.ResourceName(id))
		}
		resources.End()

		passObj.Name("AliasingBarriers").Int(len(pass.aliasingBarriers))
		passObj.Name("Transitions").Int(len(pass.transitions))
		passObj.Name("UnorderedAccessBarriers").Int(len(pass.uavBarriers))
		passObj.End()
	}
	passes.End()

	root.End()
	return string(writer.Bytes())
}
