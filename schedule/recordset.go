package schedule

import "github.com/vkngwrapper/framegraph/graph"

// RecordSet is an arena of records indexed by resource id
type RecordSet struct {
	records []*Record
	count   int
}

func (s *RecordSet) Add(record *Record) {
	id := int(record.ID())
	for len(s.records) <= id {
		s.records = append(s.records, nil)
	}

	if s.records[id] == nil {
		s.count++
	}
	s.records[id] = record
}

func (s *RecordSet) Get(id graph.ResourceID) (*Record, bool) {
	if id < 0 || int(id) >= len(s.records) || s.records[id] == nil {
		return nil, false
	}
	return s.records[id], true
}

// All returns every record in resource id order
func (s *RecordSet) All() []*Record {
	records := make([]*Record, 0, s.count)
	for _, record := range s.records {
		if record != nil {
			records = append(records, record)
		}
	}
	return records
}

func (s *RecordSet) Len() int {
	return s.count
}
