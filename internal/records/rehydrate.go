package records

import (
	"fmt"
	"sort"

	"github.com/linkmax/lnkmx/internal/blocks"
)

// Rehydrate parses a record back into a block. The stored type is trusted
// over whatever the content says, and the stored schedule is reattached.
func Rehydrate(record Record) (blocks.Block, error) {
	if record.Content == nil {
		return blocks.Block{}, &RecordError{Position: record.Position, Cause: fmt.Errorf("content is empty")}
	}
	block, err := blocks.FromMap(record.Content)
	if err != nil {
		return blocks.Block{}, &RecordError{Position: record.Position, Cause: err}
	}
	if record.Type != "" {
		block.Type = blocks.Type(record.Type)
	}
	if record.Schedule != nil {
		schedule, err := blocks.ParseSchedule(record.Schedule)
		if err != nil {
			return blocks.Block{}, &RecordError{Position: record.Position, Cause: err}
		}
		block.Schedule = schedule
	} else {
		block.Schedule = nil
	}
	return block, nil
}

// RehydrateAll rehydrates records in position order.
func RehydrateAll(list []Record) ([]blocks.Block, error) {
	ordered := make([]Record, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	out := make([]blocks.Block, 0, len(ordered))
	for _, record := range ordered {
		block, err := Rehydrate(record)
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}
