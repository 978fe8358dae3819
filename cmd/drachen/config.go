package main

import (
	"os"

	"github.com/mewkiz/pkg/errutil"
	"gopkg.in/yaml.v3"

	drachen "github.com/mewkiz/drachen"
)

// scheduleEntry mirrors one YAML list item of a --schedule file: "use
// blocks of Size bytes for offsets up to (but not including) Through".
type scheduleEntry struct {
	Through uint32 `yaml:"through"`
	Size    uint32 `yaml:"size"`
}

// loadSchedule reads a block-size schedule document (spec.md §3's
// "not persisted — encoder-side tuning parameter") from path.
func loadSchedule(path string) (drachen.Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errutil.Err(err)
	}
	var entries []scheduleEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, errutil.Err(err)
	}
	schedule := make(drachen.Schedule, len(entries))
	for i, e := range entries {
		schedule[i] = drachen.BlockSpec{SegmentEnd: e.Through, BlockSize: e.Size}
	}
	return schedule, nil
}
