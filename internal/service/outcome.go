package service

import "github.com/phrazzld/item-api/internal/domain"

// OutcomeStatus is the terminal state of one per-item task.
type OutcomeStatus string

const (
	OutcomeProcessed OutcomeStatus = "processed"
	OutcomeSkipped   OutcomeStatus = "skipped"
)

// Outcome is the result of processing one item. Item is set only for
// processed outcomes; Err is set for skipped outcomes caused by a failure
// and is nil when the item simply no longer exists.
type Outcome struct {
	ItemID int64
	Status OutcomeStatus
	Item   *domain.Item
	Err    error
}

func processed(id int64, item *domain.Item) Outcome {
	return Outcome{ItemID: id, Status: OutcomeProcessed, Item: item}
}

func skipped(id int64, err error) Outcome {
	return Outcome{ItemID: id, Status: OutcomeSkipped, Err: err}
}

// Processed reports whether the item was processed and saved.
func (o Outcome) Processed() bool {
	return o.Status == OutcomeProcessed && o.Item != nil
}

// collectProcessed returns the items of processed outcomes, keeping the
// order of outcomes. It never returns nil.
func collectProcessed(outcomes []Outcome) []*domain.Item {
	items := make([]*domain.Item, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Processed() {
			items = append(items, o.Item)
		}
	}
	return items
}

// BatchStats summarizes the outcomes of one batch run.
type BatchStats struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
}

func summarize(outcomes []Outcome) BatchStats {
	stats := BatchStats{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Processed():
			stats.Processed++
		case o.Err != nil:
			stats.Skipped++
			stats.Failed++
		default:
			stats.Skipped++
		}
	}
	return stats
}
