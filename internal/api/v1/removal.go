package v1

// RemovalAction describes what removing one occurrence did to its series.
type RemovalAction string

const (
	RemovalDeleted   RemovalAction = "deleted"
	RemovalShifted   RemovalAction = "shifted"
	RemovalTruncated RemovalAction = "truncated"
	RemovalSplit     RemovalAction = "split"
)

// RemovalResult is the outcome of removing one occurrence from a record of type T.
// Updated is the rewritten original (nil when deleted); Created is the split tail.
type RemovalResult[T any] struct {
	Action    RemovalAction `json:"action"`
	DeletedID string        `json:"deleted_id,omitempty"`
	Updated   *T            `json:"updated,omitempty"`
	Created   *T            `json:"created,omitempty"`
}

// Records returns the surviving records in series order.
func (r RemovalResult[T]) Records() []*T {
	var out []*T
	if r.Updated != nil {
		out = append(out, r.Updated)
	}
	if r.Created != nil {
		out = append(out, r.Created)
	}
	return out
}
