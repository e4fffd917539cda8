package tag

// Nil is the index returned by Commit when a record was dropped
const Nil = 0

// Sink receives symbol records from a recognizer. Begin returns a draft
// record, or nil when the kind is disabled; Commit files the draft and
// returns an index usable with Lookup, or Nil when the record was filtered.
type Sink interface {
	Begin(kind Kind, name string, pos Position) *Tag
	Commit(t *Tag) int
	Lookup(index int) *Tag
}

// Rewinder is implemented by sinks that can discard records committed after
// a mark. The recognizer uses it to drop the records of a failed pass.
type Rewinder interface {
	Len() int
	Truncate(n int)
}

// Options controls which records a Queue keeps
type Options struct {
	Disabled      map[Kind]bool
	FileScope     bool // keep records visible only inside their file
	ReferenceTags bool // keep records with a reference role
}

// DefaultOptions enables everything except locals, parameters and extern
// variable declarations.
func DefaultOptions() Options {
	return Options{
		Disabled: map[Kind]bool{
			KindLocal:     true,
			KindParameter: true,
			KindExternVar: true,
		},
		FileScope: true,
	}
}

// AllOptions enables every kind, file scoped records and reference roles.
func AllOptions() Options {
	return Options{FileScope: true, ReferenceTags: true}
}

// Queue is the append-only record store ("cork queue") shared by all
// recognizers. Indexes are 1-based so that Nil never names a record.
type Queue struct {
	opts Options
	tags []*Tag
}

// NewQueue creates a queue filtering records with opts
func NewQueue(opts Options) *Queue {
	return &Queue{opts: opts}
}

// Enabled reports whether records of kind k are kept.
func (q *Queue) Enabled(k Kind) bool {
	return !q.opts.Disabled[k]
}

// Options returns the filtering options of the queue.
func (q *Queue) Options() Options {
	return q.opts
}

// Begin starts a draft record.
func (q *Queue) Begin(kind Kind, name string, pos Position) *Tag {
	if !q.Enabled(kind) {
		return nil
	}
	return &Tag{Name: name, Kind: kind, Position: pos}
}

// Commit appends the draft and returns its index.
func (q *Queue) Commit(t *Tag) int {
	if t == nil || t.Name == "" {
		return Nil
	}
	if t.FileScope && !q.opts.FileScope {
		return Nil
	}
	if t.IsReference() && !q.opts.ReferenceTags {
		return Nil
	}
	q.tags = append(q.tags, t)
	return len(q.tags)
}

// Lookup returns the record at index, or nil.
func (q *Queue) Lookup(index int) *Tag {
	if index <= Nil || index > len(q.tags) {
		return nil
	}
	return q.tags[index-1]
}

// SetEnd records the end line of the record at index. Nil is ignored.
func (q *Queue) SetEnd(index, line int) {
	if t := q.Lookup(index); t != nil {
		t.End = line
	}
}

// Len returns the number of committed records.
func (q *Queue) Len() int {
	return len(q.tags)
}

// Truncate drops every record past the first n.
func (q *Queue) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(q.tags) {
		for i := n; i < len(q.tags); i++ {
			q.tags[i] = nil
		}
		q.tags = q.tags[:n]
	}
}

// Tags returns the committed records in commit order.
func (q *Queue) Tags() []*Tag {
	return q.tags
}
