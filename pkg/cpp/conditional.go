package cpp

// MaxNestingLevel bounds the tracked depth of #if nesting. Deeper
// conditionals are not tracked.
const MaxNestingLevel = 20

// conditional is the state of one #if nesting level
type conditional struct {
	ignoreAllBranches bool // the enclosing branch is ignored
	singleBranch      bool // only one branch may be followed
	branchChosen      bool // a branch has already been followed
	ignoring          bool // the current branch is ignored
}

// conditionalStack holds the frames of the open conditionals. Frame 0 is the
// always-live top level.
type conditionalStack struct {
	frames [MaxNestingLevel]conditional
	level  int
}

// branchPolicy carries the preprocessor settings the frame transitions
// depend on.
type branchPolicy struct {
	resolveRequired bool // a statement is in progress
	relaxed         bool // follow every branch
	examineIf0      bool // scan code inside #if 0
}

func (s *conditionalStack) current() *conditional {
	return &s.frames[s.level]
}

func (s *conditionalStack) isIgnore() bool {
	return s.frames[s.level].ignoring
}

func (s *conditionalStack) setIgnore(ignore bool) bool {
	s.frames[s.level].ignoring = ignore
	return ignore
}

// push opens a conditional and reports whether its first branch is ignored.
// Past the depth limit nothing is pushed and the first branch is followed.
func (s *conditionalStack) push(firstBranchChosen bool, pol branchPolicy) bool {
	ignoreAll := s.isIgnore()
	if s.level >= MaxNestingLevel-1 {
		return false
	}
	s.level++
	f := s.current()
	*f = newConditional(ignoreAll, firstBranchChosen, pol)
	return f.ignoring
}

func newConditional(ignoreAll, firstBranchChosen bool, pol branchPolicy) conditional {
	f := conditional{
		ignoreAllBranches: ignoreAll,
		singleBranch:      pol.resolveRequired,
		branchChosen:      firstBranchChosen,
	}
	f.ignoring = ignoreAll || (!firstBranchChosen && !pol.relaxed &&
		(f.singleBranch || !pol.examineIf0))
	return f
}

// ignoreBranch decides whether an #elif or #else branch is ignored. An
// incomplete statement seen on the way forces single branch mode.
func (s *conditionalStack) ignoreBranch(pol branchPolicy) bool {
	f := s.current()
	if pol.resolveRequired && !pol.relaxed {
		f.singleBranch = true
	}
	return f.ignoreAllBranches || (f.branchChosen && f.singleBranch)
}

// chooseBranch marks the current branch as the followed one.
func (s *conditionalStack) chooseBranch(pol branchPolicy) {
	if pol.relaxed {
		return
	}
	f := s.current()
	f.branchChosen = f.singleBranch || pol.resolveRequired
}

// pop closes a conditional and reports whether the enclosing branch is
// ignored.
func (s *conditionalStack) pop() bool {
	if s.level > 0 {
		s.level--
	}
	return s.isIgnore()
}
