package status

// DriverKey is the cross-platform driver identity: the (first name, second
// name) pair, matched exactly and case-sensitively. Platforms expose no
// shared surrogate id, so this weak join is deliberate; rosters whose
// formatting differs from internal records simply do not match.
type DriverKey struct {
	FirstName  string
	SecondName string
}

// Report is one platform's status snapshot for a single reconciliation
// cycle. Transient; rebuilt from scratch every cycle, never persisted.
type Report struct {
	Platform   string
	Online     map[DriverKey]struct{}
	WithClient map[DriverKey]struct{}
}

// NewReport returns an empty snapshot for the named platform.
func NewReport(platform string) *Report {
	return &Report{
		Platform:   platform,
		Online:     make(map[DriverKey]struct{}),
		WithClient: make(map[DriverKey]struct{}),
	}
}

// MarkOnline records a driver seen online/waiting.
func (r *Report) MarkOnline(key DriverKey) {
	r.Online[key] = struct{}{}
}

// MarkWithClient records a driver currently carrying a client.
func (r *Report) MarkWithClient(key DriverKey) {
	r.WithClient[key] = struct{}{}
}
