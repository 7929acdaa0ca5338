package sync

import (
	"context"
	"fmt"
	"testing"

	"sound-sync/core/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDesired is a test desired-state store.
type fakeDesired struct {
	ids []ContentID
	err error
}

func (f *fakeDesired) Get(ctx context.Context) ([]ContentID, error) {
	return f.ids, f.err
}

// fakeCatalog resolves every ID to its derived path and serves hashes
// from a fixed map.
type fakeCatalog struct {
	hashes     map[SegmentPath]ContentHash
	resolveErr error
	hashErr    error
	hashCalls  int
}

func (f *fakeCatalog) Resolve(ctx context.Context, id ContentID, bitrate int) ([]SegmentPath, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return []SegmentPath{PathFor(id, bitrate)}, nil
}

func (f *fakeCatalog) Hashes(ctx context.Context, paths []SegmentPath) (map[SegmentPath]ContentHash, error) {
	f.hashCalls++
	if f.hashErr != nil {
		return nil, f.hashErr
	}
	out := make(map[SegmentPath]ContentHash)
	for _, p := range paths {
		if h, ok := f.hashes[p]; ok {
			out[p] = h
		}
	}
	return out, nil
}

// fakeIndex serves a fresh cursor over a fixed record slice per scan.
type fakeIndex struct {
	recs    []DownloadRecord
	scanErr error
	nextErr error
}

type sliceCursor struct {
	recs    []DownloadRecord
	pos     int
	nextErr error
}

func (c *sliceCursor) Next() (DownloadRecord, bool, error) {
	if c.nextErr != nil {
		return DownloadRecord{}, false, c.nextErr
	}
	if c.pos >= len(c.recs) {
		return DownloadRecord{}, false, nil
	}
	rec := c.recs[c.pos]
	c.pos++
	return rec, true, nil
}

func (c *sliceCursor) Close() error { return nil }

func (f *fakeIndex) Scan(ctx context.Context) (RecordCursor, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return &sliceCursor{recs: f.recs, nextErr: f.nextErr}, nil
}

// commandLog records issued commands in order and can fail selected
// paths.
type commandLog struct {
	commands []string
	failOn   map[SegmentPath]error
}

func (c *commandLog) EnqueueAdd(ctx context.Context, path SegmentPath, hash ContentHash, expedited bool) error {
	if err := c.failOn[path]; err != nil {
		return err
	}
	c.commands = append(c.commands, fmt.Sprintf("add %s %s", path, hash))
	return nil
}

func (c *commandLog) EnqueueRemove(ctx context.Context, path SegmentPath, expedited bool) error {
	if err := c.failOn[path]; err != nil {
		return err
	}
	c.commands = append(c.commands, fmt.Sprintf("remove %s", path))
	return nil
}

func (c *commandLog) ResumeAll(ctx context.Context) error {
	c.commands = append(c.commands, "resume")
	return nil
}

type fakeGate struct {
	ok  bool
	err error
}

func (f *fakeGate) Check(ctx context.Context) (bool, error) { return f.ok, f.err }

type fakeReporter struct {
	published []*PassReport
	err       error
}

func (f *fakeReporter) Publish(ctx context.Context, report *PassReport) error {
	f.published = append(f.published, report)
	return f.err
}

func newTestEngine(desired *fakeDesired, catalog *fakeCatalog, index *fakeIndex, cmds *commandLog, gate *fakeGate, reporter *fakeReporter) *Engine {
	// A nil *fakeReporter must become a nil interface, not a typed nil
	// the engine would try to call.
	var status StatusReporter
	if reporter != nil {
		status = reporter
	}
	return NewEngine(desired, catalog, index, cmds, gate, status, zap.NewNop())
}

func TestRun_FreshDownloads(t *testing.T) {
	// Scenario: two desired sounds, empty local index. Both segments are
	// added in resolution order, then transfers are resumed.
	desired := &fakeDesired{ids: []ContentID{"S1", "S2"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{
		"S1/128": "h1",
		"S2/128": "h2",
	}}
	index := &fakeIndex{}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"add S1/128 h1", "add S2/128 h2", "resume"}, cmds.commands)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.Removed)
}

func TestRun_Idempotent(t *testing.T) {
	// A second pass over unchanged inputs issues zero add/remove commands.
	desired := &fakeDesired{ids: []ContentID{"S1", "S2"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{
		"S1/128": "h1",
		"S2/128": "h2",
	}}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h1", Status: StatusComplete},
		{Path: "S2/128", Hash: "h2", Status: StatusComplete},
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"resume"}, cmds.commands)
	assert.Equal(t, 2, report.Satisfied)
}

func TestRun_RemovesUndesired(t *testing.T) {
	// Scenario: S1 was removed by the user, S2 is desired but not local.
	desired := &fakeDesired{ids: []ContentID{"S2"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{
		"S2/128": "h2",
	}}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h0", Status: StatusComplete},
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	_, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"remove S1/128", "add S2/128 h2", "resume"}, cmds.commands)
}

func TestRun_HashChangeRemovesBeforeAdd(t *testing.T) {
	// Scenario: server content changed under the same path. The stale
	// record is removed before the fresh add; never a patch in place.
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{
		"S1/128": "h1-new",
	}}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h1", Status: StatusComplete},
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"remove S1/128", "add S1/128 h1-new", "resume"}, cmds.commands)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 1, report.Added)
}

func TestRun_MissingAuthoritativeHashMeansRefetch(t *testing.T) {
	// A desired record whose path has no authoritative hash counts as
	// changed: remove, then re-add.
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{}}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h1", Status: StatusComplete},
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	_, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"remove S1/128", "add S1/128 ", "resume"}, cmds.commands)
}

func TestRun_GateDenied(t *testing.T) {
	// No entitlement is not an error: zero commands, Success.
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{}
	index := &fakeIndex{}
	cmds := &commandLog{}
	gate := &fakeGate{ok: false}
	reporter := &fakeReporter{}

	engine := newTestEngine(desired, catalog, index, cmds, gate, reporter)
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Empty(t, cmds.commands)
	assert.True(t, report.Skipped)
	assert.Len(t, reporter.published, 1)
}

func TestRun_OutcomeClassification(t *testing.T) {
	hashes := map[SegmentPath]ContentHash{"S1/128": "h1"}

	tests := []struct {
		name    string
		desired *fakeDesired
		catalog *fakeCatalog
		index   *fakeIndex
		gate    *fakeGate
		want    scheduler.Outcome
	}{
		{
			name:    "gate error is transient",
			desired: &fakeDesired{ids: []ContentID{"S1"}},
			catalog: &fakeCatalog{hashes: hashes},
			index:   &fakeIndex{},
			gate:    &fakeGate{err: fmt.Errorf("gate unreachable")},
			want:    scheduler.Retry,
		},
		{
			name:    "desired read failure is terminal",
			desired: &fakeDesired{err: fmt.Errorf("store corrupt")},
			catalog: &fakeCatalog{hashes: hashes},
			index:   &fakeIndex{},
			gate:    &fakeGate{ok: true},
			want:    scheduler.Fail,
		},
		{
			name:    "resolve failure is transient",
			desired: &fakeDesired{ids: []ContentID{"S1"}},
			catalog: &fakeCatalog{resolveErr: fmt.Errorf("catalog down")},
			index:   &fakeIndex{},
			gate:    &fakeGate{ok: true},
			want:    scheduler.Retry,
		},
		{
			name:    "hash fetch failure is transient",
			desired: &fakeDesired{ids: []ContentID{"S1"}},
			catalog: &fakeCatalog{hashErr: fmt.Errorf("catalog down")},
			index:   &fakeIndex{},
			gate:    &fakeGate{ok: true},
			want:    scheduler.Retry,
		},
		{
			name:    "index scan failure is transient",
			desired: &fakeDesired{ids: []ContentID{"S1"}},
			catalog: &fakeCatalog{hashes: hashes},
			index:   &fakeIndex{scanErr: fmt.Errorf("index locked")},
			gate:    &fakeGate{ok: true},
			want:    scheduler.Retry,
		},
		{
			name:    "index cursor failure is transient",
			desired: &fakeDesired{ids: []ContentID{"S1"}},
			catalog: &fakeCatalog{hashes: hashes},
			index:   &fakeIndex{nextErr: fmt.Errorf("row error")},
			gate:    &fakeGate{ok: true},
			want:    scheduler.Retry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &commandLog{}
			engine := newTestEngine(tt.desired, tt.catalog, tt.index, cmds, tt.gate, nil)
			_, outcome := engine.Run(context.Background(), 128, false)
			assert.Equal(t, tt.want, outcome)
			assert.Empty(t, cmds.commands, "aborted pass must commit no commands")
		})
	}
}

func TestRun_EmptyDesiredSetSkipsHashFetch(t *testing.T) {
	// With nothing desired there is no remote hash call, and leftover
	// local records are removed.
	desired := &fakeDesired{}
	catalog := &fakeCatalog{}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h1", Status: StatusComplete},
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	_, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, 0, catalog.hashCalls)
	assert.Equal(t, []string{"remove S1/128", "resume"}, cmds.commands)
}

func TestRun_CommandFailureDoesNotAbort(t *testing.T) {
	// A single failed enqueue is logged and skipped; the rest of the
	// pass still runs and the next pass self-heals via re-diff.
	desired := &fakeDesired{ids: []ContentID{"S1", "S2"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{
		"S1/128": "h1",
		"S2/128": "h2",
	}}
	index := &fakeIndex{}
	cmds := &commandLog{failOn: map[SegmentPath]error{
		"S1/128": fmt.Errorf("queue full"),
	}}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, []string{"add S2/128 h2", "resume"}, cmds.commands)
	assert.Equal(t, 1, report.Added)
}

func TestRun_ReporterFailureIsSwallowed(t *testing.T) {
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{"S1/128": "h1"}}
	index := &fakeIndex{}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}
	reporter := &fakeReporter{err: fmt.Errorf("host gone")}

	engine := newTestEngine(desired, catalog, index, cmds, gate, reporter)
	_, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Len(t, reporter.published, 1)
}

func TestRun_FailedPassStillPublishes(t *testing.T) {
	// Every run publishes exactly one report, including runs that end in
	// Retry or Fail; the host sees the partial counts.
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{resolveErr: fmt.Errorf("catalog down")}
	index := &fakeIndex{}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}
	reporter := &fakeReporter{}

	engine := newTestEngine(desired, catalog, index, cmds, gate, reporter)
	_, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Retry, outcome)
	require.Len(t, reporter.published, 1)
	assert.Equal(t, 1, reporter.published[0].Desired)
	assert.Empty(t, cmds.commands)
}

func TestRun_NoReporterConfigured(t *testing.T) {
	// A pass without a reporter completes normally; the one-shot CLI runs
	// the engine this way.
	desired := &fakeDesired{ids: []ContentID{"S1"}}
	catalog := &fakeCatalog{hashes: map[SegmentPath]ContentHash{"S1/128": "h1"}}
	index := &fakeIndex{}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := NewEngine(desired, catalog, index, cmds, gate, nil, zap.NewNop())
	report, outcome := engine.Run(context.Background(), 128, false)

	assert.Equal(t, scheduler.Success, outcome)
	assert.Equal(t, 1, report.Added)
}

func TestRun_Convergence(t *testing.T) {
	// After one successful pass the command stream, applied to the local
	// set, yields exactly the desired paths with authoritative hashes.
	desired := &fakeDesired{ids: []ContentID{"S1", "S2", "S3"}}
	hashes := map[SegmentPath]ContentHash{
		"S1/128": "h1",
		"S2/128": "h2-new",
		"S3/128": "h3",
	}
	catalog := &fakeCatalog{hashes: hashes}
	index := &fakeIndex{recs: []DownloadRecord{
		{Path: "S1/128", Hash: "h1", Status: StatusComplete},  // satisfied
		{Path: "S2/128", Hash: "h2", Status: StatusComplete},  // stale
		{Path: "S9/128", Hash: "h9", Status: StatusComplete},  // undesired
	}}
	cmds := &commandLog{}
	gate := &fakeGate{ok: true}

	engine := newTestEngine(desired, catalog, index, cmds, gate, nil)
	_, outcome := engine.Run(context.Background(), 128, false)
	assert.Equal(t, scheduler.Success, outcome)

	// Replay commands over the initial local set.
	local := map[SegmentPath]ContentHash{
		"S1/128": "h1",
		"S2/128": "h2",
		"S9/128": "h9",
	}
	for _, cmd := range cmds.commands {
		var path SegmentPath
		var hash ContentHash
		if n, _ := fmt.Sscanf(cmd, "remove %s", &path); n == 1 {
			delete(local, path)
		} else if n, _ := fmt.Sscanf(cmd, "add %s %s", &path, &hash); n == 2 {
			local[path] = hash
		}
	}

	assert.Equal(t, map[SegmentPath]ContentHash(hashes), local)
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, SegmentPath("ocean-waves/128"), PathFor("ocean-waves", 128))
	assert.Equal(t, SegmentPath("S1/320"), PathFor("S1", 320))
}
