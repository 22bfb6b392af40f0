package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/osutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

// Helper to open a store in a fresh temporary directory
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DefaultDriver, filepath.Join(t.TempDir(), DatabaseFile), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreate(t *testing.T, s *Store, e entry.Entry) entry.Entry {
	t.Helper()
	created, err := s.Create(e)
	require.NoError(t, err)
	return created
}

// drain returns a function that collects the cursor returned by a query:
//
//	drain(t)(s.ByEmployee("Ann"))
func drain(t *testing.T) func(*Cursor, error) []entry.Entry {
	t.Helper()
	return func(c *Cursor, err error) []entry.Entry {
		t.Helper()
		require.NoError(t, err)
		entries, err := Collect(c)
		require.NoError(t, err)
		return entries
	}
}

func names(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.EmployeeName)
	}
	return out
}

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Timestamp: day(1991, time.December, 30), EmployeeName: "Jeremy", TaskTitle: "Task", TimeSpent: 90, TaskNotes: "None"},
		{Timestamp: day(2024, time.March, 1), EmployeeName: "Ann", TaskTitle: "Review", TimeSpent: 30, TaskNotes: "Reviewed Jeremy's code"},
		{Timestamp: day(1991, time.December, 30), EmployeeName: "Anne", TaskTitle: "Deploy", TimeSpent: 90, TaskNotes: "100% done"},
	}
}

func TestOpen_CreatesDatabaseAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DatabaseFile)

	s, err := Open(DefaultDriver, path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	assert.FileExists(t, path)
	assert.Equal(t, path, s.Path())
	assert.Equal(t, DefaultDriver, s.Driver())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_ExistingDatabaseKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseFile)

	s, err := Open(DefaultDriver, path, nil)
	require.NoError(t, err)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}
	require.NoError(t, s.Close())

	for i := 0; i < 2; i++ {
		reopened, err := Open(DefaultDriver, path, nil)
		require.NoError(t, err)

		n, err := reopened.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, n, "reopen %d must not alter entries", i+1)
		require.NoError(t, reopened.Close())
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), DatabaseFile), nil)
	assert.Error(t, err)
}

func TestOpen_DirectoryInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Open(DefaultDriver, filepath.Join(blocker, DatabaseFile), nil)
	assert.Error(t, err)
}

func TestCreate_AssignsIncreasingIDs(t *testing.T) {
	s := openTestStore(t)

	var last int64
	for _, e := range sampleEntries() {
		created := mustCreate(t, s, e)
		assert.Greater(t, created.ID, last)
		last = created.ID
	}
}

func TestCreate_DefaultsTimestampToToday(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return time.Date(2024, time.June, 15, 17, 45, 0, 0, time.Local) }

	created := mustCreate(t, s, entry.Entry{EmployeeName: "Ann", TaskTitle: "T", TimeSpent: 1, TaskNotes: "None"})
	assert.True(t, created.Timestamp.Equal(day(2024, time.June, 15)), "got %v", created.Timestamp)
}

func TestCreate_DropsTimeOfDay(t *testing.T) {
	s := openTestStore(t)

	created := mustCreate(t, s, entry.Entry{
		Timestamp:    time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local),
		EmployeeName: "Ann", TaskTitle: "T", TimeSpent: 1, TaskNotes: "None",
	})
	assert.True(t, created.Timestamp.Equal(day(2024, time.June, 15)))

	found := drain(t)(s.ByDate(day(2024, time.June, 15)))
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
}

func TestAll_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	var created []entry.Entry
	for _, e := range sampleEntries() {
		created = append(created, mustCreate(t, s, e))
	}

	got := drain(t)(s.All())
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

// openDriverStore opens a store with driver, skipping when the driver is
// unusable in this build (go-sqlite3 without cgo)
func openDriverStore(t *testing.T, driver string) *Store {
	t.Helper()
	s, err := Open(driver, filepath.Join(t.TempDir(), DatabaseFile), nil)
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skipf("driver %s needs cgo: %v", driver, err)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestQueries_EachDriver(t *testing.T) {
	for _, driver := range []string{DefaultDriver, "sqlite3"} {
		t.Run(driver, func(t *testing.T) {
			s := openDriverStore(t, driver)
			assert.Equal(t, driver, s.Driver())

			var created []entry.Entry
			for _, e := range sampleEntries() {
				created = append(created, mustCreate(t, s, e))
			}

			if diff := cmp.Diff(created, drain(t)(s.All())); diff != "" {
				t.Errorf("All() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, []string{"Jeremy", "Anne"}, names(drain(t)(s.ByDate(day(1991, time.December, 30)))))
			assert.Equal(t, []string{"Ann"}, names(drain(t)(s.ByEmployee("Ann"))))
			assert.Equal(t, []string{"Jeremy", "Anne"}, names(drain(t)(s.ByTimeSpent(90))))

			assert.Equal(t, []string{"Jeremy", "Ann"}, names(drain(t)(s.ByTerm("jEREMY"))))
			assert.Equal(t, []string{"Anne"}, names(drain(t)(s.ByTerm("%"))))
			assert.Empty(t, drain(t)(s.ByTerm("_")))
			assert.Empty(t, drain(t)(s.ByTerm(`\`)))

			h, err := s.Health()
			require.NoError(t, err)
			assert.True(t, h.IntegrityOK)
			assert.Equal(t, driver, h.Driver)
		})
	}
}

func TestAll_Empty(t *testing.T) {
	s := openTestStore(t)

	got := drain(t)(s.All())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestByEmployee_ExactMatch(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	assert.Equal(t, []string{"Ann"}, names(drain(t)(s.ByEmployee("Ann"))))
	assert.Empty(t, drain(t)(s.ByEmployee("ann")))
	assert.Empty(t, drain(t)(s.ByEmployee("An")))
	assert.Empty(t, drain(t)(s.ByEmployee("Nobody")))
}

func TestByDate(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	got := drain(t)(s.ByDate(day(1991, time.December, 30)))
	assert.Equal(t, []string{"Jeremy", "Anne"}, names(got))

	// Time of day in the query is ignored
	got = drain(t)(s.ByDate(time.Date(1991, time.December, 30, 15, 0, 0, 0, time.Local)))
	assert.Len(t, got, 2)

	assert.Empty(t, drain(t)(s.ByDate(day(1991, time.December, 31))))
}

func TestByTimeSpent(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	assert.Equal(t, []string{"Jeremy", "Anne"}, names(drain(t)(s.ByTimeSpent(90))))
	assert.Equal(t, []string{"Ann"}, names(drain(t)(s.ByTimeSpent(30))))
	assert.Empty(t, drain(t)(s.ByTimeSpent(9)))
}

func TestByTerm(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{"name substring", "Ann", []string{"Ann", "Anne"}},
		{"matches name and notes once", "Jeremy", []string{"Jeremy", "Ann"}},
		{"case insensitive", "jEREMY", []string{"Jeremy", "Ann"}},
		{"notes only", "code", []string{"Ann"}},
		{"percent is literal", "%", []string{"Anne"}},
		{"underscore is literal", "_", []string{}},
		{"backslash is literal", `\`, []string{}},
		{"no match", "xyz", []string{}},
		{"title is not searched", "Deploy", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(drain(t)(s.ByTerm(tt.term))))
		})
	}
}

func TestByTerm_BothFieldsMatchYieldsOneResult(t *testing.T) {
	s := openTestStore(t)
	mustCreate(t, s, entry.Entry{
		Timestamp: day(2024, time.January, 1), EmployeeName: "Stuff", TaskTitle: "T", TimeSpent: 1, TaskNotes: "Stuff",
	})

	got := drain(t)(s.ByTerm("Stuff"))
	assert.Len(t, got, 1)
}

func TestCursor_SinglePass(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	c, err := s.All()
	require.NoError(t, err)

	count := 0
	for c.Next() {
		count++
	}
	require.NoError(t, c.Err())
	assert.Equal(t, 3, count)

	assert.False(t, c.Next(), "an exhausted cursor does not restart")
	assert.NoError(t, c.Close())
}

func TestCursor_CloseEarly(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	c, err := s.All()
	require.NoError(t, err)
	require.True(t, c.Next())
	assert.Equal(t, "Jeremy", c.Entry().EmployeeName)

	require.NoError(t, c.Close())
	assert.False(t, c.Next())
	assert.NoError(t, c.Close(), "second close is a no-op")
}

func TestCursor_IsLazy(t *testing.T) {
	s := openTestStore(t)
	mustCreate(t, s, sampleEntries()[0])

	c, err := s.All()
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	// Entries are materialized only on Next
	assert.Equal(t, entry.Entry{}, c.Entry())
	require.True(t, c.Next())
	assert.Equal(t, "Jeremy", c.Entry().EmployeeName)
}

func TestClosedStore(t *testing.T) {
	s, err := Open(DefaultDriver, filepath.Join(t.TempDir(), DatabaseFile), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	_, err = s.Create(sampleEntries()[0])
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.All()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Count()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Health()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Backup()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHealth(t *testing.T) {
	s := openTestStore(t)
	for _, e := range sampleEntries() {
		mustCreate(t, s, e)
	}

	h, err := s.Health()
	require.NoError(t, err)
	assert.True(t, h.IntegrityOK)
	assert.Empty(t, h.Problems)
	assert.Equal(t, 3, h.Entries)
	assert.Equal(t, s.Path(), h.Path)
	assert.Equal(t, DefaultDriver, h.Driver)
}

type mockPathProvider struct {
	userConfigDirFn func() (string, error)
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	return m.userConfigDirFn()
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func TestGetStoragePath(t *testing.T) {
	tmpDir := t.TempDir()
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
	})

	path, err := GetStoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, osutil.AppName, DatabaseFile), path)
	assert.DirExists(t, filepath.Dir(path))
}

func TestGetStoragePath_Error(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})

	_, err := GetStoragePath()
	assert.ErrorIs(t, err, os.ErrPermission)
}
