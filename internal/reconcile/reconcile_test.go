package reconcile

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shelf/internal/model"
)

var hobbit = model.Book{Title: "Hobbit", Author: "T", Pages: 295, Read: false}

func TestReconcileEmptyStoredReturnsDefaults(t *testing.T) {
	got := Reconcile(nil, []model.Book{hobbit})
	if diff := cmp.Diff([]model.Book{hobbit}, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestReconcileKeepsStoredReadFlag(t *testing.T) {
	stored := []model.Book{{Title: "Hobbit", Author: "T", Pages: 295, Read: true}}

	got := Reconcile(stored, []model.Book{hobbit})

	require.Len(t, got, 1)
	assert.True(t, got[0].Read)
	assert.Equal(t, "T", got[0].Author)
	assert.Equal(t, 295, got[0].Pages)
}

func TestReconcileUpdatesOtherFieldsFromDefaults(t *testing.T) {
	stored := []model.Book{{
		ID: "old", Title: "Hobbit", Author: "Someone Else", Pages: 10, Read: true,
		Extra: map[string]json.RawMessage{"note": json.RawMessage(`"x"`)},
	}}
	def := hobbit
	def.ID = model.DefaultID("Hobbit")

	got := Reconcile(stored, []model.Book{def})

	want := def
	want.Read = true
	if diff := cmp.Diff([]model.Book{want}, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestReconcileAppendsUserBooks(t *testing.T) {
	diary := model.Book{Title: "My Diary", Author: "Me", Pages: 10, Read: false}

	got := Reconcile([]model.Book{diary}, []model.Book{hobbit})

	if diff := cmp.Diff([]model.Book{hobbit, diary}, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestReconcileOrder(t *testing.T) {
	defaults := []model.Book{
		{Title: "A", Author: "a", Pages: 1},
		{Title: "B", Author: "b", Pages: 2},
	}
	stored := []model.Book{
		{Title: "X", Author: "x", Pages: 3},
		{Title: "B", Author: "b", Pages: 2, Read: true},
		{Title: "Y", Author: "y", Pages: 4, Read: true},
	}

	got := Reconcile(stored, defaults)

	titles := make([]string, len(got))
	for i, b := range got {
		titles[i] = b.Title
	}
	assert.Equal(t, []string{"A", "B", "X", "Y"}, titles)
	assert.False(t, got[0].Read)
	assert.True(t, got[1].Read)
}

func TestReconcileLaterStoredDuplicateWins(t *testing.T) {
	stored := []model.Book{
		{Title: "Hobbit", Read: true},
		{Title: "Hobbit", Read: false},
	}
	got := Reconcile(stored, []model.Book{hobbit})
	require.Len(t, got, 1)
	assert.False(t, got[0].Read)
}

func TestReconcileKeepsUserDuplicates(t *testing.T) {
	diary := model.Book{Title: "My Diary", Author: "Me", Pages: 10}
	got := Reconcile([]model.Book{diary, diary}, []model.Book{hobbit})
	assert.Len(t, got, 3)
}

func TestReconcileDuplicateDefaultsAreNotCollapsed(t *testing.T) {
	defaults := []model.Book{hobbit, hobbit}
	got := Reconcile(nil, defaults)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"Hobbit"}, DuplicateTitles(defaults))
}

func TestReconcileDoesNotAliasInputs(t *testing.T) {
	stored := []model.Book{{Title: "Mine", Extra: map[string]json.RawMessage{"k": json.RawMessage(`1`)}}}
	defaults := []model.Book{hobbit}

	got := Reconcile(stored, defaults)
	got[0].Read = true
	got[1].Extra["k"] = json.RawMessage(`2`)

	assert.False(t, defaults[0].Read)
	assert.Equal(t, `1`, string(stored[0].Extra["k"]))
}

func TestDuplicateTitlesNone(t *testing.T) {
	assert.Empty(t, DuplicateTitles([]model.Book{{Title: "A"}, {Title: "B"}}))
}

// randomBooks draws titles from a small pool so collisions with defaults are common.
func randomBooks(r *rand.Rand, n int, unique bool) []model.Book {
	var out []model.Book
	used := map[string]bool{}
	for i := 0; i < n; i++ {
		title := fmt.Sprintf("T%d", r.Intn(8))
		if unique && used[title] {
			continue
		}
		used[title] = true
		out = append(out, model.Book{
			Title:  title,
			Author: fmt.Sprintf("A%d", r.Intn(3)),
			Pages:  1 + r.Intn(500),
			Read:   r.Intn(2) == 0,
		})
	}
	return out
}

func TestReconcileProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		defaults := randomBooks(r, 1+r.Intn(5), true)
		stored := randomBooks(r, r.Intn(8), false)

		once := Reconcile(stored, defaults)
		twice := Reconcile(once, defaults)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("not idempotent for stored=%v defaults=%v (-once +twice):\n%s", stored, defaults, diff)
		}

		require.GreaterOrEqual(t, len(once), len(defaults))

		last := map[string]model.Book{}
		for _, b := range stored {
			last[b.Title] = b
		}
		defaultTitles := map[string]bool{}
		for j, d := range defaults {
			defaultTitles[d.Title] = true
			want := d
			if ex, ok := last[d.Title]; ok {
				want.Read = ex.Read
			}
			assert.Equal(t, want, once[j])
		}

		var extras []model.Book
		for _, b := range stored {
			if !defaultTitles[b.Title] {
				extras = append(extras, b)
			}
		}
		assert.Equal(t, len(defaults)+len(extras), len(once))
		for j, b := range extras {
			assert.Equal(t, b, once[len(defaults)+j])
		}
	}
}
