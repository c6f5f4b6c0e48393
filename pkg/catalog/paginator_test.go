package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedFetcher serves a fixed cursor-keyed page script and can fail on a
// chosen cursor.
type scriptedFetcher struct {
	pages    map[string]*Page
	failOn   string
	failWith error
	calls    int
}

func (f *scriptedFetcher) FetchPage(ctx context.Context, rawURL, cursor string) (*Page, error) {
	f.calls++
	if f.failWith != nil && cursor == f.failOn {
		return nil, f.failWith
	}
	page, ok := f.pages[cursor]
	if !ok {
		return nil, errors.New("unknown cursor " + cursor)
	}
	return page, nil
}

func newTestPaginator(f PageFetcher) *Paginator {
	return NewPaginator(f, time.Millisecond)
}

func TestFetchAllSinglePage(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"": {Data: []Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}},
		},
	}

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, NewDedupSet(nil))
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
	if stats.NewItems != 2 || stats.Duplicates != 0 || stats.Pages != 1 {
		t.Errorf("stats = %+v, want 2 new, 0 dup, 1 page", stats)
	}
}

func TestFetchAllFollowsCursorChain(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"":   {Data: []Item{{ID: 1, Name: "A"}}, NextPageCursor: "c1"},
			"c1": {Data: []Item{{ID: 2, Name: "B"}}, NextPageCursor: "c2"},
			"c2": {Data: []Item{{ID: 3, Name: "C"}}},
		},
	}

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, NewDedupSet(nil))
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	if stats.Pages != 3 {
		t.Errorf("Pages = %d, want 3", stats.Pages)
	}
	for i, want := range []int64{1, 2, 3} {
		if items[i].ID != want {
			t.Errorf("item %d id = %d, want %d", i, items[i].ID, want)
		}
	}
}

func TestFetchAllStopsOnWhitespaceCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty cursor", cursor: ""},
		{name: "spaces only", cursor: "   "},
		{name: "tab and newline", cursor: "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &scriptedFetcher{
				pages: map[string]*Page{
					"": {Data: []Item{{ID: 1, Name: "A"}}, NextPageCursor: tt.cursor},
				},
			}

			_, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
				Source{Name: "test"}, NewDedupSet(nil))
			if err != nil {
				t.Fatalf("FetchAll failed: %v", err)
			}
			if stats.Pages != 1 {
				t.Errorf("Pages = %d, want 1 (pagination should stop)", stats.Pages)
			}
		})
	}
}

func TestFetchAllDedupsAcrossPages(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"":   {Data: []Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, NextPageCursor: "c1"},
			"c1": {Data: []Item{{ID: 2, Name: "B"}, {ID: 3, Name: "C"}}},
		},
	}

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, NewDedupSet(nil))
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	if stats.NewItems != 3 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v, want 3 new, 1 duplicate", stats)
	}
}

func TestFetchAllRespectsSeededSet(t *testing.T) {
	// The worked merge case: id 1 already persisted, page returns ids 1 and 2.
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"": {Data: []Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}},
		},
	}

	seen := NewDedupSet([]Item{{ID: 1, Name: "A"}})

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, seen)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("items = %+v, want only id 2", items)
	}
	if stats.NewItems != 1 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v, want 1 new, 1 duplicate", stats)
	}
}

func TestFetchAllSharedSetAcrossSources(t *testing.T) {
	first := &scriptedFetcher{
		pages: map[string]*Page{
			"": {Data: []Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}},
		},
	}
	second := &scriptedFetcher{
		pages: map[string]*Page{
			"": {Data: []Item{{ID: 2, Name: "B"}, {ID: 3, Name: "C"}}},
		},
	}

	seen := NewDedupSet(nil)

	itemsA, _, err := newTestPaginator(first).FetchAll(context.Background(),
		Source{Name: "a"}, seen)
	if err != nil {
		t.Fatalf("first FetchAll failed: %v", err)
	}
	itemsB, statsB, err := newTestPaginator(second).FetchAll(context.Background(),
		Source{Name: "b"}, seen)
	if err != nil {
		t.Fatalf("second FetchAll failed: %v", err)
	}

	if len(itemsA) != 2 {
		t.Errorf("first source got %d items, want 2", len(itemsA))
	}
	if len(itemsB) != 1 || itemsB[0].ID != 3 {
		t.Errorf("second source items = %+v, want only id 3", itemsB)
	}
	if statsB.Duplicates != 1 {
		t.Errorf("second source duplicates = %d, want 1", statsB.Duplicates)
	}
}

func TestFetchAllReturnsPartialOnError(t *testing.T) {
	fetchErr := errors.New("upstream gone")
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"": {Data: []Item{{ID: 1, Name: "A"}}, NextPageCursor: "c1"},
		},
		failOn:   "c1",
		failWith: fetchErr,
	}

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, NewDedupSet(nil))

	if !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want %v", err, fetchErr)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("partial items = %+v, want first page's item", items)
	}
	if stats.NewItems != 1 || stats.Pages != 1 {
		t.Errorf("stats = %+v, want 1 new item from 1 page", stats)
	}
}

func TestFetchAllContextCancelledBetweenPages(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"":   {Data: []Item{{ID: 1, Name: "A"}}, NextPageCursor: "c1"},
			"c1": {Data: []Item{{ID: 2, Name: "B"}}},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, _, err := NewPaginator(fetcher, time.Minute).FetchAll(ctx,
		Source{Name: "test"}, NewDedupSet(nil))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want the first page before cancellation", len(items))
	}
}

func TestFetchAllEmptyDataField(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: map[string]*Page{
			"": {},
		},
	}

	items, stats, err := newTestPaginator(fetcher).FetchAll(context.Background(),
		Source{Name: "test"}, NewDedupSet(nil))
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 0 || stats.NewItems != 0 {
		t.Errorf("items = %+v, stats = %+v, want empty", items, stats)
	}
}
