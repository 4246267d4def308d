package extract

import "testing"

const searchPageHTML = `
<html><body>
  <div class="s-result-item" data-asin="B001AAAA"><h2><a href="/dp/B001AAAA/ref=sr_1">One</a></h2></div>
  <div class="s-result-item" data-asin="">sponsored spacer</div>
  <div class="s-result-item" data-asin="B002BBBB"><h2><a href="https://www.amazon.com/dp/B002BBBB">Two</a></h2></div>
  <div class="s-result-item" data-asin="B003CCCC"><h2>no link</h2></div>
  <div class="s-result-item" data-asin="B004DDDD"><h2><a href="/dp/B004DDDD">Four</a></h2></div>
</body></html>`

func TestSearchResults(t *testing.T) {
	doc, err := NewDocument(searchPageHTML)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	results := SearchResults(doc, "https://www.amazon.com/", 0)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3: %v", len(results), results)
	}

	want := []SearchResult{
		{ASIN: "B001AAAA", Rank: 1, URL: "https://www.amazon.com/dp/B001AAAA/ref=sr_1"},
		{ASIN: "B002BBBB", Rank: 2, URL: "https://www.amazon.com/dp/B002BBBB"},
		{ASIN: "B004DDDD", Rank: 3, URL: "https://www.amazon.com/dp/B004DDDD"},
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("results[%d] = %+v, want %+v", i, results[i], w)
		}
	}
}

func TestSearchResultsMax(t *testing.T) {
	doc, err := NewDocument(searchPageHTML)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}

	results := SearchResults(doc, "https://www.amazon.com", 2)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Rank != 2 {
		t.Errorf("rank = %d, want 2", results[1].Rank)
	}
}

func TestSearchResultsEmpty(t *testing.T) {
	doc, err := NewDocument("<html><body><p>no results for this search</p></body></html>")
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if results := SearchResults(doc, "https://www.amazon.com", 0); len(results) != 0 {
		t.Errorf("got %v, want none", results)
	}
}
