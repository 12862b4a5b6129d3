package search

import "sync"

// Pager tracks the current page and whether another page exists
type Pager struct {
	mu          sync.Mutex
	page        int
	hasNextPage bool
}

// NewPager returns a pager on page 1 with no next page
func NewPager() *Pager {
	return &Pager{page: 1}
}

// Reset goes back to page 1 with no next page
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
	p.hasNextPage = false
}

// Page returns the current page, starting at 1
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// HasNextPage reports whether the lookahead found another page
func (p *Pager) HasNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasNextPage
}

// SetHasNext records the lookahead result
func (p *Pager) SetHasNext(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasNextPage = v
}

// CanNext reports whether Next would move
func (p *Pager) CanNext() bool {
	return p.HasNextPage()
}

// CanPrevious reports whether Previous would move
func (p *Pager) CanPrevious() bool {
	return p.Page() > 1
}

// Next advances one page if a next page exists
func (p *Pager) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasNextPage {
		return false
	}
	p.page++
	return true
}

// Previous goes back one page unless already on page 1
func (p *Pager) Previous() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}
