package client

import (
	"sort"
	"sync"
	"time"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that came due, in order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due, pending []*manualTimer
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// recordingView keeps the latest output of every view call.
type recordingView struct {
	mu            sync.Mutex
	tab           Tab
	loading       map[Tab]bool
	products      *ProductPage
	appended      []bool
	productLoads  int
	categories    *CategoryPage
	modal         *Modal
	fieldErrors   map[string][]string
	hidden        int
	notifications []Notification
	dismissed     []string
	editors       []InlineEditor
	fields        map[inlineKey]string
}

func newRecordingView() *recordingView {
	return &recordingView{
		loading: map[Tab]bool{},
		fields:  map[inlineKey]string{},
	}
}

func (v *recordingView) ShowTab(tab Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = tab
}

func (v *recordingView) SetLoading(tab Tab, loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading[tab] = loading
}

func (v *recordingView) RenderProducts(page *ProductPage, appended bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.products = page
	v.appended = append(v.appended, appended)
	v.productLoads++
}

func (v *recordingView) RenderCategories(page *CategoryPage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.categories = page
}

func (v *recordingView) ShowModal(m Modal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = &m
	v.fieldErrors = nil
}

func (v *recordingView) ShowFieldErrors(fields map[string][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrors = fields
}

func (v *recordingView) HideModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = nil
	v.hidden++
}

func (v *recordingView) ShowNotification(n Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, n)
}

func (v *recordingView) DismissNotification(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dismissed = append(v.dismissed, id)
}

func (v *recordingView) ShowInlineEditor(e InlineEditor) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editors = append(v.editors, e)
}

func (v *recordingView) RenderField(productID uint, field Field, display string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields[inlineKey{productID, field}] = display
}

func (v *recordingView) lastNotification() Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.notifications) == 0 {
		return Notification{}
	}
	return v.notifications[len(v.notifications)-1]
}

func (v *recordingView) productNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.products == nil {
		return nil
	}
	names := make([]string, 0, len(v.products.Products))
	for _, p := range v.products.Products {
		names = append(names, p.Name)
	}
	return names
}
