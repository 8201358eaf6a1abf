package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
)

// ProgressTracker renders one status line per dataset while the pipeline
// moves it through its stages (download, load, write). Counts are
// indeterminate since inputs are streamed, so lines show running totals
// rather than percentages.
type ProgressTracker struct {
	mu      sync.Mutex
	enabled bool
	order   []string
	lines   map[string]*lineState
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	drawn   int
}

type lineState struct {
	label   string
	stage   string
	count   int64
	unit    string
	done    bool
	doneMsg string
}

// NewProgressTracker creates a tracker. A disabled tracker ignores all
// updates, which keeps call sites unconditional.
func NewProgressTracker(enabled bool) *ProgressTracker {
	return &ProgressTracker{
		enabled: enabled,
		lines:   make(map[string]*lineState),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Update sets the current stage and running count for a dataset.
func (pt *ProgressTracker) Update(key, stage string, count int64, unit string) {
	if !pt.enabled {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()

	line, ok := pt.lines[key]
	if !ok {
		line = &lineState{label: key}
		pt.lines[key] = line
		pt.order = append(pt.order, key)
	}
	line.stage = stage
	line.count = count
	line.unit = unit

	pt.startRenderLoop()
}

// Complete marks a dataset's line as finished with a summary message.
func (pt *ProgressTracker) Complete(key, msg string) {
	if !pt.enabled {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()

	line, ok := pt.lines[key]
	if !ok {
		line = &lineState{label: key}
		pt.lines[key] = line
		pt.order = append(pt.order, key)
	}
	line.done = true
	line.doneMsg = msg

	pt.startRenderLoop()
}

// Stop ends the render loop and leaves the final state on screen.
func (pt *ProgressTracker) Stop() {
	if !pt.enabled {
		return
	}
	pt.mu.Lock()
	started := pt.started
	pt.mu.Unlock()
	if !started {
		return
	}

	close(pt.stopCh)
	<-pt.doneCh
}

// startRenderLoop is called with pt.mu held.
func (pt *ProgressTracker) startRenderLoop() {
	if pt.started {
		return
	}
	pt.started = true
	go pt.renderLoop()
}

func (pt *ProgressTracker) renderLoop() {
	defer close(pt.doneCh)

	fmt.Print("\033[?25l") // hide cursor

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-pt.stopCh:
			pt.render()
			fmt.Print("\033[?25h") // show cursor
			return
		case <-ticker.C:
			pt.render()
		}
	}
}

func (pt *ProgressTracker) render() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	// Move back up over the previously drawn block.
	if pt.drawn > 0 {
		fmt.Printf("\033[%dA", pt.drawn)
	}

	for _, key := range pt.order {
		line := pt.lines[key]
		fmt.Print("\r\033[K")
		if line.done {
			fmt.Printf("%s %s %s\n", color.GreenString("✓"), line.label, line.doneMsg)
		} else {
			fmt.Printf("%s %s: %s %s\n", color.CyanString("…"), line.label,
				formatStage(line.stage, line.count, line.unit), spinnerFrame())
		}
	}
	pt.drawn = len(pt.order)
}

func formatStage(stage string, count int64, unit string) string {
	if count <= 0 {
		return stage
	}
	return fmt.Sprintf("%s (%d %s)", stage, count, unit)
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

func spinnerFrame() string {
	idx := (time.Now().UnixMilli() / 100) % int64(len(spinnerFrames))
	return spinnerFrames[idx]
}
