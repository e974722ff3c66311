package widget

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagecopy"
	"github.com/google/uuid"
)

// State is the attachment state of a Controller.
type State struct {
	Attached     bool
	MountPointID string
}

// String renders the state as UNATTACHED or ATTACHED(id).
func (s State) String() string {
	if !s.Attached {
		return "UNATTACHED"
	}
	return "ATTACHED(" + s.MountPointID + ")"
}

// Controller keeps at most one widget mount attached to the host page.
//
// Every method must be called from the loop that owns the scheduler.
type Controller struct {
	host    pagecopy.MountHost
	sched   pagecopy.Scheduler
	profile *pagecopy.Profile
	options *pagecopy.Options
	logger  *slog.Logger

	retryDelays []time.Duration
	resizeDelay time.Duration
	narrowDelay time.Duration
	narrowWidth int

	mount    *pagecopy.MountRecord
	attempts int
	retry    pagecopy.Timer
	delayed  pagecopy.Timer
	resize   pagecopy.Timer
	created  int

	// now and newID are replaceable for tests.
	now   func() time.Time
	newID func() string
}

// NewController creates a Controller in the UNATTACHED state.
func NewController(host pagecopy.MountHost, sched pagecopy.Scheduler, cfg Config, logger *slog.Logger) *Controller {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:        host,
		sched:       sched,
		profile:     cfg.Profile,
		options:     cfg.Options,
		logger:      logger,
		retryDelays: cfg.RetryDelays,
		resizeDelay: cfg.ResizeDelay,
		narrowDelay: cfg.NarrowDelay,
		narrowWidth: cfg.NarrowWidth,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// State reports the current attachment state.
func (c *Controller) State() State {
	if c.mount == nil {
		return State{}
	}
	return State{Attached: true, MountPointID: c.mount.MountPointID}
}

// Mount returns the live mount record, or nil when unattached.
func (c *Controller) Mount() *pagecopy.MountRecord {
	return c.mount
}

// Created returns how many mounts the controller has created so far.
func (c *Controller) Created() int {
	return c.created
}

// ResolveAndAttach starts a fresh attachment cycle. It attaches to the
// first mount region that resolves, does nothing when the current mount is
// already nested in that region, and schedules bounded retries when no
// region exists yet. It reports whether a mount is attached on return.
func (c *Controller) ResolveAndAttach() bool {
	c.attempts = 0
	return c.attach()
}

func (c *Controller) attach() bool {
	region, selector := c.resolve()
	if region == nil {
		c.Detach()
		c.scheduleRetry()
		return false
	}
	c.stopRetry()

	if c.mount != nil {
		if c.host.Contains(region, c.mount.Owned) {
			return true
		}
		c.logger.Debug("attach: mount orphaned", "mount", c.mount.MountPointID, "instance", c.mount.InstanceID)
		c.Detach()
	}

	spec := pagecopy.MountSpec{
		ID:         pagecopy.MountID,
		InstanceID: c.newID(),
		Style:      c.options.ContainerStyle(),
		Actions:    c.options.Actions(),
	}
	owned, err := c.host.Mount(region, spec)
	if err != nil {
		c.logger.Warn("attach: mount failed", "region", selector, "err", err)
		c.scheduleRetry()
		return false
	}

	c.mount = &pagecopy.MountRecord{
		MountPointID: selector,
		InstanceID:   spec.InstanceID,
		Host:         region,
		Owned:        owned,
		MountedAt:    c.now(),
	}
	c.created++
	c.logger.Debug("attach: mounted", "region", selector, "instance", spec.InstanceID)
	return true
}

// resolve returns the first live mount region and the selector that found it.
func (c *Controller) resolve() (pagecopy.ContentNode, string) {
	for _, sel := range c.profile.Mount {
		if n := c.host.Find(nil, sel); n != nil {
			return n, sel
		}
	}
	return nil, ""
}

func (c *Controller) scheduleRetry() {
	if c.retry != nil {
		return
	}
	if c.attempts >= len(c.retryDelays) {
		c.logger.Debug("attach: no mount region, giving up", "attempts", c.attempts)
		return
	}
	d := c.retryDelays[c.attempts]
	c.attempts++
	c.retry = c.sched.After(d, func() {
		c.retry = nil
		c.attach()
	})
}

func (c *Controller) stopRetry() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
}

// Detach removes the mount. It is a no-op when unattached.
func (c *Controller) Detach() {
	if c.mount == nil {
		return
	}
	rec := c.mount
	c.mount = nil
	if err := c.host.Unmount(rec.Owned); err != nil {
		c.logger.Warn("detach: unmount failed", "instance", rec.InstanceID, "err", err)
	}
	c.logger.Debug("detach: unmounted", "instance", rec.InstanceID)
}

// OnNavigate reacts to a logical page change: pending retries from the
// previous page are invalidated, the mount is torn down and a new cycle
// starts. Narrow viewports wait for their sidebar to re-render first.
func (c *Controller) OnNavigate() {
	c.stopRetry()
	c.stopDelayed()
	c.Detach()
	c.attempts = 0

	if w := c.host.ViewportWidth(); w > 0 && w <= c.narrowWidth {
		c.delayed = c.sched.After(c.narrowDelay, func() {
			c.delayed = nil
			c.attach()
		})
		return
	}
	c.attach()
}

// OnResize schedules a visibility re-evaluation, coalescing bursts.
func (c *Controller) OnResize() {
	if c.resize != nil {
		c.resize.Stop()
	}
	c.resize = c.sched.After(c.resizeDelay, func() {
		c.resize = nil
		c.Reevaluate()
	})
}

// Reevaluate attaches when the resolved region is visible but holds no
// mount, and detaches when the region is gone or hidden.
func (c *Controller) Reevaluate() {
	region, _ := c.resolve()
	visible := region != nil && c.host.Visible(region)
	nested := c.mount != nil && region != nil && c.host.Contains(region, c.mount.Owned)

	switch {
	case visible && !nested:
		c.ResolveAndAttach()
	case !visible && c.mount != nil:
		c.logger.Debug("reevaluate: mount region hidden")
		c.Detach()
	}
}

// Close cancels pending timers and detaches.
func (c *Controller) Close() {
	c.stopRetry()
	c.stopDelayed()
	if c.resize != nil {
		c.resize.Stop()
		c.resize = nil
	}
	c.Detach()
}

func (c *Controller) stopDelayed() {
	if c.delayed != nil {
		c.delayed.Stop()
		c.delayed = nil
	}
}
