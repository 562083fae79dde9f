package display

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/engine"
)

// ============================================================================
// VIEW-STATE CONTROLLER — Per-item mode and percent overrides
// ============================================================================
// State lives in a record keyed by item id, separate from the payload:
//
//   effective mode    = override ?? suggested, then the matrix/pie fallback
//   effective percent = override ?? (suggested && payload has percent data)
//
// A change to one item is visible to the very next projection of that item
// and to nothing else.
// ============================================================================

// ErrUnknownItem is returned for ids the controller has never registered.
var ErrUnknownItem = errors.New("unknown display item")

type itemState struct {
	item    *Item
	mode    *engine.ViewMode
	percent *bool
}

// Controller owns the view state of every registered item.
type Controller struct {
	mu     sync.Mutex
	states map[uuid.UUID]*itemState
	cache  *engine.Cache
	policy *engine.FormatPolicy
	log    *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPolicy sets the formatting policy used by Render.
func WithPolicy(p *engine.FormatPolicy) ControllerOption {
	return func(c *Controller) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithCache shares a projection cache between controllers.
func WithCache(cache *engine.Cache) ControllerOption {
	return func(c *Controller) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates an empty controller.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		states: make(map[uuid.UUID]*itemState),
		cache:  engine.NewCache(0),
		policy: engine.DefaultPolicy(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the formatting policy in use.
func (c *Controller) Policy() *engine.FormatPolicy { return c.policy }

// ============================================================================
// REGISTRATION
// ============================================================================

// Register starts tracking item with no overrides. Registering the same item
// twice keeps its existing state.
func (c *Controller) Register(item *Item) {
	if item == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.states[item.ID]; ok {
		return
	}
	c.states[item.ID] = &itemState{item: item}
	c.log.Debug("item registered",
		zap.String("id", item.ID.String()),
		zap.Stringer("shape", item.Shape.Kind),
		zap.Bool("has_percent", item.Shape.HasPercent))
}

// RegisterMessage registers every item carried by msg.
func (c *Controller) RegisterMessage(msg *Message) {
	if msg == nil {
		return
	}
	for _, item := range msg.Items {
		c.Register(item)
	}
}

// Forget drops the state of an item.
func (c *Controller) Forget(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, id)
}

// Item returns a registered item.
func (c *Controller) Item(id uuid.UUID) (*Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	return st.item, nil
}

func (c *Controller) lookup(id uuid.UUID) (*itemState, error) {
	st, ok := c.states[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownItem, "item %s", id)
	}
	return st, nil
}

// ============================================================================
// EFFECTIVE STATE
// ============================================================================

// EffectiveMode is the mode the item renders with.
func (c *Controller) EffectiveMode(id uuid.UUID) (engine.ViewMode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.lookup(id)
	if err != nil {
		return engine.ModeBar, err
	}
	return st.effectiveMode(), nil
}

// EffectivePercent reports whether the item renders percentages.
func (c *Controller) EffectivePercent(id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.lookup(id)
	if err != nil {
		return false, err
	}
	return st.effectivePercent(), nil
}

// PieOffered reports whether the pie control should be shown.
func (c *Controller) PieOffered(id uuid.UUID) (bool, error) {
	item, err := c.Item(id)
	if err != nil {
		return false, err
	}
	return !item.Shape.IsMatrix, nil
}

// PercentOffered reports whether the percent control should be shown.
func (c *Controller) PercentOffered(id uuid.UUID) (bool, error) {
	item, err := c.Item(id)
	if err != nil {
		return false, err
	}
	return item.HasPercent(), nil
}

func (st *itemState) effectiveMode() engine.ViewMode {
	mode := st.item.SuggestedMode
	if st.mode != nil {
		mode = *st.mode
	}
	return engine.EffectiveMode(mode, st.item.Shape.Kind)
}

func (st *itemState) effectivePercent() bool {
	if st.percent != nil {
		return *st.percent
	}
	return st.item.SuggestedPercent && st.item.HasPercent()
}

// ============================================================================
// STATE CHANGES
// ============================================================================

// SetMode overrides the item's mode. The matrix/pie fallback still applies
// when the mode is read back.
func (c *Controller) SetMode(id uuid.UUID, mode engine.ViewMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		mode = engine.ModeBar
	}
	st.mode = &mode
	c.log.Debug("mode set",
		zap.String("id", id.String()),
		zap.String("requested", string(mode)),
		zap.String("effective", string(st.effectiveMode())))
	return nil
}

// TogglePercent flips the item's percent setting. Items without percent data
// are left untouched.
func (c *Controller) TogglePercent(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, err := c.lookup(id)
	if err != nil {
		return err
	}
	if !st.item.HasPercent() {
		c.log.Debug("percent toggle ignored", zap.String("id", id.String()))
		return nil
	}
	next := !st.effectivePercent()
	st.percent = &next
	c.log.Debug("percent toggled", zap.String("id", id.String()), zap.Bool("percent", next))
	return nil
}

// ============================================================================
// PROJECTION + RENDER
// ============================================================================

// Project returns the projection for the item's current state.
func (c *Controller) Project(id uuid.UUID) (*engine.Projection, error) {
	c.mu.Lock()
	st, err := c.lookup(id)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	item := st.item
	mode := st.effectiveMode()
	percent := st.effectivePercent()
	c.mu.Unlock()

	return c.cache.Get(item.Fingerprint(), mode, percent, func() *engine.Projection {
		return engine.ProjectShape(item.Shape, mode, percent)
	}), nil
}

// Render returns the render-ready view for the item's current state.
func (c *Controller) Render(id uuid.UUID) (*engine.View, error) {
	p, err := c.Project(id)
	if err != nil {
		return nil, err
	}
	item, err := c.Item(id)
	if err != nil {
		return nil, err
	}

	view := engine.Render(p, c.policy, item.Title)
	view.PercentOffered = item.HasPercent()
	if view.NoData {
		c.log.Debug("no data to display",
			zap.String("id", id.String()),
			zap.String("status", string(view.Status)))
	}
	return view, nil
}
