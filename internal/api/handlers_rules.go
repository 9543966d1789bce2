// handlers_rules.go - Parse-rule configuration handlers
package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/parser"
)

// RulesHandlerImpl implements RulesHandler and doubles as the
// RulesProvider for the ingest handler.
type RulesHandlerImpl struct {
	mu    sync.RWMutex
	rules *parser.Rules
}

// NewRulesHandler creates a rules handler seeded with initial rules.
// A nil initial set falls back to the defaults.
func NewRulesHandler(initial *parser.Rules) *RulesHandlerImpl {
	if initial == nil {
		initial = parser.DefaultRules()
	}
	return &RulesHandlerImpl{rules: initial}
}

// Current returns the active parse rules.
func (h *RulesHandlerImpl) Current() *parser.Rules {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rules
}

// HandleGetParseRules returns the active parse rules
func (h *RulesHandlerImpl) HandleGetParseRules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Current())
}

// HandleUpdateParseRules replaces the active parse rules
func (h *RulesHandlerImpl) HandleUpdateParseRules(c echo.Context) error {
	rules := &parser.Rules{}
	if err := c.Bind(rules); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if err := rules.Validate(); err != nil {
		return NewBadRequestError("invalid parse rules", err)
	}

	h.mu.Lock()
	h.rules = rules
	h.mu.Unlock()

	return c.JSON(http.StatusOK, rules)
}
