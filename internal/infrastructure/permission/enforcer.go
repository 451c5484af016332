package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"remotcyberhelp/internal/shared/logger"
)

// rbacModel matches a role against (resource, action) policies. Roles may
// inherit from other roles through g, and "*" in a policy matches anything.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer stores policies in the casbin_rule table when db is set and
// keeps them in memory otherwise. The default policy set is merged in
// either way.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.ensureDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Enforcer) Enforce(role string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func (e *Enforcer) AddPolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

func (e *Enforcer) RemovePolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err)
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}

// Policies lists the stored (role, resource, action) triples.
func (e *Enforcer) Policies() ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enforcer.GetPolicy()
}

func (e *Enforcer) ensureDefaults() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPoliciesEx(defaultPolicies); err != nil {
		return fmt.Errorf("failed to add default policies: %w", err)
	}
	for _, g := range defaultInheritance {
		ok, err := e.enforcer.HasGroupingPolicy(g[0], g[1])
		if err != nil {
			return fmt.Errorf("failed to check role inheritance: %w", err)
		}
		if ok {
			continue
		}
		if _, err := e.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return fmt.Errorf("failed to add role inheritance [%s, %s]: %w", g[0], g[1], err)
		}
	}

	e.logger.Infow("permissions initialized", "policies", len(defaultPolicies))
	return nil
}
