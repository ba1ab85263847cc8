// Package authz decides what each role may do, using a Casbin RBAC model
// with a role hierarchy: anonymous < user < moderator < admin.
//
// The model and policy are embedded in the binary. Ownership ("may a user
// edit this review?") is expressed as the separate ":own" actions, which
// the caller checks together with the authorship of the object.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"github.com/deppfellow/yamdb/internal/model"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Object is a protected resource kind.
type Object string

const (
	Categories Object = "categories"
	Genres     Object = "genres"
	Titles     Object = "titles"
	Reviews    Object = "reviews"
	Comments   Object = "comments"
	Users      Object = "users"
	Profile    Object = "profile"
)

// Action is an operation on an Object.
type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

// Own returns the variant of a that only applies to the caller's own objects.
func (a Action) Own() Action {
	return a + ":own"
}

// Enforcer answers permission questions for roles.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an enforcer from the embedded model and policy.
func NewEnforcer() (*Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := loadEmbeddedPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// loadEmbeddedPolicy parses policy CSV lines ("p, sub, obj, act" and
// "g, child, parent") into the enforcer.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		ptype, rule := parts[0], parts[1:]
		switch {
		case ptype == "p" && len(rule) == 3:
			if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", rule, err)
			}
		case ptype == "g" && len(rule) == 2:
			if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Can reports whether role may perform act on obj. Enforcement errors are
// treated as a denial.
func (e *Enforcer) Can(role model.Role, obj Object, act Action) bool {
	allowed, err := e.enforcer.Enforce(string(role), string(obj), string(act))
	return err == nil && allowed
}

// CanModify reports whether actor may perform act on an obj authored by
// authorID: either the role holds act outright, or it holds the ":own"
// variant and actor is the author.
func (e *Enforcer) CanModify(actor *model.User, obj Object, act Action, authorID int64) bool {
	role := model.RoleOf(actor)
	if e.Can(role, obj, act) {
		return true
	}
	return actor != nil && actor.ID == authorID && e.Can(role, obj, act.Own())
}
