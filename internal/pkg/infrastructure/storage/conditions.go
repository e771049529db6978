package storage

import (
	"strings"
	"time"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	TenantID string
	Since    time.Time
	Until    time.Time
	Classes  []types.DeviceClass

	sortDesc bool
	limit    *int
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.TenantID != "" {
		args["tenant_id"] = c.TenantID
	}
	if !c.Since.IsZero() {
		args["since"] = c.Since.UTC()
	}
	if !c.Until.IsZero() {
		args["until"] = c.Until.UTC()
	}
	if len(c.Classes) > 0 {
		classes := make([]string, 0, len(c.Classes))
		for _, cl := range c.Classes {
			classes = append(classes, string(cl))
		}
		args["classes"] = classes
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.TenantID != "" {
		where = append(where, "tenant_id = @tenant_id")
	}
	if !c.Since.IsZero() {
		where = append(where, "occurred_at >= @since")
	}
	if !c.Until.IsZero() {
		where = append(where, "occurred_at < @until")
	}
	if len(c.Classes) > 0 {
		where = append(where, "class = ANY(@classes)")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

func (c Condition) OrderBy() string {
	if c.sortDesc {
		return "ORDER BY occurred_at DESC, event_id"
	}
	return "ORDER BY occurred_at ASC, event_id"
}

func (c Condition) Limit() string {
	if c.limit == nil {
		return ""
	}
	return "LIMIT @limit"
}

func WithTenant(tenantID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.TenantID = tenantID
		return c
	}
}

// WithSince includes events at or after ts.
func WithSince(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Since = ts
		return c
	}
}

// WithUntil includes events before ts.
func WithUntil(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Until = ts
		return c
	}
}

func WithClasses(classes ...types.DeviceClass) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Classes = classes
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.sortDesc = desc
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}
